// Command gateway_probe walks a set of read-only gateway endpoints with a
// bearer token and reports status and latency per probe. It is meant as a
// post-deploy smoke check: critical probes failing exits nonzero.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type probe struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Expect   int    `json:"expect"`
	Critical bool   `json:"critical"`
}

type probeFile struct {
	Probes []probe `json:"probes"`
}

type result struct {
	Probe    probe
	Status   int
	Duration time.Duration
	Err      error
}

func main() {
	var (
		baseURL    string
		token      string
		probesPath string
		timeout    time.Duration
	)

	flag.StringVar(&baseURL, "base", "http://localhost:8080", "gateway base URL")
	flag.StringVar(&token, "token", os.Getenv("GATEWAY_PROBE_TOKEN"), "bearer token to send")
	flag.StringVar(&probesPath, "probes", filepath.Join("scripts", "gateway_probe", "probes.json"), "path to JSON probe list")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	probes, err := loadProbes(probesPath)
	if err != nil {
		log.Fatalf("failed to load probes: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var failures int
	for _, p := range probes {
		res := run(client, baseURL, token, p)
		report(res)
		if res.failed() && p.Critical {
			failures++
		}
	}

	if failures > 0 {
		fmt.Printf("critical probe failures: %d\n", failures)
		os.Exit(1)
	}
}

func loadProbes(path string) ([]probe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file probeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Probes) == 0 {
		return nil, fmt.Errorf("no probes defined in %s", path)
	}
	return file.Probes, nil
}

func run(client *http.Client, base, token string, p probe) result {
	res := result{Probe: p}

	method := strings.ToUpper(strings.TrimSpace(p.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := p.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		res.Err = err
		return res
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()
	res.Status = resp.StatusCode
	return res
}

func (r result) failed() bool {
	if r.Err != nil {
		return true
	}
	expect := r.Probe.Expect
	if expect == 0 {
		expect = http.StatusOK
	}
	return r.Status != expect
}

func report(r result) {
	status := "OK"
	if r.failed() {
		status = "FAIL"
	}
	fmt.Printf("[%s] %s %s\n", status, r.Probe.Method, r.Probe.Path)
	if r.Err != nil {
		fmt.Printf("  error: %v\n", r.Err)
		return
	}
	fmt.Printf("  status: %d (%s) critical: %t\n", r.Status, r.Duration, r.Probe.Critical)
}
