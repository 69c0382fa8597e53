package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submissionWithDecisions(decisions [TierCount]Decision) Submission {
	sub := Submission{ID: "sub-1", StudentID: "student-1", EventID: "event-1"}
	for i, d := range decisions {
		sub.Tiers[i] = TierChoice{Option: "A", SubjectID: "subject", Decision: d}
	}
	return sub
}

func TestDeriveDisplay(t *testing.T) {
	tests := []struct {
		name      string
		decisions [TierCount]Decision
		want      DisplayState
	}{
		{
			name:      "all pending",
			decisions: [TierCount]Decision{DecisionPending, DecisionPending, DecisionPending, DecisionPending},
			want:      DisplayAllPending,
		},
		{
			name:      "all accepted",
			decisions: [TierCount]Decision{DecisionAccepted, DecisionAccepted, DecisionAccepted, DecisionAccepted},
			want:      DisplayAllResolved,
		},
		{
			name:      "mixed accept and reject still resolved",
			decisions: [TierCount]Decision{DecisionAccepted, DecisionRejected, DecisionAccepted, DecisionRejected},
			want:      DisplayAllResolved,
		},
		{
			name:      "one pending",
			decisions: [TierCount]Decision{DecisionAccepted, DecisionAccepted, DecisionAccepted, DecisionPending},
			want:      DisplayMixed,
		},
		{
			name:      "three pending",
			decisions: [TierCount]Decision{DecisionRejected, DecisionPending, DecisionPending, DecisionPending},
			want:      DisplayMixed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveDisplay(submissionWithDecisions(tt.decisions)))
		})
	}
}

func TestDeriveDisplayTotal(t *testing.T) {
	// Every combination of tier decisions must map to exactly one state.
	all := []Decision{DecisionPending, DecisionAccepted, DecisionRejected}
	for _, a := range all {
		for _, b := range all {
			for _, c := range all {
				for _, d := range all {
					state := DeriveDisplay(submissionWithDecisions([TierCount]Decision{a, b, c, d}))
					switch state {
					case DisplayAllPending, DisplayMixed, DisplayAllResolved:
					default:
						t.Fatalf("unexpected display state %q", state)
					}
				}
			}
		}
	}
}

func TestDecisionJSON(t *testing.T) {
	tests := []struct {
		decision Decision
		wire     string
	}{
		{DecisionPending, "null"},
		{DecisionAccepted, "true"},
		{DecisionRejected, "false"},
	}
	for _, tt := range tests {
		encoded, err := json.Marshal(tt.decision)
		require.NoError(t, err)
		assert.Equal(t, tt.wire, string(encoded))

		var decoded Decision
		require.NoError(t, json.Unmarshal([]byte(tt.wire), &decoded))
		assert.Equal(t, tt.decision, decoded)
	}
}

func TestDecisionUnmarshalRejectsOtherShapes(t *testing.T) {
	var d Decision
	assert.Error(t, json.Unmarshal([]byte(`"accepted"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`1`), &d))
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "pending", DecisionPending.String())
	assert.Equal(t, "accepted", DecisionAccepted.String())
	assert.Equal(t, "rejected", DecisionRejected.String())
}
