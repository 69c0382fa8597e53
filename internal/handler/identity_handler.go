package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/simak-gateway/internal/models"
	"github.com/noah-isme/simak-gateway/pkg/response"
)

type identityReader interface {
	GetIdentity(ctx context.Context, token string) (*models.Identity, error)
}

// IdentityHandler exposes the caller's profile as reported by the academic
// service.
type IdentityHandler struct {
	upstream identityReader
}

// NewIdentityHandler constructs IdentityHandler.
func NewIdentityHandler(upstream identityReader) *IdentityHandler {
	return &IdentityHandler{upstream: upstream}
}

// Detail godoc
// @Summary Current user profile
// @Tags Identity
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /identity/detail [get]
func (h *IdentityHandler) Detail(c *gin.Context) {
	identity, err := h.upstream.GetIdentity(c.Request.Context(), tokenFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, identity, nil)
}
