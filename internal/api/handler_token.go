package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type putTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// PutToken handles PUT /api/token, installing the vendor's bearer token.
func (h *Handler) PutToken(c *gin.Context) {
	var req putTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "A token is required"})
		return
	}
	if err := h.tokens.Save(c.Request.Context(), req.Token); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to store token"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetToken handles GET /api/token. The token itself is never echoed back,
// only whether one is installed and a short suffix for identification.
func (h *Handler) GetToken(c *gin.Context) {
	token, err := h.tokens.Token(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load token"})
		return
	}
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"installed": false})
		return
	}

	suffix := token
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	c.JSON(http.StatusOK, gin.H{
		"installed": true,
		"suffix":    strings.Repeat("*", 4) + suffix,
	})
}

// DeleteToken handles DELETE /api/token.
func (h *Handler) DeleteToken(c *gin.Context) {
	if err := h.tokens.Delete(c.Request.Context()); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete token"})
		return
	}
	c.Status(http.StatusNoContent)
}
