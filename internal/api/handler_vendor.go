package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pickup-vendor-backend/internal/upstream"
)

// GetVendor handles GET /api/vendor, the profile passthrough.
func (h *Handler) GetVendor(c *gin.Context) {
	vendor, err := h.vendor.FetchVendor(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": upstream.DisplayMessage(err)})
		return
	}
	c.JSON(http.StatusOK, vendor)
}
