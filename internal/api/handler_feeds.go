package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pickup-vendor-backend/internal/feed"
)

func (h *Handler) feedOr404(c *gin.Context) (*feed.Feed, bool) {
	f, ok := h.feeds[c.Param("feed")]
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown feed"})
		return nil, false
	}
	return f, true
}

// GetFeed handles GET /api/feeds/:feed.
func (h *Handler) GetFeed(c *gin.Context) {
	f, ok := h.feedOr404(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, f.Snapshot())
}

// RefreshFeed handles POST /api/feeds/:feed/refresh. It reloads page 1
// in replace mode; a failed reload keeps the previous records and
// reports the error in the snapshot.
func (h *Handler) RefreshFeed(c *gin.Context) {
	f, ok := h.feedOr404(c)
	if !ok {
		return
	}
	f.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, f.Snapshot())
}

// LoadMoreFeed handles POST /api/feeds/:feed/load-more, the list-end
// signal from the rendering layer.
func (h *Handler) LoadMoreFeed(c *gin.Context) {
	f, ok := h.feedOr404(c)
	if !ok {
		return
	}
	f.LoadMore(c.Request.Context())
	c.JSON(http.StatusOK, f.Snapshot())
}

type toggleSectionRequest struct {
	Title string `json:"title" binding:"required"`
}

// ToggleSection handles POST /api/feeds/:feed/sections/toggle.
func (h *Handler) ToggleSection(c *gin.Context) {
	f, ok := h.feedOr404(c)
	if !ok {
		return
	}

	var req toggleSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "A section title is required"})
		return
	}
	f.ToggleSection(req.Title)
	c.JSON(http.StatusOK, f.Snapshot())
}

type toggleRowRequest struct {
	ID int64 `json:"id" binding:"required"`
}

// ToggleRow handles POST /api/feeds/:feed/rows/toggle.
func (h *Handler) ToggleRow(c *gin.Context) {
	f, ok := h.feedOr404(c)
	if !ok {
		return
	}

	var req toggleRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "A record id is required"})
		return
	}
	f.ToggleRow(req.ID)
	c.JSON(http.StatusOK, f.Snapshot())
}
