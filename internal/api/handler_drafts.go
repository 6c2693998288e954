package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pickup-vendor-backend/internal/feed"
	"pickup-vendor-backend/internal/model"
	"pickup-vendor-backend/internal/numeric"
	"pickup-vendor-backend/internal/upstream"
)

type draftEditRequest struct {
	Value string `json:"value"`
	// Flush forces an immediate persist, sent on field blur.
	Flush bool `json:"flush"`
}

// draftStateResponse returns the recomputed values the rendering layer
// needs after one edit, so it does not have to re-pull the whole feed.
type draftStateResponse struct {
	UnitPrice          string `json:"unit_price,omitempty"`
	Total              string `json:"total,omitempty"`
	ItemTotal          int64  `json:"item_total,omitempty"`
	ItemTotalDisplay   string `json:"item_total_display,omitempty"`
	Discount           string `json:"discount"`
	RecordTotal        int64  `json:"record_total"`
	GrandTotal         int64  `json:"grand_total"`
	RecordTotalDisplay string `json:"record_total_display"`
	GrandTotalDisplay  string `json:"grand_total_display"`
}

func (h *Handler) recordOr404(c *gin.Context) (model.PickupRecord, *feed.Feed, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid pickup ID"})
		return model.PickupRecord{}, nil, false
	}
	record, owner, ok := h.findRecord(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown pickup"})
		return model.PickupRecord{}, nil, false
	}
	return record, owner, true
}

func (h *Handler) draftState(record model.PickupRecord, itemID int64) draftStateResponse {
	recordTotal := h.ledger.RecordTotal(record)
	grandTotal := h.ledger.GrandTotal(record)
	resp := draftStateResponse{
		Discount:           h.ledger.Discount(record),
		RecordTotal:        recordTotal,
		GrandTotal:         grandTotal,
		RecordTotalDisplay: numeric.FormatINR(recordTotal),
		GrandTotalDisplay:  numeric.FormatINR(grandTotal),
	}
	if itemID != 0 {
		unit, total := h.ledger.ItemDraft(record, itemID)
		itemTotal := h.ledger.ItemTotal(record, itemID)
		resp.UnitPrice = unit
		resp.Total = total
		resp.ItemTotal = itemTotal
		resp.ItemTotalDisplay = numeric.FormatINR(itemTotal)
	}
	return resp
}

// SetUnitPrice handles PUT /api/pickups/:id/items/:item_id/unit-price.
func (h *Handler) SetUnitPrice(c *gin.Context) {
	h.setItemField(c, h.ledger.SetUnitPrice)
}

// SetTotal handles PUT /api/pickups/:id/items/:item_id/total.
func (h *Handler) SetTotal(c *gin.Context) {
	h.setItemField(c, h.ledger.SetTotal)
}

func (h *Handler) setItemField(c *gin.Context, set func(model.PickupRecord, int64, string)) {
	record, _, ok := h.recordOr404(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req draftEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid edit body"})
		return
	}

	set(record, itemID, req.Value)
	if req.Flush {
		h.ledger.Flush(record.ID)
	}
	c.JSON(http.StatusOK, h.draftState(record, itemID))
}

// SetDiscount handles PUT /api/pickups/:id/discount.
func (h *Handler) SetDiscount(c *gin.Context) {
	record, _, ok := h.recordOr404(c)
	if !ok {
		return
	}

	var req draftEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid edit body"})
		return
	}

	h.ledger.SetDiscount(record, req.Value)
	if req.Flush {
		h.ledger.Flush(record.ID)
	}
	c.JSON(http.StatusOK, h.draftState(record, 0))
}

// SubmitPrices handles POST /api/pickups/:id/submit. On success the
// record's draft is cleared and the owning feed refreshed from the
// backend; on failure the upstream message is returned verbatim and the
// draft kept for retry.
func (h *Handler) SubmitPrices(c *gin.Context) {
	record, owner, ok := h.recordOr404(c)
	if !ok {
		return
	}

	message, err := h.reconciler.Submit(c.Request.Context(), record, owner)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": upstream.DisplayMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "snapshot": owner.Snapshot()})
}
