package handler

import (
	"errors"
	"net/http"
	"time"

	"bookmart-be/internal/analytics"
	"bookmart-be/internal/cache"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc   analytics.Service
	cache *cache.ReportCache
}

func NewReportHandler(svc analytics.Service, cache *cache.ReportCache) *ReportHandler {
	return &ReportHandler{svc: svc, cache: cache}
}

func reportStatus(err error) int {
	if errors.Is(err, analytics.ErrInvariantViolation) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (h *ReportHandler) UserOrderSummary(c *gin.Context) {
	ctx := c.Request.Context()

	var cached analytics.UserOrderSummaryReport
	if h.cache.Get(ctx, "user_order_summary", &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	report, err := h.svc.UserOrderSummary(ctx)
	if err != nil {
		c.JSON(reportStatus(err), gin.H{"error": "failed to compute report"})
		return
	}

	h.cache.Set(ctx, "user_order_summary", report)
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) OrderProductStats(c *gin.Context) {
	ctx := c.Request.Context()

	var cached analytics.OrderProductStatsReport
	if h.cache.Get(ctx, "order_product_stats", &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	report, err := h.svc.OrderProductStats(ctx)
	if err != nil {
		c.JSON(reportStatus(err), gin.H{"error": "failed to compute report"})
		return
	}

	h.cache.Set(ctx, "order_product_stats", report)
	c.JSON(http.StatusOK, report)
}

// OrderAnalysis accepts an optional as_of query parameter in RFC3339 form.
// Without it the report is anchored to the current time and may be served
// from cache; an explicit as_of always recomputes.
func (h *ReportHandler) OrderAnalysis(c *gin.Context) {
	ctx := c.Request.Context()

	asOf := time.Now().UTC()
	explicit := false

	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "as_of must be RFC3339"})
			return
		}
		asOf = parsed
		explicit = true
	}

	if !explicit {
		var cached analytics.OrderAnalysisReport
		if h.cache.Get(ctx, "order_analysis", &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	report, err := h.svc.OrderAnalysis(ctx, asOf)
	if err != nil {
		c.JSON(reportStatus(err), gin.H{"error": "failed to compute report"})
		return
	}

	if !explicit {
		h.cache.Set(ctx, "order_analysis", report)
	}
	c.JSON(http.StatusOK, report)
}
