package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/recompute/errs"
	"github.com/aquarian247/AquaMind-sub005/internal/service"
	"github.com/gin-gonic/gin"
)

// RecomputeHandler serves the admin recompute channel (spec.md §6).
type RecomputeHandler struct {
	svc *service.AssimilationService
}

// NewRecomputeHandler constructs a RecomputeHandler.
func NewRecomputeHandler(svc *service.AssimilationService) *RecomputeHandler {
	return &RecomputeHandler{svc: svc}
}

// recomputeRequest mirrors spec.md §6's "Recompute job request (admin
// channel)" JSON shape.
type recomputeRequest struct {
	BatchID       uint    `json:"batch_id" binding:"required"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       *string `json:"end_date"`
	AssignmentIDs []uint  `json:"assignment_ids"`
}

// Recompute handles POST /api/recompute: validates the request, enqueues
// the job, and returns 202 with the generated task id.
func (h *RecomputeHandler) Recompute(c *gin.Context) {
	var req recomputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": map[string]string{"body": err.Error()}})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": map[string]string{"start_date": "must be YYYY-MM-DD"}})
		return
	}

	var end *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		e, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": map[string]string{"end_date": "must be YYYY-MM-DD"}})
			return
		}
		end = &e
	}

	taskID := h.svc.EnqueueAdminRecompute(req.BatchID, start, end, req.AssignmentIDs)

	c.JSON(http.StatusAccepted, gin.H{"task_ids": []string{taskID}})
}

// RecomputeSync handles POST /api/recompute/sync: runs C10 inline and
// returns the aggregated result instead of a task id.
func (h *RecomputeHandler) RecomputeSync(c *gin.Context) {
	var req recomputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": map[string]string{"body": err.Error()}})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": map[string]string{"start_date": "must be YYYY-MM-DD"}})
		return
	}

	var end *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		e, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": map[string]string{"end_date": "must be YYYY-MM-DD"}})
			return
		}
		end = &e
	}

	result, err := h.svc.RecomputeBatchSync(c.Request.Context(), req.BatchID, start, end, req.AssignmentIDs)
	if err != nil {
		writeRecomputeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func writeRecomputeError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *errs.ValidationError:
		c.JSON(http.StatusBadRequest, gin.H{"error": map[string]string{e.Field: e.Message}})
	case *errs.MissingMasterDataError:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": e.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseUintParam is a small helper used by the daily-state handlers for
// path parameters like :assignmentId.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": map[string]string{name: "must be a positive integer"}})
		return 0, false
	}
	return uint(v), true
}
