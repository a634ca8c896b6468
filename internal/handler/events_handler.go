package handler

import (
	"net/http"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/aquarian247/AquaMind-sub005/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EventsHandler implements spec.md §6's "Event-in contracts consumed from
// external collaborators": it persists the event row, then fires the
// matching scheduler trigger. A trigger failure never fails the request:
// recompute errors are logged by the scheduler's worker when the job runs,
// and an error returned by the trigger call itself (such as a failed
// assignment lookup) is discarded without being logged or returned.
type EventsHandler struct {
	db  *gorm.DB
	svc *service.AssimilationService
}

// NewEventsHandler constructs an EventsHandler.
func NewEventsHandler(db *gorm.DB, svc *service.AssimilationService) *EventsHandler {
	return &EventsHandler{db: db, svc: svc}
}

type feedingEventRequest struct {
	AssignmentID uint    `json:"assignment_id" binding:"required"`
	ContainerID  uint    `json:"container_id" binding:"required"`
	Date         string  `json:"date" binding:"required"`
	AmountKg     float64 `json:"amount_kg" binding:"required"`
}

// FeedingEventCreated handles POST /api/events/feeding.
func (h *EventsHandler) FeedingEventCreated(c *gin.Context) {
	var req feedingEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": map[string]string{"body": err.Error()}})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": map[string]string{"date": "must be YYYY-MM-DD"}})
		return
	}

	event := models.FeedingEvent{ContainerID: req.ContainerID, Date: date, AmountKg: req.AmountKg}
	if err := h.db.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Swallow trigger errors: the feeding event itself is already durable.
	_, _ = h.svc.FeedingEventCreated(req.AssignmentID)

	c.JSON(http.StatusCreated, event)
}

type growthSampleRequest struct {
	AssignmentID uint    `json:"assignment_id" binding:"required"`
	BatchID      uint    `json:"batch_id" binding:"required"`
	Date         string  `json:"date" binding:"required"`
	AvgWeightG   float64 `json:"avg_weight_g" binding:"required"`
}

// GrowthSampleCreated handles POST /api/events/growth-sample.
func (h *EventsHandler) GrowthSampleCreated(c *gin.Context) {
	var req growthSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": map[string]string{"body": err.Error()}})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": map[string]string{"date": "must be YYYY-MM-DD"}})
		return
	}

	sample := models.GrowthSample{AssignmentID: req.AssignmentID, Date: date, AvgWeightG: req.AvgWeightG}
	if err := h.db.Create(&sample).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	_, _ = h.svc.GrowthSampleCreated(req.BatchID, date)

	c.JSON(http.StatusCreated, sample)
}
