package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DailyStateHandler serves the stored DailyState rows (spec.md §6's JSON
// contract), including a CSV export grounded on the teacher's
// ExportHistory handler.
type DailyStateHandler struct {
	db *gorm.DB
}

// NewDailyStateHandler constructs a DailyStateHandler.
func NewDailyStateHandler(db *gorm.DB) *DailyStateHandler {
	return &DailyStateHandler{db: db}
}

// List handles GET /api/assignments/:assignmentId/daily-states.
func (h *DailyStateHandler) List(c *gin.Context) {
	assignmentID, ok := parseUintParam(c, "assignmentId")
	if !ok {
		return
	}

	rows, err := h.fetch(assignmentID, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"daily_states": rows})
}

// Export handles GET /api/assignments/:assignmentId/daily-states/export.
func (h *DailyStateHandler) Export(c *gin.Context) {
	assignmentID, ok := parseUintParam(c, "assignmentId")
	if !ok {
		return
	}

	rows, err := h.fetch(assignmentID, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := "daily_states_" + strconv.FormatUint(uint64(assignmentID), 10) + "_" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	header := []string{
		"date", "day_number", "avg_weight_g", "population", "biomass_kg",
		"temp_c", "mortality_count", "feed_kg", "observed_fcr", "anchor_type",
		"lifecycle_stage",
	}
	if err := writer.Write(header); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write CSV header"})
		return
	}

	for _, row := range rows {
		record := []string{
			row.Date.Format("2006-01-02"),
			strconv.Itoa(row.DayNumber),
			strconv.FormatFloat(row.AvgWeightG, 'f', 2, 64),
			strconv.Itoa(row.Population),
			strconv.FormatFloat(row.BiomassKg, 'f', 2, 64),
			formatFloatPtr(row.TempC, 2),
			strconv.Itoa(row.MortalityCount),
			strconv.FormatFloat(row.FeedKg, 'f', 2, 64),
			formatFloatPtr(row.ObservedFCR, 3),
			formatStringPtr(row.AnchorType),
			row.LifecycleStage,
		}
		if err := writer.Write(record); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write CSV row"})
			return
		}
	}
}

func (h *DailyStateHandler) fetch(assignmentID uint, startDate, endDate string) ([]models.DailyState, error) {
	q := h.db.Where("assignment_id = ?", assignmentID).Order("date ASC")
	if startDate != "" {
		if t, err := time.Parse("2006-01-02", startDate); err == nil {
			q = q.Where("date >= ?", t)
		}
	}
	if endDate != "" {
		if t, err := time.Parse("2006-01-02", endDate); err == nil {
			q = q.Where("date <= ?", t)
		}
	}
	var rows []models.DailyState
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func formatFloatPtr(v *float64, precision int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', precision, 64)
}

func formatStringPtr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
