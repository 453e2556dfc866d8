// controllers/admin_submission.go - review surface
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"artist-submissions-api/models"
)

// AdminSubmissionController owns every mutation of status and admin notes.
// The intake pipeline never touches those fields.
type AdminSubmissionController struct {
	db *gorm.DB
}

func NewAdminSubmissionController(db *gorm.DB) *AdminSubmissionController {
	return &AdminSubmissionController{db: db}
}

// GetSubmissions returns submissions filtered by status and an optional
// free-text search over artist name, email and artwork title, newest first.
func (ctl *AdminSubmissionController) GetSubmissions(c *gin.Context) {
	status := c.Query("status")
	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := ctl.db.Model(&models.Submission{})
	if status != "" {
		if !models.ValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"(first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR artwork_title LIKE ?)",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	var submissions []models.Submission
	if err := query.Order("submission_date DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
	})
}

// GetSubmission returns a single submission by its submission_id.
func (ctl *AdminSubmissionController) GetSubmission(c *gin.Context) {
	var submission models.Submission
	if err := ctl.db.Where("submission_id = ?", c.Param("id")).First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

type statusUpdateRequest struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"admin_notes"`
}

// UpdateStatus changes the review status and notes of a submission.
func (ctl *AdminSubmissionController) UpdateStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	now := time.Now()
	result := ctl.db.Model(&models.Submission{}).
		Where("submission_id = ?", c.Param("id")).
		Updates(map[string]interface{}{
			"status":      req.Status,
			"admin_notes": req.AdminNotes,
			"updated_at":  now,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update submission"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Submission updated",
	})
}

// GetDashboardStats returns submission counts per review status.
func (ctl *AdminSubmissionController) GetDashboardStats(c *gin.Context) {
	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}

	var counts []statusCount
	if err := ctl.db.Model(&models.Submission{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	var total int64
	byStatus := map[string]int64{}
	for _, sc := range counts {
		byStatus[sc.Status] = sc.Count
		total += sc.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"total":     total,
		"by_status": byStatus,
	})
}
