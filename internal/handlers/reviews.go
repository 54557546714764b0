package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/satishydv/gharwa-backend/internal/service"
	"github.com/sirupsen/logrus"
)

// ReviewsHandler serves public review submission, the public review feed and
// the admin moderation endpoints.
type ReviewsHandler struct {
	service service.ReviewService
	log     *logrus.Logger
}

// NewReviewsHandler creates a new ReviewsHandler.
func NewReviewsHandler(svc service.ReviewService, log *logrus.Logger) *ReviewsHandler {
	return &ReviewsHandler{service: svc, log: log}
}

// UpdateReviewStatusRequest represents the moderation payload.
type UpdateReviewStatusRequest struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// Submit godoc
// @Summary Submit a customer review
// @Description Accepts a review with an optional profile photo; it stays hidden until approved
// @Tags reviews
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/reviews [post]
func (h *ReviewsHandler) Submit(c *gin.Context) {
	rating, _ := strconv.Atoi(c.PostForm("rating"))

	in := service.SubmitReviewInput{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Mobile:  c.PostForm("mobile"),
		Message: c.PostForm("message"),
		Rating:  rating,
	}
	if subject := c.PostForm("subject"); subject != "" {
		in.Subject = &subject
	}

	if fileHeader, err := c.FormFile("profileImage"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			h.log.WithError(err).Error("failed to open review profile image")
			respondError(c, http.StatusInternalServerError, "Failed to submit review. Please try again.")
			return
		}
		defer file.Close()
		in.Image = &service.ProfileImage{
			File:         file,
			OriginalName: fileHeader.Filename,
			ContentType:  fileHeader.Header.Get("Content-Type"),
			Size:         fileHeader.Size,
		}
	}

	id, err := h.service.Submit(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, h.log, err, "Review not found", "Failed to submit review. Please try again.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Review submitted successfully! It will be reviewed before being published.",
		"reviewId": id,
	})
}

// ListActive godoc
// @Summary List approved reviews
// @Tags reviews
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/reviews [get]
func (h *ReviewsHandler) ListActive(c *gin.Context) {
	reviews, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err, "Review not found", "Failed to fetch reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// List godoc
// @Summary List reviews for moderation
// @Description Paginated reviews of any status, newest first
// @Tags reviews
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/reviews [get]
func (h *ReviewsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	status := c.Query("status")

	reviews, pagination, err := h.service.ListAdmin(c.Request.Context(), page, limit, status)
	if err != nil {
		respondServiceError(c, h.log, err, "Review not found", "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":    reviews,
		"pagination": pagination,
	})
}

// UpdateStatus godoc
// @Summary Change a review's moderation status
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateReviewStatusRequest true "Review ID and new status"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/reviews [put]
func (h *ReviewsHandler) UpdateStatus(c *gin.Context) {
	var req UpdateReviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 || req.Status == "" {
		respondError(c, http.StatusBadRequest, "Review ID and status are required")
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), req.ID, req.Status); err != nil {
		respondServiceError(c, h.log, err, "Review not found", "Failed to update review")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review status updated successfully"})
}

// Delete godoc
// @Summary Delete a review
// @Tags reviews
// @Security BearerAuth
// @Produce json
// @Param id query int true "Review ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/reviews [delete]
func (h *ReviewsHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "Review ID is required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err, "Review not found", "Failed to delete review")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
