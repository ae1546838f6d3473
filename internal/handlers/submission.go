package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harukit/civic-report-api/internal/dto"
	apierrors "github.com/harukit/civic-report-api/internal/errors"
	"github.com/harukit/civic-report-api/internal/middleware"
	"github.com/harukit/civic-report-api/internal/services"
)

// SubmissionHandler coordinates submission lifecycle HTTP handlers.
type SubmissionHandler struct {
	submissionService *services.SubmissionService
	maxUploadSize     int64
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService *services.SubmissionService, maxUploadSize int64) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		maxUploadSize:     maxUploadSize,
	}
}

// Upload accepts a multipart form with file, address and problem fields and
// creates a pending submission for the authenticated user.
func (h *SubmissionHandler) Upload(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "An image file is required")
		return
	}
	if fileHeader.Size > h.maxUploadSize {
		apierrors.BadRequest(c, "File too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	submission, err := h.submissionService.Submit(c.Request.Context(), services.SubmitInput{
		UserID:   userID,
		Filename: fileHeader.Filename,
		File:     file,
		FileSize: fileHeader.Size,
		Address:  c.PostForm("address"),
		Problem:  c.PostForm("problem"),
	})
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubmissionDTO(*submission))
}

// ListMine returns all of the authenticated user's submissions.
func (h *SubmissionHandler) ListMine(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	submissions, err := h.submissionService.ListByUser(userID)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionListResponse(submissions))
}

// ListPending returns all pending submissions for administrator review.
func (h *SubmissionHandler) ListPending(c *gin.Context) {
	submissions, err := h.submissionService.ListPending()
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionListResponse(submissions))
}

// ListApproved returns approved submissions, optionally filtered by owner
// via the user_id query parameter.
func (h *SubmissionHandler) ListApproved(c *gin.Context) {
	var userID *uint64
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid user_id")
			return
		}
		userID = &parsed
	}

	submissions, err := h.submissionService.ListApproved(userID)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionListResponse(submissions))
}

// Approve transitions a pending submission to approved.
func (h *SubmissionHandler) Approve(c *gin.Context) {
	id, ok := submissionID(c)
	if !ok {
		return
	}

	submission, err := h.submissionService.Approve(c.Request.Context(), id)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionDTO(*submission))
}

// Disapprove deletes a submission and its image.
func (h *SubmissionHandler) Disapprove(c *gin.Context) {
	id, ok := submissionID(c)
	if !ok {
		return
	}

	if err := h.submissionService.Disapprove(c.Request.Context(), id); err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Submission disapproved and removed",
	})
}

func submissionID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid submission ID")
		return 0, false
	}
	return id, true
}

func respondSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFileRequired),
		errors.Is(err, services.ErrAddressRequired),
		errors.Is(err, services.ErrProblemRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrSubmissionNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
