package dto

import (
	"time"

	"github.com/harukit/civic-report-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64          `json:"id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
}

// SubmissionDTO represents a submission in API responses
type SubmissionDTO struct {
	ID               uint64    `json:"id"`
	UserID           uint64    `json:"user_id"`
	ImagePath        string    `json:"image_path"`
	OriginalFilename string    `json:"original_filename,omitempty"`
	Address          string    `json:"address"`
	Problem          string    `json:"problem"`
	Approved         bool      `json:"approved"`
	Points           int       `json:"points"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	User             *UserDTO  `json:"user,omitempty"`
}

// SubmissionListResponse represents a list of submissions
type SubmissionListResponse struct {
	Submissions []SubmissionDTO `json:"submissions"`
	TotalCount  int             `json:"total_count"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

// ToSubmissionDTO converts a Submission model to SubmissionDTO
func ToSubmissionDTO(submission models.Submission) SubmissionDTO {
	dto := SubmissionDTO{
		ID:               submission.ID,
		UserID:           submission.UserID,
		ImagePath:        submission.ImagePath,
		OriginalFilename: submission.OriginalFilename,
		Address:          submission.Address,
		Problem:          submission.Problem,
		Approved:         submission.Approved,
		Points:           submission.Points,
		CreatedAt:        submission.CreatedAt,
		UpdatedAt:        submission.UpdatedAt,
	}

	// Include owner if preloaded
	if submission.User.ID != 0 {
		user := ToUserDTO(submission.User)
		dto.User = &user
	}

	return dto
}

// ToSubmissionListResponse converts a slice of submissions to a list response
func ToSubmissionListResponse(submissions []models.Submission) SubmissionListResponse {
	items := make([]SubmissionDTO, len(submissions))
	for i, submission := range submissions {
		items[i] = ToSubmissionDTO(submission)
	}

	return SubmissionListResponse{
		Submissions: items,
		TotalCount:  len(items),
	}
}
