package repository

import (
	"github.com/harukit/civic-report-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user. A username collision is reported as
	// ErrUsernameExists rather than the driver's raw constraint error.
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// SubmissionFilter holds filtering options for listing submissions
type SubmissionFilter struct {
	// Approved filters by approval state when set
	Approved *bool

	// UserID filters by owner when set
	UserID *uint64
}

// SubmissionRepository defines the interface for submission data access
type SubmissionRepository interface {
	// Create creates a new submission
	Create(submission *models.Submission) error

	// FindByID finds a submission by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Submission, error)

	// List retrieves submissions matching the filter, newest first
	List(filter SubmissionFilter) ([]models.Submission, error)

	// MarkApproved flips a pending submission to approved within a single
	// transaction, setting points and the new image path, then runs moveBlob
	// before committing. A moveBlob error rolls the row update back. The
	// update is guarded on approved=false; it reports false when no pending
	// row matched, so a repeat call can never award twice.
	MarkApproved(id uint64, imagePath string, points int, moveBlob func() error) (bool, error)

	// Delete hard-deletes a submission
	Delete(id uint64) error
}
