package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/harukit/civic-report-api/internal/constants"
	"github.com/harukit/civic-report-api/internal/models"
	"github.com/harukit/civic-report-api/internal/repository"
	"github.com/harukit/civic-report-api/internal/storage"
	"github.com/harukit/civic-report-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrFileRequired       = errors.New("an image file is required")
	ErrAddressRequired    = errors.New("address is required")
	ErrProblemRequired    = errors.New("problem description is required")
)

// SubmissionService is the submission lifecycle manager. Every transition
// between pending, approved and removed goes through it, together with the
// blob side effects and the point award.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	blobs          storage.BlobStore
	locks          *idLocker
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(submissionRepo repository.SubmissionRepository, blobs storage.BlobStore) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		blobs:          blobs,
		locks:          newIDLocker(),
	}
}

// SubmitInput represents input for creating a submission.
type SubmitInput struct {
	UserID   uint64
	Filename string
	File     io.Reader
	FileSize int64
	Address  string
	Problem  string
}

// Submit stores the image in the pending area and creates a pending
// submission row with zero points.
func (s *SubmissionService) Submit(ctx context.Context, input SubmitInput) (*models.Submission, error) {
	if input.File == nil || strings.TrimSpace(input.Filename) == "" {
		return nil, ErrFileRequired
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, ErrAddressRequired
	}
	if strings.TrimSpace(input.Problem) == "" {
		return nil, ErrProblemRequired
	}

	objectName := utils.NewObjectName(input.Filename)

	if err := s.blobs.Save(ctx, storage.AreaPending, objectName, input.File, input.FileSize); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	submission := &models.Submission{
		UserID:           input.UserID,
		ImagePath:        imagePath(storage.AreaPending, objectName),
		OriginalFilename: input.Filename,
		Address:          input.Address,
		Problem:          input.Problem,
		Approved:         false,
		Points:           0,
	}

	if err := s.submissionRepo.Create(submission); err != nil {
		// Keep the store consistent: a row that never existed must not
		// leave an orphaned blob behind.
		if delErr := s.blobs.Delete(ctx, storage.AreaPending, objectName); delErr != nil && !errors.Is(delErr, storage.ErrBlobNotFound) {
			log.Printf("Warning: failed to clean up blob %s after create failure: %v", objectName, delErr)
		}
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	return submission, nil
}

// Approve transitions a pending submission to approved: the blob moves to
// the approved area, the image path is rewritten, and the fixed point value
// is awarded. The row update and the blob move commit or roll back as one
// unit, and a repeat call on an already approved id reports not-found
// without touching the points.
func (s *SubmissionService) Approve(ctx context.Context, id uint64) (*models.Submission, error) {
	s.locks.lock(id)
	defer s.locks.unlock(id)

	submission, err := s.submissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	if submission.Approved {
		return nil, ErrSubmissionNotFound
	}

	objectName := path.Base(submission.ImagePath)
	approvedPath := imagePath(storage.AreaApproved, objectName)

	updated, err := s.submissionRepo.MarkApproved(id, approvedPath, constants.ApprovalPoints, func() error {
		return s.blobs.Move(ctx, storage.AreaPending, storage.AreaApproved, objectName)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to approve submission: %w", err)
	}
	if !updated {
		return nil, ErrSubmissionNotFound
	}

	return s.submissionRepo.FindByID(id, "User")
}

// Disapprove removes a submission: the blob is deleted from whichever area
// holds it, then the row is deleted. A blob that is already gone is logged
// and never blocks the record cleanup.
func (s *SubmissionService) Disapprove(ctx context.Context, id uint64) error {
	s.locks.lock(id)
	defer s.locks.unlock(id)

	submission, err := s.submissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return fmt.Errorf("failed to find submission: %w", err)
	}

	area := storage.AreaPending
	if submission.Approved {
		area = storage.AreaApproved
	}

	objectName := path.Base(submission.ImagePath)
	if err := s.blobs.Delete(ctx, area, objectName); err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			log.Printf("Warning: blob %s/%s already absent during disapprove of submission %d", area, objectName, id)
		} else {
			log.Printf("Warning: failed to delete blob %s/%s for submission %d: %v", area, objectName, id, err)
		}
	}

	if err := s.submissionRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	return nil
}

// ListPending returns all pending submissions, newest first.
func (s *SubmissionService) ListPending() ([]models.Submission, error) {
	approved := false
	return s.list(repository.SubmissionFilter{Approved: &approved})
}

// ListApproved returns approved submissions, optionally limited to one owner.
func (s *SubmissionService) ListApproved(userID *uint64) ([]models.Submission, error) {
	approved := true
	return s.list(repository.SubmissionFilter{Approved: &approved, UserID: userID})
}

// ListByUser returns all of a user's submissions regardless of state.
func (s *SubmissionService) ListByUser(userID uint64) ([]models.Submission, error) {
	return s.list(repository.SubmissionFilter{UserID: &userID})
}

func (s *SubmissionService) list(filter repository.SubmissionFilter) ([]models.Submission, error) {
	submissions, err := s.submissionRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

// imagePath builds the area-relative reference stored on the row, e.g.
// "pending/3f2a….jpg". Forward slashes regardless of platform.
func imagePath(area storage.Area, objectName string) string {
	return path.Join(string(area), objectName)
}
