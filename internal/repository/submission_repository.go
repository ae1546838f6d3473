package repository

import (
	"github.com/harukit/civic-report-api/internal/models"
	"gorm.io/gorm"
)

// GormSubmissionRepository is a GORM implementation of SubmissionRepository
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// Create creates a new submission
func (r *GormSubmissionRepository) Create(submission *models.Submission) error {
	return r.db.Create(submission).Error
}

// FindByID finds a submission by ID with optional preloading
func (r *GormSubmissionRepository) FindByID(id uint64, preload ...string) (*models.Submission, error) {
	var submission models.Submission
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&submission, id).Error; err != nil {
		return nil, err
	}

	return &submission, nil
}

// List retrieves submissions matching the filter, newest first
func (r *GormSubmissionRepository) List(filter SubmissionFilter) ([]models.Submission, error) {
	var submissions []models.Submission

	query := r.db.Model(&models.Submission{})

	if filter.Approved != nil {
		query = query.Where("approved = ?", *filter.Approved)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	if err := query.Order("created_at DESC").Preload("User").Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

// MarkApproved runs the approval transition transactionally. The row update
// and the blob move commit or roll back together; the approved=false guard
// makes a second call on the same id a no-op.
func (r *GormSubmissionRepository) MarkApproved(id uint64, imagePath string, points int, moveBlob func() error) (bool, error) {
	approved := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Submission{}).
			Where("id = ? AND approved = ?", id, false).
			Updates(map[string]interface{}{
				"approved":   true,
				"points":     points,
				"image_path": imagePath,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := moveBlob(); err != nil {
			return err
		}

		approved = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return approved, nil
}

// Delete hard-deletes a submission
func (r *GormSubmissionRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Submission{}, id).Error
}
