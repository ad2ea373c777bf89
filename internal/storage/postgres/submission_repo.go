package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshu-sajeev/contactrelay/internal/contact"
	"github.com/joshu-sajeev/contactrelay/internal/models"
	"gorm.io/gorm"
)

var ErrSubmissionNotFound = errors.New("submission not found")

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

var _ contact.SubmissionRecorder = (*SubmissionRepository)(nil)

// Create inserts one audit row. The caller's context bounds the insert.
func (r *SubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// Get retrieves a single submission by ID.
func (r *SubmissionRepository) Get(ctx context.Context, id uint) (*models.Submission, error) {
	var sub models.Submission
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get submission %d: %w", id, ErrSubmissionNotFound)
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return &sub, nil
}

// ListRecent returns up to limit submissions, newest first.
func (r *SubmissionRepository) ListRecent(ctx context.Context, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = 50
	}

	var subs []models.Submission
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}
