package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"artist-submissions-api/models"
)

// ErrDuplicateSubmissionID reports that an insert hit the unique index on
// submission_id. The pipeline treats it as a retryable allocation collision.
var ErrDuplicateSubmissionID = errors.New("submission id already exists")

// SubmissionRepository persists submission records. The intake pipeline only
// ever inserts; status and notes updates belong to the review controllers.
type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Insert writes one record. A single-row insert is atomic at the database
// layer; duplicate submission identifiers surface as ErrDuplicateSubmissionID.
func (r *SubmissionRepository) Insert(rec *models.Submission) error {
	if err := r.db.Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSubmissionID
		}
		return err
	}
	return nil
}

// EnsureUniqueIndex verifies at startup that the unique index on
// submission_id exists. Without it an allocator collision would silently
// coexist with an unrelated record, so its absence is a configuration error.
func (r *SubmissionRepository) EnsureUniqueIndex() error {
	m := r.db.Migrator()
	if !m.HasTable(&models.Submission{}) {
		return fmt.Errorf("submissions table does not exist; run the schema migration first")
	}
	if !m.HasIndex(&models.Submission{}, "uniq_submission_id") {
		return fmt.Errorf("unique index uniq_submission_id is missing on submissions; refusing to start")
	}
	return nil
}
