package services

import (
	"errors"
	"io"
	"log"
	"time"

	"artist-submissions-api/models"
)

// maxIDRetries bounds how often a duplicate-key collision on insert is
// retried with a freshly allocated identifier.
const maxIDRetries = 3

// IncomingFile is one uploaded image. Open must be re-callable: a retry after
// an identifier collision saves the files again into a new directory.
type IncomingFile struct {
	Name     string
	MimeType string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

func (f IncomingFile) descriptor() FileDescriptor {
	return FileDescriptor{Name: f.Name, MimeType: f.MimeType, Size: f.Size}
}

// SubmissionInserter is the persistence boundary of the pipeline.
type SubmissionInserter interface {
	Insert(rec *models.Submission) error
}

// SubmissionNotifier announces a committed submission. Implementations must
// not fail the caller.
type SubmissionNotifier interface {
	Notify(rec *models.Submission)
}

// IntakeService runs the submission pipeline: validate, allocate an
// identifier, create the directory, save the images, insert the record,
// write the derived artifacts, notify. Filesystem state created before a
// failed insert is rolled back; anything after a successful insert is
// committed and later failures only degrade, never fail.
type IntakeService struct {
	policy   IntakePolicy
	store    *ArtifactStore
	repo     SubmissionInserter
	notifier SubmissionNotifier
	tz       *time.Location

	// overridable for tests
	newID func(time.Time) string
	now   func() time.Time
}

func NewIntakeService(policy IntakePolicy, store *ArtifactStore, repo SubmissionInserter, notifier SubmissionNotifier, tz *time.Location) *IntakeService {
	if tz == nil {
		tz = time.UTC
	}
	return &IntakeService{
		policy:   policy,
		store:    store,
		repo:     repo,
		notifier: notifier,
		tz:       tz,
		newID:    NewSubmissionID,
		now:      time.Now,
	}
}

// Process runs one submission through the pipeline and returns the committed
// record, or an *IntakeError naming the first failure.
func (s *IntakeService) Process(fields SubmissionFields, files []IncomingFile) (*models.Submission, error) {
	descriptors := make([]FileDescriptor, len(files))
	for i, f := range files {
		descriptors[i] = f.descriptor()
	}

	fields, err := s.policy.Validate(fields, descriptors)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxIDRetries; attempt++ {
		rec, err := s.attempt(fields, files)
		if err == nil {
			return rec, nil
		}
		var ie *IntakeError
		if errors.As(err, &ie) && ie.Category == CategoryDuplicateID {
			log.Printf("Submission id collision on attempt %d, reallocating", attempt+1)
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

// attempt performs one full allocate-store-persist cycle. On any failure
// after the directory exists it rolls the directory back before returning.
func (s *IntakeService) attempt(fields SubmissionFields, files []IncomingFile) (*models.Submission, error) {
	now := s.now().In(s.tz)
	submissionID := s.newID(now)

	if err := s.store.CreateDir(submissionID); err != nil {
		// Nothing was written, nothing to roll back.
		return nil, err
	}

	saved := make(models.ImageFileList, 0, len(files))
	for i, f := range files {
		if err := s.policy.CheckFile(f.descriptor()); err != nil {
			s.store.Rollback(submissionID)
			return nil, err
		}
		name, err := s.saveOne(submissionID, i, f)
		if err != nil {
			s.store.Rollback(submissionID)
			return nil, err
		}
		saved = append(saved, name)
	}

	rec := &models.Submission{
		SubmissionID:    submissionID,
		FirstName:       fields.FirstName,
		LastName:        fields.LastName,
		Email:           fields.Email,
		Phone:           fields.Phone,
		Website:         fields.Website,
		Address:         fields.Address,
		ArtworkTitle:    fields.ArtworkTitle,
		Medium:          fields.Medium,
		Dimensions:      fields.Dimensions,
		YearCreated:     fields.YearCreated,
		Price:           fields.Price,
		Description:     fields.Description,
		ArtistStatement: fields.ArtistStatement,
		ImageFiles:      saved,
		SubmissionDate:  now,
		Status:          models.StatusPending,
	}

	if err := s.repo.Insert(rec); err != nil {
		s.store.Rollback(submissionID)
		if errors.Is(err, ErrDuplicateSubmissionID) {
			return nil, &IntakeError{
				Category: CategoryDuplicateID,
				Message:  "Submission identifier collision",
				Err:      err,
			}
		}
		return nil, persistenceErr("Database insertion failed", err)
	}

	// The record is committed; artifact and notification problems from here
	// on are degraded service, not failures.
	if err := s.store.WriteDetailDocument(submissionID, rec); err != nil {
		log.Printf("Warning: failed to write detail document for %s: %v", submissionID, err)
	}
	if err := s.store.WriteSnapshot(submissionID, rec); err != nil {
		log.Printf("Warning: failed to write snapshot for %s: %v", submissionID, err)
	}

	s.notifier.Notify(rec)

	return rec, nil
}

func (s *IntakeService) saveOne(submissionID string, index int, f IncomingFile) (string, error) {
	src, err := f.Open()
	if err != nil {
		return "", storageErr("Failed to read upload "+f.Name, err)
	}
	defer src.Close()
	return s.store.SaveFile(submissionID, index, f.Name, src)
}
