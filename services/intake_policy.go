package services

import (
	"fmt"

	"artist-submissions-api/utils"
)

// SubmissionFields carries the form fields of one intake request.
type SubmissionFields struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Website         string
	Address         string
	ArtworkTitle    string
	Medium          string
	Dimensions      string
	YearCreated     string
	Price           string
	Description     string
	ArtistStatement string
}

// FileDescriptor describes an uploaded file as declared by the client.
type FileDescriptor struct {
	Name     string
	MimeType string
	Size     int64
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// IntakePolicy holds the quota and validation rules for a submission. It does
// no I/O; the same limits apply to every request for the process lifetime.
type IntakePolicy struct {
	MaxFiles    int
	MaxFileSize int64
}

// requiredFields pairs each mandatory form field with an accessor, in
// validation order.
var requiredFields = []struct {
	name string
	get  func(*SubmissionFields) string
}{
	{"firstName", func(f *SubmissionFields) string { return f.FirstName }},
	{"lastName", func(f *SubmissionFields) string { return f.LastName }},
	{"email", func(f *SubmissionFields) string { return f.Email }},
	{"artworkTitle", func(f *SubmissionFields) string { return f.ArtworkTitle }},
	{"medium", func(f *SubmissionFields) string { return f.Medium }},
	{"description", func(f *SubmissionFields) string { return f.Description }},
}

// Validate applies the request-level rules in order, first failure wins:
// required fields, email shape, at least one file, file count quota. Per-file
// type and size rules are applied by CheckFile as each file is processed.
// On success the returned fields are normalized (trimmed).
func (p IntakePolicy) Validate(fields SubmissionFields, files []FileDescriptor) (SubmissionFields, error) {
	norm := normalize(fields)

	for _, rf := range requiredFields {
		if rf.get(&norm) == "" {
			return norm, validationErr(rf.name, fmt.Sprintf("Required field '%s' is missing", rf.name))
		}
	}

	if !utils.ValidateEmail(norm.Email) {
		return norm, validationErr("email", "Invalid email address")
	}

	if len(files) == 0 {
		return norm, validationErr("artworkImages", "At least one artwork image is required")
	}

	if len(files) > p.MaxFiles {
		return norm, quotaErr("artworkImages", int64(p.MaxFiles),
			fmt.Sprintf("Maximum %d files allowed per submission", p.MaxFiles))
	}

	return norm, nil
}

// CheckFile applies the per-file rules: allowed MIME type, then size quota.
func (p IntakePolicy) CheckFile(f FileDescriptor) error {
	if !allowedImageTypes[f.MimeType] {
		return validationErr(f.Name, fmt.Sprintf("Invalid file type for %s", f.Name))
	}
	if f.Size > p.MaxFileSize {
		maxMB := float64(p.MaxFileSize) / (1024 * 1024)
		return quotaErr(f.Name, p.MaxFileSize,
			fmt.Sprintf("File %s is too large. Maximum size is %.1fMB", f.Name, maxMB))
	}
	return nil
}

func normalize(f SubmissionFields) SubmissionFields {
	return SubmissionFields{
		FirstName:       utils.SanitizeInput(f.FirstName),
		LastName:        utils.SanitizeInput(f.LastName),
		Email:           utils.SanitizeInput(f.Email),
		Phone:           utils.SanitizeInput(f.Phone),
		Website:         utils.SanitizeInput(f.Website),
		Address:         utils.SanitizeInput(f.Address),
		ArtworkTitle:    utils.SanitizeInput(f.ArtworkTitle),
		Medium:          utils.SanitizeInput(f.Medium),
		Dimensions:      utils.SanitizeInput(f.Dimensions),
		YearCreated:     utils.SanitizeInput(f.YearCreated),
		Price:           utils.SanitizeInput(f.Price),
		Description:     utils.SanitizeInput(f.Description),
		ArtistStatement: utils.SanitizeInput(f.ArtistStatement),
	}
}
