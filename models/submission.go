package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Submission statuses. The intake pipeline only ever creates rows as
// StatusPending; every later transition belongs to the admin review surface.
const (
	StatusPending  = "pending"
	StatusReviewed = "reviewed"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// ValidStatus reports whether s is one of the review statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// ImageFileList is stored as a JSON array in the image_files column.
type ImageFileList []string

func (l ImageFileList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageFileList{}
	}
	return json.Marshal(l)
}

func (l *ImageFileList) Scan(value interface{}) error {
	if value == nil {
		*l = ImageFileList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("cannot scan %T into ImageFileList", value)
}

// Submission represents the submissions table
type Submission struct {
	ID              int           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	SubmissionID    string        `gorm:"column:submission_id;uniqueIndex:uniq_submission_id;size:64" json:"submission_id"`
	FirstName       string        `gorm:"column:first_name" json:"first_name"`
	LastName        string        `gorm:"column:last_name" json:"last_name"`
	Email           string        `gorm:"column:email" json:"email"`
	Phone           string        `gorm:"column:phone" json:"phone"`
	Website         string        `gorm:"column:website" json:"website"`
	Address         string        `gorm:"column:address" json:"address"`
	ArtworkTitle    string        `gorm:"column:artwork_title" json:"artwork_title"`
	Medium          string        `gorm:"column:medium" json:"medium"`
	Dimensions      string        `gorm:"column:dimensions" json:"dimensions"`
	YearCreated     string        `gorm:"column:year_created" json:"year_created"`
	Price           string        `gorm:"column:price" json:"price"`
	Description     string        `gorm:"column:description" json:"description"`
	ArtistStatement string        `gorm:"column:artist_statement" json:"artist_statement"`
	ImageFiles      ImageFileList `gorm:"column:image_files;type:json" json:"image_files"`
	SubmissionDate  time.Time     `gorm:"column:submission_date" json:"submission_date"`
	Status          string        `gorm:"column:status;default:pending" json:"status"`
	AdminNotes      string        `gorm:"column:admin_notes" json:"admin_notes"`
	UpdatedAt       *time.Time    `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

// TableName overrides the table name for Submission
func (Submission) TableName() string {
	return "submissions"
}

// ArtistName returns the applicant's full name.
func (s *Submission) ArtistName() string {
	return s.FirstName + " " + s.LastName
}
