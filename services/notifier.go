package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"artist-submissions-api/models"
)

// MailSender is what the notifier needs from config.Mailer.
type MailSender interface {
	Send(to []string, subject, body string) error
}

// EmailNotifier announces a committed submission to the gallery inbox and
// records an in-app notification row. By the time it runs the submission is
// durable, so every failure here is logged and swallowed.
type EmailNotifier struct {
	mailer MailSender
	db     *gorm.DB // optional; nil skips the in-app row
	to     string
	tz     *time.Location
}

func NewEmailNotifier(mailer MailSender, db *gorm.DB, to string, tz *time.Location) *EmailNotifier {
	if tz == nil {
		tz = time.UTC
	}
	return &EmailNotifier{mailer: mailer, db: db, to: to, tz: tz}
}

// Notify delivers a plain-text summary of the new submission. Best-effort.
func (n *EmailNotifier) Notify(rec *models.Submission) {
	n.recordNotification(rec)

	if n.to == "" {
		return
	}

	subject := "New Artist Submission - " + rec.ArtworkTitle
	body := fmt.Sprintf(`New artist submission received:

Artist: %s
Email: %s
Artwork: %s
Medium: %s
Submitted: %s

Please log in to the admin dashboard to review this submission.
`,
		rec.ArtistName(),
		rec.Email,
		rec.ArtworkTitle,
		rec.Medium,
		rec.SubmissionDate.In(n.tz).Format("2006-01-02 15:04:05"),
	)

	if err := n.mailer.Send([]string{n.to}, subject, body); err != nil {
		log.Printf("Email notification failed for %s: %v", rec.SubmissionID, err)
	}
}

func (n *EmailNotifier) recordNotification(rec *models.Submission) {
	if n.db == nil {
		return
	}
	id := rec.SubmissionID
	row := models.Notification{
		Title:               "New artist submission",
		Message:             fmt.Sprintf("%s submitted \"%s\"", rec.ArtistName(), rec.ArtworkTitle),
		Type:                "info",
		RelatedSubmissionID: &id,
		CreateAt:            time.Now().In(n.tz),
	}
	if err := n.db.Create(&row).Error; err != nil {
		log.Printf("Warning: failed to record notification for %s: %v", rec.SubmissionID, err)
	}
}
