// controllers/submission.go
package controllers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"artist-submissions-api/config"
	"artist-submissions-api/services"
)

// SubmissionController exposes the public intake endpoint.
type SubmissionController struct {
	intake *services.IntakeService
	cfg    *config.Config
}

func NewSubmissionController(intake *services.IntakeService, cfg *config.Config) *SubmissionController {
	return &SubmissionController{intake: intake, cfg: cfg}
}

// CreateSubmission handles POST /api/v1/submissions. The request is a
// multipart form carrying the artist and artwork fields plus one or more
// files under "artworkImages".
func (ctl *SubmissionController) CreateSubmission(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid multipart form",
		})
		return
	}

	fields := services.SubmissionFields{
		FirstName:       c.PostForm("firstName"),
		LastName:        c.PostForm("lastName"),
		Email:           c.PostForm("email"),
		Phone:           c.PostForm("phone"),
		Website:         c.PostForm("website"),
		Address:         c.PostForm("address"),
		ArtworkTitle:    c.PostForm("artworkTitle"),
		Medium:          c.PostForm("medium"),
		Dimensions:      c.PostForm("dimensions"),
		YearCreated:     c.PostForm("yearCreated"),
		Price:           c.PostForm("price"),
		Description:     c.PostForm("description"),
		ArtistStatement: c.PostForm("artistStatement"),
	}

	files := incomingFiles(form.File["artworkImages"])

	rec, err := ctl.intake.Process(fields, files)
	if err != nil {
		var ie *services.IntakeError
		if !errors.As(err, &ie) {
			ie = &services.IntakeError{
				Category: services.CategoryStorage,
				Message:  "Submission could not be processed",
				Err:      err,
			}
		}
		status := http.StatusInternalServerError
		if ie.ClientFixable() {
			status = http.StatusBadRequest
		} else {
			log.Printf("Submission intake failed: %v", err)
		}
		c.JSON(status, gin.H{
			"success": false,
			"message": ie.PublicMessage(ctl.cfg.DebugMode),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"message":       "Submission received successfully",
		"submission_id": rec.SubmissionID,
	})
}

func incomingFiles(headers []*multipart.FileHeader) []services.IncomingFile {
	files := make([]services.IncomingFile, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		files = append(files, services.IncomingFile{
			Name:     fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return files
}
