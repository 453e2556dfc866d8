package services

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"artist-submissions-api/models"
)

const (
	detailDocumentName = "submission_details.html"
	snapshotName       = "submission_data.json"
)

// ArtifactStore owns the on-disk directory of each submission: the uploaded
// images plus the two derived artifacts (detail document and JSON snapshot).
// The relational record stays authoritative; everything here is regenerable.
type ArtifactStore struct {
	Root     string
	SiteName string
	TZ       *time.Location
}

func NewArtifactStore(root, siteName string, tz *time.Location) *ArtifactStore {
	if tz == nil {
		tz = time.UTC
	}
	return &ArtifactStore{Root: root, SiteName: siteName, TZ: tz}
}

// Dir returns the directory that holds all files of one submission.
func (s *ArtifactStore) Dir(submissionID string) string {
	return filepath.Join(s.Root, submissionID)
}

// CreateDir creates the submission directory tree.
func (s *ArtifactStore) CreateDir(submissionID string) error {
	if err := os.MkdirAll(s.Dir(submissionID), 0o755); err != nil {
		return storageErr("Failed to create submission directory", err)
	}
	return nil
}

// SaveFile writes one uploaded image under a sanitized name derived from the
// upload position and the original extension, and returns that name. The
// extension is taken from the client-supplied filename, not sniffed.
func (s *ArtifactStore) SaveFile(submissionID string, index int, originalName string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("artwork_%d_%d%s", index+1, time.Now().In(s.TZ).Unix(), ext)

	dst, err := os.Create(filepath.Join(s.Dir(submissionID), name))
	if err != nil {
		return "", storageErr(fmt.Sprintf("Failed to upload %s", originalName), err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", storageErr(fmt.Sprintf("Failed to upload %s", originalName), err)
	}
	return name, nil
}

// Rollback removes the submission directory and everything under it. It runs
// on a failure path that already carries the original error, so removal
// problems are logged and swallowed.
func (s *ArtifactStore) Rollback(submissionID string) {
	if err := os.RemoveAll(s.Dir(submissionID)); err != nil {
		log.Printf("Warning: rollback of %s left files behind: %v", submissionID, err)
	}
}

// WriteSnapshot serializes the committed record to a pretty-printed JSON file
// next to the images, for audit and debugging independent of the database.
func (s *ArtifactStore) WriteSnapshot(submissionID string, rec *models.Submission) error {
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.Dir(submissionID), snapshotName), data, 0o644)
}

// ReadSnapshot loads a previously written snapshot file.
func (s *ArtifactStore) ReadSnapshot(submissionID string) (*models.Submission, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(submissionID), snapshotName))
	if err != nil {
		return nil, err
	}
	var rec models.Submission
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// WriteDetailDocument renders a static, self-contained HTML page for the
// committed record, matching what reviewers see in the gallery back office.
func (s *ArtifactStore) WriteDetailDocument(submissionID string, rec *models.Submission) error {
	f, err := os.Create(filepath.Join(s.Dir(submissionID), detailDocumentName))
	if err != nil {
		return err
	}
	defer f.Close()

	data := struct {
		SiteName    string
		SubmittedAt string
		StatusLabel string
		Record      *models.Submission
	}{
		SiteName:    s.SiteName,
		SubmittedAt: rec.SubmissionDate.In(s.TZ).Format("2006-01-02 15:04:05"),
		StatusLabel: strings.ToUpper(rec.Status[:1]) + rec.Status[1:],
		Record:      rec,
	}
	return detailTemplate.Execute(f, data)
}

var detailTemplate = template.Must(template.New("detail").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Submission Details - {{.Record.SubmissionID}}</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
        .container { background: white; padding: 30px; border-radius: 10px; box-shadow: 0 5px 15px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #2c3e50 0%, #34495e 100%); color: white; padding: 20px; border-radius: 8px; margin-bottom: 30px; text-align: center; }
        .section { margin-bottom: 25px; padding: 20px; border: 1px solid #e1e8ed; border-radius: 8px; }
        .section h3 { color: #2c3e50; margin-bottom: 15px; border-bottom: 2px solid #667eea; padding-bottom: 5px; }
        .field { margin-bottom: 10px; }
        .field strong { color: #2c3e50; display: inline-block; width: 150px; }
        .images { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 15px; margin-top: 15px; }
        .images img { width: 100%; height: 200px; object-fit: cover; border-radius: 8px; box-shadow: 0 3px 10px rgba(0,0,0,0.2); }
        .status { background: #f39c12; color: white; padding: 5px 15px; border-radius: 20px; font-size: 0.9em; font-weight: bold; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.SiteName}}</h1>
            <p>Submission ID: {{.Record.SubmissionID}}</p>
            <p>Submitted: {{.SubmittedAt}}</p>
            <span class="status">{{.StatusLabel}}</span>
        </div>

        <div class="section">
            <h3>Artist Information</h3>
            <div class="field"><strong>Name:</strong> {{.Record.FirstName}} {{.Record.LastName}}</div>
            <div class="field"><strong>Email:</strong> {{.Record.Email}}</div>
            <div class="field"><strong>Phone:</strong> {{.Record.Phone}}</div>
            <div class="field"><strong>Website:</strong> {{.Record.Website}}</div>
            <div class="field"><strong>Address:</strong> {{.Record.Address}}</div>
        </div>

        <div class="section">
            <h3>Artwork Details</h3>
            <div class="field"><strong>Title:</strong> {{.Record.ArtworkTitle}}</div>
            <div class="field"><strong>Medium:</strong> {{.Record.Medium}}</div>
            <div class="field"><strong>Dimensions:</strong> {{.Record.Dimensions}}</div>
            <div class="field"><strong>Year Created:</strong> {{.Record.YearCreated}}</div>
            <div class="field"><strong>Price:</strong> {{.Record.Price}}</div>
            <div class="field"><strong>Description:</strong><br>{{.Record.Description}}</div>
            <div class="field"><strong>Artist Statement:</strong><br>{{.Record.ArtistStatement}}</div>
        </div>

        <div class="section">
            <h3>Artwork Images</h3>
            <div class="images">
{{- range .Record.ImageFiles}}
                <img src="{{.}}" alt="Artwork Image">
{{- end}}
            </div>
        </div>
    </div>
</body>
</html>
`))
