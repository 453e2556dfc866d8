package services

import (
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"testing"
	"time"

	"artist-submissions-api/models"
)

func testStore(t *testing.T) *ArtifactStore {
	t.Helper()
	return NewArtifactStore(t.TempDir(), "Gallery Art Submissions", time.UTC)
}

func testRecord() *models.Submission {
	return &models.Submission{
		SubmissionID:   "SUB_2026_abc123",
		FirstName:      "Frida",
		LastName:       "Kahlo",
		Email:          "frida@example.com",
		ArtworkTitle:   "The Two Fridas",
		Medium:         "Oil on canvas",
		Description:    "A double self-portrait.",
		ImageFiles:     models.ImageFileList{"artwork_1_1700000000.jpg"},
		SubmissionDate: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		Status:         models.StatusPending,
	}
}

func TestCreateDirAndRollback(t *testing.T) {
	store := testStore(t)
	if err := store.CreateDir("SUB_2026_x"); err != nil {
		t.Fatalf("CreateDir: %v", err)
	}
	if _, err := os.Stat(store.Dir("SUB_2026_x")); err != nil {
		t.Fatalf("expected directory to exist: %v", err)
	}

	store.Rollback("SUB_2026_x")
	if _, err := os.Stat(store.Dir("SUB_2026_x")); !os.IsNotExist(err) {
		t.Fatalf("expected directory to be removed, got %v", err)
	}
}

func TestRollbackRemovesContents(t *testing.T) {
	store := testStore(t)
	if err := store.CreateDir("SUB_2026_x"); err != nil {
		t.Fatalf("CreateDir: %v", err)
	}
	if _, err := store.SaveFile("SUB_2026_x", 0, "photo.jpg", strings.NewReader("bytes")); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	store.Rollback("SUB_2026_x")
	if _, err := os.Stat(store.Dir("SUB_2026_x")); !os.IsNotExist(err) {
		t.Fatalf("expected directory gone after rollback, got %v", err)
	}
}

func TestSaveFileSanitizedName(t *testing.T) {
	store := testStore(t)
	if err := store.CreateDir("SUB_2026_x"); err != nil {
		t.Fatalf("CreateDir: %v", err)
	}

	name, err := store.SaveFile("SUB_2026_x", 2, "My Vacation PHOTO.JPG", strings.NewReader("jpeg bytes"))
	if err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	pattern := regexp.MustCompile(`^artwork_3_\d+\.jpg$`)
	if !pattern.MatchString(name) {
		t.Fatalf("unexpected stored name: %s", name)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir("SUB_2026_x"), name))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestSaveFileWithoutDirFails(t *testing.T) {
	store := testStore(t)
	if _, err := store.SaveFile("SUB_2026_missing", 0, "a.jpg", strings.NewReader("x")); err == nil {
		t.Fatal("expected error saving into missing directory")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := testStore(t)
	rec := testRecord()
	if err := store.CreateDir(rec.SubmissionID); err != nil {
		t.Fatalf("CreateDir: %v", err)
	}
	if err := store.WriteSnapshot(rec.SubmissionID, rec); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	got, err := store.ReadSnapshot(rec.SubmissionID)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if !reflect.DeepEqual(got, rec) {
		t.Fatalf("snapshot round trip mismatch:\n got %#v\nwant %#v", got, rec)
	}
}

func TestWriteDetailDocument(t *testing.T) {
	store := testStore(t)
	rec := testRecord()
	rec.Description = "Includes <script>alert(1)</script>"
	if err := store.CreateDir(rec.SubmissionID); err != nil {
		t.Fatalf("CreateDir: %v", err)
	}
	if err := store.WriteDetailDocument(rec.SubmissionID, rec); err != nil {
		t.Fatalf("WriteDetailDocument: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(rec.SubmissionID), "submission_details.html"))
	if err != nil {
		t.Fatalf("reading detail document: %v", err)
	}
	html := string(data)

	for _, want := range []string{
		rec.SubmissionID,
		"Frida Kahlo",
		"The Two Fridas",
		"artwork_1_1700000000.jpg",
		"Pending",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("detail document missing %q", want)
		}
	}

	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatal("detail document did not escape user content")
	}
}
