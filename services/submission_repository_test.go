package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"artist-submissions-api/models"
)

type stepKind int

const (
	kindQuery stepKind = iota
	kindExec
)

type queryStep struct {
	kind    stepKind
	pattern *regexp.Regexp
	columns []string
	rows    [][]driver.Value
	err     error
	result  driver.Result
}

type scriptedDB struct {
	mu    sync.Mutex
	steps []*queryStep
}

func (db *scriptedDB) next(kind stepKind, query string) (*queryStep, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if len(db.steps) == 0 {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	step := db.steps[0]
	if step.kind != kind {
		return nil, fmt.Errorf("unexpected kind for query %s: got %v want %v", query, kind, step.kind)
	}
	if !step.pattern.MatchString(query) {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	db.steps = db.steps[1:]
	return step, nil
}

func (db *scriptedDB) verifyComplete() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if len(db.steps) != 0 {
		return fmt.Errorf("unmet expectations: %d", len(db.steps))
	}
	return nil
}

type scriptedDriver struct {
	db *scriptedDB
}

func (d *scriptedDriver) Open(string) (driver.Conn, error) {
	return &scriptedConn{db: d.db}, nil
}

type scriptedConn struct {
	db *scriptedDB
}

func (c *scriptedConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *scriptedConn) Close() error { return nil }

func (c *scriptedConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

func (c *scriptedConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	step, err := c.db.next(kindQuery, query)
	if err != nil {
		return nil, err
	}
	if step.err != nil {
		return nil, step.err
	}
	return &scriptedRows{columns: step.columns, rows: step.rows}, nil
}

func (c *scriptedConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	step, err := c.db.next(kindExec, query)
	if err != nil {
		return nil, err
	}
	if step.err != nil {
		return nil, step.err
	}
	if step.result != nil {
		return step.result, nil
	}
	return scriptedResult{rowsAffected: 1, lastInsertID: 1}, nil
}

type scriptedResult struct {
	lastInsertID int64
	rowsAffected int64
}

func (r scriptedResult) LastInsertId() (int64, error) { return r.lastInsertID, nil }

func (r scriptedResult) RowsAffected() (int64, error) { return r.rowsAffected, nil }

type scriptedRows struct {
	columns []string
	rows    [][]driver.Value
	idx     int
}

func (r *scriptedRows) Columns() []string { return r.columns }

func (r *scriptedRows) Close() error { return nil }

func (r *scriptedRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	row := r.rows[r.idx]
	for i := range dest {
		dest[i] = nil
	}
	for i := range row {
		dest[i] = row[i]
	}
	r.idx++
	return nil
}

func newScriptedGormDB(t *testing.T, steps []*queryStep) (*gorm.DB, *scriptedDB, func()) {
	t.Helper()
	state := &scriptedDB{steps: steps}
	driverName := fmt.Sprintf("scripted_%d", time.Now().UnixNano())
	sql.Register(driverName, &scriptedDriver{db: state})

	sqlDB, err := sql.Open(driverName, "")
	if err != nil {
		t.Fatalf("failed to open sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		t.Fatalf("failed to create gorm db: %v", err)
	}

	cleanup := func() {
		_ = sqlDB.Close()
	}
	return gormDB, state, cleanup
}

func repositoryRecord() *models.Submission {
	return &models.Submission{
		SubmissionID:   "SUB_2026_deadbeefdeadbeefdeadbeefdeadbeef",
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

func TestInsertPersistsRecord(t *testing.T) {
	insertPattern := regexp.MustCompile("INSERT INTO `submissions`")

	steps := []*queryStep{
		{kind: kindExec, pattern: insertPattern},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	if err := repo.Insert(repositoryRecord()); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestInsertMapsDuplicateKey(t *testing.T) {
	insertPattern := regexp.MustCompile("INSERT INTO `submissions`")

	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: insertPattern,
			err: &gomysql.MySQLError{
				Number:  1062,
				Message: "Duplicate entry 'SUB_2026_deadbeef...' for key 'uniq_submission_id'",
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	err := repo.Insert(repositoryRecord())
	if !errors.Is(err, ErrDuplicateSubmissionID) {
		t.Fatalf("expected ErrDuplicateSubmissionID, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

var (
	currentDBPattern = regexp.MustCompile(`SELECT DATABASE\(\)`)
	hasTablePattern  = regexp.MustCompile(`information_schema\.tables`)
	hasIndexPattern  = regexp.MustCompile(`information_schema\.statistics`)
)

func schemaStep(pattern *regexp.Regexp, count int64) *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: pattern,
		columns: []string{"count"},
		rows:    [][]driver.Value{{count}},
	}
}

func databaseNameStep() *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: currentDBPattern,
		columns: []string{"DATABASE()"},
		rows:    [][]driver.Value{{"gallery"}},
	}
}

func TestEnsureUniqueIndexPasses(t *testing.T) {
	steps := []*queryStep{
		databaseNameStep(),
		schemaStep(hasTablePattern, 1),
		databaseNameStep(),
		schemaStep(hasIndexPattern, 1),
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	if err := repo.EnsureUniqueIndex(); err != nil {
		t.Fatalf("EnsureUniqueIndex returned error: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestEnsureUniqueIndexMissingTable(t *testing.T) {
	steps := []*queryStep{
		databaseNameStep(),
		schemaStep(hasTablePattern, 0),
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	err := repo.EnsureUniqueIndex()
	if err == nil || !strings.Contains(err.Error(), "submissions table") {
		t.Fatalf("expected missing-table error, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestEnsureUniqueIndexMissingIndex(t *testing.T) {
	steps := []*queryStep{
		databaseNameStep(),
		schemaStep(hasTablePattern, 1),
		databaseNameStep(),
		schemaStep(hasIndexPattern, 0),
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	err := repo.EnsureUniqueIndex()
	if err == nil || !strings.Contains(err.Error(), "uniq_submission_id") {
		t.Fatalf("expected missing-index error, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestInsertPropagatesStorageError(t *testing.T) {
	insertPattern := regexp.MustCompile("INSERT INTO `submissions`")

	steps := []*queryStep{
		{kind: kindExec, pattern: insertPattern, err: errors.New("server has gone away")},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	err := repo.Insert(repositoryRecord())
	if err == nil || errors.Is(err, ErrDuplicateSubmissionID) {
		t.Fatalf("expected generic storage error, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
