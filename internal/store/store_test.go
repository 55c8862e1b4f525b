package store

import (
	"path/filepath"
	"syscall"
	"testing"

	"github.com/diavoice/DiaVoice/internal/models"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	// Unknown session reads as (nil, nil).
	state, err := s.GetSession("missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != nil {
		t.Fatal("expected nil state for unknown session")
	}

	saved := models.NewSessionState("s1")
	saved.Answers[models.FieldGender] = models.TextValue("female")
	saved.Answers[models.FieldGlucose] = models.NumberValue(148)
	saved.QuestionIndex = 3
	saved.PendingFollowUps = []models.Field{models.FieldGlucoseTime, models.FieldGlucoseSymptoms}
	saved.ActiveFollowUp = models.FieldGlucoseFasting
	saved.FollowUpAnswers[models.FieldGlucoseFasting] = models.TextValue("yes")
	if err := s.SaveSession(*saved); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	got, err := s.GetSession("s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got == nil {
		t.Fatal("saved session not found")
	}
	if got.QuestionIndex != 3 || got.ActiveFollowUp != models.FieldGlucoseFasting {
		t.Errorf("state round-trip mismatch: %+v", got)
	}
	if v := got.Answers[models.FieldGlucose]; v.Number != 148 || v.IsText {
		t.Errorf("numeric answer mismatch: %v", v)
	}
	if v := got.Answers[models.FieldGender]; v.Text != "female" || !v.IsText {
		t.Errorf("text answer mismatch: %v", v)
	}
	if len(got.PendingFollowUps) != 2 || got.PendingFollowUps[0] != models.FieldGlucoseTime {
		t.Errorf("pending queue mismatch: %v", got.PendingFollowUps)
	}

	// Saves are last-write-wins.
	saved.QuestionIndex = 4
	if err := s.SaveSession(*saved); err != nil {
		t.Fatalf("second SaveSession failed: %v", err)
	}
	got, err = s.GetSession("s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.QuestionIndex != 4 {
		t.Errorf("overwrite not applied, index = %d", got.QuestionIndex)
	}

	if err := s.DeleteSession("s1"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	got, err = s.GetSession("s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got != nil {
		t.Error("session still present after delete")
	}

	// Deleting an absent session is not an error.
	if err := s.DeleteSession("s1"); err != nil {
		t.Errorf("DeleteSession on absent session: %v", err)
	}
}

func TestInMemoryStore(t *testing.T) {
	s := NewInMemoryStore()
	exerciseStore(t, s)
}

func TestInMemoryStoreReturnsCopy(t *testing.T) {
	s := NewInMemoryStore()
	state := models.NewSessionState("s1")
	if err := s.SaveSession(*state); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	first, _ := s.GetSession("s1")
	first.QuestionIndex = 99
	second, _ := s.GetSession("s1")
	if second.QuestionIndex == 99 {
		t.Error("mutating a returned state must not affect the stored copy")
	}
}

func TestSQLiteStore(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "sessions.db")
	s, err := NewSQLiteStore(WithDSN(dsn))
	if err != nil {
		t.Fatalf("failed to open SQLite store: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestPostgresStore(t *testing.T) {
	// Requires a running PostgreSQL instance; set DATABASE_URL to run.
	connStr := getenvOrSkip(t, "DATABASE_URL")
	s, err := NewPostgresStore(WithDSN(connStr))
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	defer s.Close()
	s.db.Exec("DELETE FROM sessions")
	exerciseStore(t, s)
}

func TestNewInfersBackend(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if _, ok := s.(*InMemoryStore); !ok {
		t.Errorf("empty DSN should select the in-memory store, got %T", s)
	}

	dsn := filepath.Join(t.TempDir(), "sessions.db")
	s, err = New(WithDSN(dsn))
	if err != nil {
		t.Fatalf("New(WithDSN) failed: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLiteStore); !ok {
		t.Errorf("file DSN should select the SQLite store, got %T", s)
	}

	if _, err := New(WithDriver("bogus")); err == nil {
		t.Error("unknown driver should fail")
	}
}

func getenvOrSkip(t *testing.T, key string) string {
	v := ""
	if val, ok := syscall.Getenv(key); ok {
		v = val
	}
	if v == "" {
		t.Skipf("env %s not set", key)
	}
	return v
}
