package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches wrapped unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert trophy: %w", &pq.Error{Code: "23505", Constraint: "trophies_match_id_key"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other pq errors", func(t *testing.T) {
		err := &pq.Error{Code: "23503"}
		if isUniqueViolation(err) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("duplicate key value violates unique constraint")) {
			t.Fatalf("expected false for non pq error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("select match: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("connection reset")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestNullTimeRoundTrip(t *testing.T) {
	if got := nullTimeToTimePtr(sql.NullTime{}); got != nil {
		t.Fatalf("expected nil for null time, got %v", got)
	}

	at := time.Date(2026, time.March, 4, 18, 30, 0, 0, time.UTC)
	got := nullTimeToTimePtr(timePtrToNullTime(&at))
	if got == nil || !got.Equal(at) {
		t.Fatalf("unexpected round trip result: %v", got)
	}
	if timePtrToNullTime(nil).Valid {
		t.Fatalf("expected invalid null time for nil pointer")
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
