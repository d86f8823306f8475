package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/shared"
)

var errDriver = errors.New("driver failure")

func TestRepositoryErrors(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		s := NewStore(setupTestDB(t))

		if _, err := s.States.Get("missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound from Get, got %v", err)
		}

		state := models.NewState(0, "Ghost")
		state.SetID("missing")
		if err := s.States.Update(state); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound from Update, got %v", err)
		}
		if err := s.States.Delete("missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound from Delete, got %v", err)
		}
	})

	t.Run("AlreadyDeleted", func(t *testing.T) {
		s := NewStore(setupTestDB(t))
		state := mustState(t, s, "California")
		if err := s.States.Delete(state.ID()); err != nil {
			t.Fatalf("failed to delete state: %v", err)
		}
		if err := s.States.Update(state); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound updating a deleted state, got %v", err)
		}
	})

	t.Run("Validation", func(t *testing.T) {
		s := NewStore(setupTestDB(t))

		if err := s.States.Create(models.NewState(0, "")); !errors.Is(err, shared.ErrMissingField) {
			t.Errorf("expected ErrMissingField, got %v", err)
		}
		if err := s.Users.Create(models.NewUser(0, "betty@example.com", "", "")); !errors.Is(err, shared.ErrMissingField) {
			t.Errorf("expected ErrMissingField for missing password, got %v", err)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		s := NewStore(setupTestDB(t))
		mustUser(t, s, "betty@example.com")

		dup := models.NewUser(0, "betty@example.com", "", "")
		dup.SetPasswordHash("hash")
		if err := s.Users.Create(dup); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("CityRequiresState", func(t *testing.T) {
		s := NewStore(setupTestDB(t))
		if err := s.Cities.Create(models.NewCity(0, "missing", "Nowhere")); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRepositoryDriverErrors(t *testing.T) {
	t.Run("InsertFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock new: %v", err)
		}
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE states_sequence").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT value FROM states_sequence").WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(1))
		mock.ExpectExec("INSERT INTO states").WillReturnError(errDriver)
		mock.ExpectRollback()

		state := models.NewState(0, "California")
		if err := NewStateRepository(db).Create(state); !errors.Is(err, errDriver) {
			t.Errorf("expected driver error, got %v", err)
		}
		if state.ID() != "" {
			t.Error("ID must not be set when the insert fails")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("expectations: %v", err)
		}
	})

	t.Run("CountFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock new: %v", err)
		}
		defer db.Close()

		mock.ExpectQuery("SELECT COUNT").WillReturnError(errDriver)

		if _, err := NewStore(db).Stats(); !errors.Is(err, errDriver) {
			t.Errorf("expected driver error, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("expectations: %v", err)
		}
	})

	t.Run("SnapshotBeginFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock new: %v", err)
		}
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errDriver)

		if _, err := NewStore(db).Snapshot(context.Background()); !errors.Is(err, errDriver) {
			t.Errorf("expected driver error, got %v", err)
		}
	})

	t.Run("SnapshotQueryFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock new: %v", err)
		}
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("FROM states").WillReturnError(errDriver)
		mock.ExpectRollback()

		if _, err := NewStore(db).Snapshot(context.Background()); !errors.Is(err, errDriver) {
			t.Errorf("expected driver error, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("expectations: %v", err)
		}
	})
}
