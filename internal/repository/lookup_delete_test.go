package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockLookupRepo(t *testing.T) (*LookupRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewLookupRepo(db), mock
}

// Deleting a status must null status_id on every device that carries it and
// remove exactly the one lookup row, all inside one committed transaction.
func TestLookupDeleteNullsReferencesThenRemovesRow(t *testing.T) {
	repo, mock := newMockLookupRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM statuses WHERE description").
		WithArgs("Retired").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec("UPDATE devices SET status_id=NULL WHERE status_id").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM statuses WHERE id").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(context.Background(), "status", "Retired"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestLookupDeleteUnknownNameRollsBack(t *testing.T) {
	repo, mock := newMockLookupRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM statuses WHERE description").
		WithArgs("No Such Status").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "status", "No Such Status")
	if !errors.Is(err, ErrLookupNotFound) {
		t.Fatalf("err = %v, want ErrLookupNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestLookupDeleteFailedCompensationRollsBack(t *testing.T) {
	repo, mock := newMockLookupRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM statuses WHERE description").
		WithArgs("Retired").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec("UPDATE devices SET status_id=NULL WHERE status_id").
		WithArgs(7).
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	if err := repo.Delete(context.Background(), "status", "Retired"); err == nil {
		t.Fatal("Delete: want error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
