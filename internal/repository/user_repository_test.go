package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/utils"
)

func newMockUserRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db), mock
}

func userRows(t *testing.T, email, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return sqlmock.NewRows([]string{
		"id", "firstname", "lastname", "email", "password_hash",
		"role_id", "active", "date_created", "last_updated",
	}).AddRow(1, "Jane", "Doe", email, hash, nil, true, nil, nil)
}

// An unknown email and a wrong password must come back as the same outcome:
// ok=false, err=nil, zero user.  Nothing may let a caller tell which check
// failed.
func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery("FROM users WHERE email").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("FROM users WHERE email").
		WillReturnRows(userRows(t, "jane@x.com", "right-password"))

	uUnknown, okUnknown, errUnknown := repo.Authenticate(context.Background(), "gone@x.com", "whatever")
	uWrong, okWrong, errWrong := repo.Authenticate(context.Background(), "jane@x.com", "wrong-password")

	if okUnknown || okWrong {
		t.Fatalf("ok = %v/%v, want false/false", okUnknown, okWrong)
	}
	if errUnknown != nil || errWrong != nil {
		t.Fatalf("err = %v/%v, want nil/nil", errUnknown, errWrong)
	}
	if uUnknown != (User{}) || uWrong != (User{}) {
		t.Errorf("users = %+v / %+v, want both zero", uUnknown, uWrong)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery("FROM users WHERE email").
		WillReturnRows(userRows(t, "jane@x.com", "right-password"))

	u, ok, err := repo.Authenticate(context.Background(), "jane@x.com", "right-password")
	if err != nil || !ok {
		t.Fatalf("Authenticate: ok=%v err=%v", ok, err)
	}
	if u.Email != "jane@x.com" || u.Firstname != "Jane" {
		t.Errorf("unexpected user: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// The delete predicate compares names BINARY so a case-mismatched request
// cannot hit a row the caller did not name exactly.
func TestUserDeleteUsesCaseSensitiveMatch(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec(`DELETE FROM users WHERE BINARY firstname=\? AND BINARY lastname=\? AND email=\?`).
		WithArgs("Jane", "Doe", "jane@x.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "Jane", "Doe", "jane@x.com"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUserDeleteNotFound(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec("DELETE FROM users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "jane", "doe", "jane@x.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
