package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/utils"
)

// User mirrors the 'users' table.  These are staff accounts that can log in;
// the people equipment is handed to live in the clients table instead.
type User struct {
	ID           uint64  `json:"id"`
	Firstname    string  `json:"firstname"`
	Lastname     string  `json:"lastname"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	RoleID       *uint64 `json:"role_id"`
	Active       bool    `json:"active"`
	DateCreated  *string `json:"date_created"`
	LastUpdated  *string `json:"last_updated"`
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")
var ErrUserNotFound = errors.New("user not found")

const userCols = `id, firstname, lastname, email, password_hash, role_id, active,
	DATE_FORMAT(date_created,'%Y-%m-%d'), DATE_FORMAT(last_updated,'%Y-%m-%d')`

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Firstname, &u.Lastname, &u.Email, &u.PasswordHash,
		&u.RoleID, &u.Active, &u.DateCreated, &u.LastUpdated)
	return u, err
}

// Create inserts a staff user, hashing the password before it is stored, and
// returns the new row id.  Duplicate emails surface as ErrEmailExists.  Email
// matching is exact and case sensitive throughout this repository.
func (r *UserRepo) Create(ctx context.Context, u *User, password string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (firstname, lastname, email, password_hash, role_id, active, date_created, last_updated)
		 VALUES (?,?,?,?,?,?,CURDATE(),CURDATE())`,
		u.Firstname, u.Lastname, u.Email, hash, u.RoleID, u.Active)
	if err != nil {
		if dupKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	u.ID = uint64(id)
	return u.ID, nil
}

// GetByEmail fetches a user by exact email.  Missing users are reported as
// ErrUserNotFound so the token middleware can reject stale bearer tokens.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE email=? LIMIT 1`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}

// Authenticate looks up a user by email and verifies the password.  A missing
// user and a wrong password both come back as ok=false with no way for the
// caller to tell which check failed.  The error return is reserved for real
// database failures.
func (r *UserRepo) Authenticate(ctx context.Context, username, password string) (User, bool, error) {
	u, err := r.GetByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, false, nil
		}
		return User{}, false, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return User{}, false, nil
	}
	return u, true, nil
}

// Delete removes the user matching firstname AND lastname AND email.  All
// three fields must match exactly, including case: names are compared BINARY
// and the email column already collates binary.  Zero affected rows is
// ErrUserNotFound.
func (r *UserRepo) Delete(ctx context.Context, firstname, lastname, email string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM users WHERE BINARY firstname=? AND BINARY lastname=? AND email=?`,
		firstname, lastname, email)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the stored hash for a user and stamps last_updated.
// This is the only mutation users receive after creation.
func (r *UserRepo) UpdatePassword(ctx context.Context, email, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password_hash=?, last_updated=CURDATE() WHERE email=?`,
		hash, email)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DefaultAdminEmail identifies the bootstrap account created on first start.
const DefaultAdminEmail = "admin@inventory.local"

const defaultAdminPassword = "ChangeMe123!"

// EnsureDefaultUser creates the bootstrap admin account when no user with the
// sentinel email exists yet.  It is idempotent and never fails startup: any
// error is logged and swallowed so an operator can repair the database while
// the server keeps serving.
func (r *UserRepo) EnsureDefaultUser(ctx context.Context, cost int) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE email=? LIMIT 1`, DefaultAdminEmail).Scan(&one)
	if err == nil {
		return // already bootstrapped
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Printf("bootstrap: default user check failed: %v", err)
		return
	}
	admin := User{Firstname: "Default", Lastname: "Admin", Email: DefaultAdminEmail, Active: true}
	if _, err := r.Create(ctx, &admin, defaultAdminPassword, cost); err != nil {
		log.Printf("bootstrap: default user create failed: %v", err)
		return
	}
	log.Printf("bootstrap: created default user %s", DefaultAdminEmail)
}
