package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Client represents a person a device can be assigned to.  Clients cannot log
// in; they are referenced from devices by id and carry contact details plus
// the division they sit in.
type Client struct {
	ID          uint64  `json:"id"`
	Firstname   string  `json:"firstname"`
	Lastname    string  `json:"lastname"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Position    *string `json:"position"`
	DivisionID  *uint64 `json:"division_id"`
	DateCreated *string `json:"date_created"`
	AddedBy     *string `json:"added_by"`
}

type ClientRepo struct{ DB *sql.DB }

func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{DB: db} }

var ErrClientEmailExists = errors.New("client email already exists")
var ErrClientNotFound = errors.New("client not found")

// Create inserts a client, stamping added_by with the acting user's full name
// and date_created with the current date.  A duplicate email surfaces as
// ErrClientEmailExists and leaves the existing client untouched.
func (r *ClientRepo) Create(ctx context.Context, c *Client, addedBy string) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO clients (firstname, lastname, email, phone_number, position, division_id, date_created, added_by)
		 VALUES (?,?,?,?,?,?,CURDATE(),?)`,
		c.Firstname, c.Lastname, c.Email, c.PhoneNumber, c.Position, c.DivisionID, addedBy)
	if err != nil {
		if dupKey(err) {
			return ErrClientEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	c.AddedBy = &addedBy
	return nil
}

// Delete removes the client matching firstname AND lastname, compared BINARY
// so case differences never match.  Unlike user deletion the match excludes
// email.  Devices assigned to the deleted client are unassigned in the same
// transaction so no dangling client_id survives.
func (r *ClientRepo) Delete(ctx context.Context, firstname, lastname string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`UPDATE devices SET client_id=NULL, unassigned_on=CURDATE()
		 WHERE client_id IN (SELECT id FROM clients WHERE BINARY firstname=? AND BINARY lastname=?)`,
		firstname, lastname); err != nil {
		return err
	}
	var res sql.Result
	res, err = tx.ExecContext(ctx,
		`DELETE FROM clients WHERE BINARY firstname=? AND BINARY lastname=?`, firstname, lastname)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrClientNotFound
		return err
	}
	return nil
}

// List returns clients, optionally narrowed by a case-insensitive substring
// match against the "firstname lastname" concatenation.
func (r *ClientRepo) List(ctx context.Context, nameFilter string) ([]Client, error) {
	q := `SELECT id, firstname, lastname, email, phone_number, position, division_id,
		DATE_FORMAT(date_created,'%Y-%m-%d'), added_by FROM clients`
	args := []any{}
	if f := strings.TrimSpace(nameFilter); f != "" {
		q += ` WHERE LOWER(CONCAT(firstname,' ',lastname)) LIKE ?`
		args = append(args, "%"+strings.ToLower(f)+"%")
	}
	q += ` ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Client{}
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Firstname, &c.Lastname, &c.Email,
			&c.PhoneNumber, &c.Position, &c.DivisionID, &c.DateCreated, &c.AddedBy); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
