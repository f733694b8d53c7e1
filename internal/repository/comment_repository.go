package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Comment is an append-only note attached to a device.  Ordering is newest
// first by id; comments are removed when their device is deleted.
type Comment struct {
	ID           uint64 `json:"id"`
	DevicesID    uint64 `json:"devices_id"`
	CommentValue string `json:"comment_value"`
}

type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

var ErrCommentNotFound = errors.New("comment not found")

// Add appends a comment to a device.  When the device id does not exist the
// call reports found=false with no error; the endpoint turns that into a soft
// message payload rather than a 404.
func (r *CommentRepo) Add(ctx context.Context, devicesID uint64, text string) (*Comment, bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM devices WHERE id=? LIMIT 1`, devicesID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO comments (devices_id, comment_value) VALUES (?,?)`, devicesID, text)
	if err != nil {
		return nil, false, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, false, err
	}
	return &Comment{ID: uint64(id), DevicesID: devicesID, CommentValue: text}, true, nil
}

// ListByDevice returns a device's comments newest first.
func (r *CommentRepo) ListByDevice(ctx context.Context, devicesID uint64) ([]Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, devices_id, comment_value FROM comments WHERE devices_id=? ORDER BY id DESC`,
		devicesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.DevicesID, &c.CommentValue); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a comment by id, failing with ErrCommentNotFound when no row
// matches.
func (r *CommentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM comments WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCommentNotFound
	}
	return nil
}
