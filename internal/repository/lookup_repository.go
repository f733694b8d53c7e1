package repository

// lookup_repository.go gives every reference table (statuses, cpu types,
// connection types, printer features, divisions, locations, location types,
// parishes, roles) one uniform CRUD surface.  Each kind declares which
// columns elsewhere reference it; deleting a lookup row nulls those columns
// first, inside the same transaction, so no dangling reference survives.
// This generalizes the status-only compensation the system started with.

import (
	"context"
	"database/sql"
	"errors"
)

// columnRef names a column in another table that stores this lookup's id.
type columnRef struct {
	Table  string
	Column string
}

// lookupKind describes one reference table: where it lives, which column
// carries the display text, and who points at it.
type lookupKind struct {
	Table   string
	NameCol string
	Refs    []columnRef
}

// lookupKinds keys every supported kind by its URL slug.
var lookupKinds = map[string]lookupKind{
	"status": {Table: "statuses", NameCol: "description", Refs: []columnRef{
		{Table: "devices", Column: "status_id"},
	}},
	"cpu-type": {Table: "cpu_types", NameCol: "description", Refs: []columnRef{
		{Table: "laptops", Column: "cpu_type_id"},
	}},
	"connection-type": {Table: "connection_types", NameCol: "description", Refs: []columnRef{
		{Table: "mouse_keyboards", Column: "connection_type_id"},
		{Table: "printers", Column: "connection_type_id"},
	}},
	"printer-feature": {Table: "printer_features", NameCol: "description", Refs: []columnRef{
		{Table: "printers", Column: "feature_id"},
	}},
	"division": {Table: "divisions", NameCol: "name", Refs: []columnRef{
		{Table: "devices", Column: "division_id"},
		{Table: "clients", Column: "division_id"},
	}},
	"location": {Table: "locations", NameCol: "name", Refs: []columnRef{
		{Table: "divisions", Column: "location_id"},
	}},
	"location-type": {Table: "location_types", NameCol: "description", Refs: []columnRef{
		{Table: "locations", Column: "location_type_id"},
	}},
	"parish": {Table: "parishes", NameCol: "name", Refs: []columnRef{
		{Table: "locations", Column: "parish_id"},
	}},
	"role": {Table: "roles", NameCol: "name", Refs: []columnRef{
		{Table: "users", Column: "role_id"},
	}},
}

// LookupKindSlugs lists the registered kinds; the router builds one endpoint
// trio per slug.
func LookupKindSlugs() []string {
	out := make([]string, 0, len(lookupKinds))
	for k := range lookupKinds {
		out = append(out, k)
	}
	return out
}

// Lookup is one reference row.  Name carries the description or name column
// depending on the kind.
type Lookup struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	AddedBy   *string `json:"added_by"`
	DateAdded *string `json:"date_added"`
}

type LookupRepo struct{ DB *sql.DB }

func NewLookupRepo(db *sql.DB) *LookupRepo { return &LookupRepo{DB: db} }

var ErrLookupNotFound = errors.New("lookup entry not found")
var ErrUnknownLookupKind = errors.New("unknown lookup kind")

// Add inserts a new entry for the kind, stamping who added it and when.
func (r *LookupRepo) Add(ctx context.Context, kind, name, addedBy string) (Lookup, error) {
	k, ok := lookupKinds[kind]
	if !ok {
		return Lookup{}, ErrUnknownLookupKind
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO `+k.Table+` (`+k.NameCol+`, added_by, date_added) VALUES (?,?,CURDATE())`,
		name, addedBy)
	if err != nil {
		return Lookup{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Lookup{}, err
	}
	return Lookup{ID: uint64(id), Name: name, AddedBy: &addedBy}, nil
}

// List returns every entry for the kind ordered by id.
func (r *LookupRepo) List(ctx context.Context, kind string) ([]Lookup, error) {
	k, ok := lookupKinds[kind]
	if !ok {
		return nil, ErrUnknownLookupKind
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, `+k.NameCol+`, added_by, DATE_FORMAT(date_added,'%Y-%m-%d') FROM `+k.Table+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Lookup{}
	for rows.Next() {
		var l Lookup
		if err := rows.Scan(&l.ID, &l.Name, &l.AddedBy, &l.DateAdded); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Delete removes the entry whose name matches exactly, first nulling every
// column that references it.  The compensation and the delete commit or roll
// back together.  A missing entry is ErrLookupNotFound.
func (r *LookupRepo) Delete(ctx context.Context, kind, name string) error {
	k, ok := lookupKinds[kind]
	if !ok {
		return ErrUnknownLookupKind
	}

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

	var id uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM `+k.Table+` WHERE `+k.NameCol+`=? LIMIT 1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrLookupNotFound
		return err
	}
	if err != nil {
		return err
	}

	for _, ref := range k.Refs {
		if _, err = tx.ExecContext(ctx,
			`UPDATE `+ref.Table+` SET `+ref.Column+`=NULL WHERE `+ref.Column+`=?`, id); err != nil {
			return err
		}
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM `+k.Table+` WHERE id=?`, id)
	return err
}
