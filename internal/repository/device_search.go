package repository

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Filter field names accepted by the search endpoints.  The set is fixed;
// anything else is rejected before a query is built.
const (
	FilterDeviceType     = "Device Type"
	FilterStatus         = "Status"
	FilterDivision       = "Division"
	FilterSerialNumber   = "Serial Number"
	FilterDeliveryDate   = "Delivery Date"
	FilterDeploymentDate = "Deployment Date"
	FilterClient         = "Client"
)

var ErrUnknownFilter = errors.New("unknown filter field")
var ErrBadDate = errors.New("date must be YYYY-MM-DD")

// DeviceView is the row shape returned by search and filter queries: the core
// device columns joined with status, division and client names.
type DeviceView struct {
	ID              uint64  `json:"id"`
	Category        string  `json:"category"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	SerialNumber    string  `json:"serial_number"`
	InventoryNumber *int64  `json:"inventory_number"`
	DeliveryDate    *string `json:"delivery_date"`
	DeploymentDate  *string `json:"deployment_date"`
	Status          *string `json:"status"`
	Division        *string `json:"division"`
	ClientID        *uint64 `json:"client_id"`
	ClientFirstname *string `json:"client_firstname"`
	ClientLastname  *string `json:"client_lastname"`
}

// buildSearchFilter translates a filter field/value pair into a WHERE clause
// fragment plus its arguments.  Text fields match case-insensitive
// substrings, date fields match the exact day and Client matches a substring
// of either name.  An empty field means no constraint.
func buildSearchFilter(field, value string) (string, []any, error) {
	if strings.TrimSpace(field) == "" {
		return "1=1", nil, nil
	}
	like := "%" + strings.ToLower(value) + "%"
	switch field {
	case FilterDeviceType:
		return "LOWER(d.category) LIKE ?", []any{like}, nil
	case FilterStatus:
		return "LOWER(s.description) LIKE ?", []any{like}, nil
	case FilterDivision:
		return "LOWER(v.name) LIKE ?", []any{like}, nil
	case FilterSerialNumber:
		return "LOWER(d.serial_number) LIKE ?", []any{like}, nil
	case FilterDeliveryDate:
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return "", nil, ErrBadDate
		}
		return "d.delivery_date = ?", []any{value}, nil
	case FilterDeploymentDate:
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return "", nil, ErrBadDate
		}
		return "d.deployment_date = ?", []any{value}, nil
	case FilterClient:
		return "(LOWER(c.firstname) LIKE ? OR LOWER(c.lastname) LIKE ?)", []any{like, like}, nil
	}
	return "", nil, ErrUnknownFilter
}

const deviceViewSelect = `SELECT d.id, d.category, d.brand, d.model, d.serial_number,
	d.inventory_number,
	DATE_FORMAT(d.delivery_date,'%Y-%m-%d'), DATE_FORMAT(d.deployment_date,'%Y-%m-%d'),
	s.description, v.name, d.client_id, c.firstname, c.lastname
	FROM devices d
	LEFT JOIN statuses s ON s.id = d.status_id
	LEFT JOIN divisions v ON v.id = d.division_id
	LEFT JOIN clients c ON c.id = d.client_id`

func (r *DeviceRepo) queryViews(ctx context.Context, cond string, args []any) ([]DeviceView, error) {
	rows, err := r.DB.QueryContext(ctx, deviceViewSelect+` WHERE `+cond+` ORDER BY d.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DeviceView{}
	for rows.Next() {
		var dv DeviceView
		if err := rows.Scan(&dv.ID, &dv.Category, &dv.Brand, &dv.Model, &dv.SerialNumber,
			&dv.InventoryNumber, &dv.DeliveryDate, &dv.DeploymentDate,
			&dv.Status, &dv.Division, &dv.ClientID, &dv.ClientFirstname, &dv.ClientLastname); err != nil {
			return nil, err
		}
		out = append(out, dv)
	}
	return out, rows.Err()
}

// Search returns devices matching the optional filter field/value pair.  An
// empty field returns everything, joined with its lookup names.
func (r *DeviceRepo) Search(ctx context.Context, field, value string) ([]DeviceView, error) {
	cond, args, err := buildSearchFilter(field, value)
	if err != nil {
		return nil, err
	}
	return r.queryViews(ctx, cond, args)
}

// SearchAssigned is Search restricted to devices currently assigned to a
// client.
func (r *DeviceRepo) SearchAssigned(ctx context.Context, field, value string) ([]DeviceView, error) {
	cond, args, err := buildSearchFilter(field, value)
	if err != nil {
		return nil, err
	}
	return r.queryViews(ctx, cond+` AND d.client_id IS NOT NULL`, args)
}

// MultiFilter is an AND across dimensions, each dimension an inclusion set.
// Nil or empty slices leave that dimension unconstrained.
type MultiFilter struct {
	Locations  []string `json:"locations"`
	Parishes   []string `json:"parishes"`
	Statuses   []string `json:"statuses"`
	Components []string `json:"components"`
}

func inSet(col string, vals []string, where *[]string, args *[]any) {
	if len(vals) == 0 {
		return
	}
	marks := strings.Repeat("?,", len(vals))
	*where = append(*where, col+" IN ("+marks[:len(marks)-1]+")")
	for _, v := range vals {
		*args = append(*args, v)
	}
}

// FilterMulti applies the multi-dimension filter over the join chain
// devices -> statuses and devices -> divisions -> locations -> parishes.
func (r *DeviceRepo) FilterMulti(ctx context.Context, f MultiFilter) ([]DeviceView, error) {
	where := []string{}
	args := []any{}
	inSet("l.name", f.Locations, &where, &args)
	inSet("p.name", f.Parishes, &where, &args)
	inSet("s.description", f.Statuses, &where, &args)
	inSet("d.category", f.Components, &where, &args)

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	q := `SELECT d.id, d.category, d.brand, d.model, d.serial_number, d.inventory_number,
		DATE_FORMAT(d.delivery_date,'%Y-%m-%d'), DATE_FORMAT(d.deployment_date,'%Y-%m-%d'),
		s.description, v.name, d.client_id, c.firstname, c.lastname
		FROM devices d
		LEFT JOIN statuses s ON s.id = d.status_id
		LEFT JOIN divisions v ON v.id = d.division_id
		LEFT JOIN locations l ON l.id = v.location_id
		LEFT JOIN parishes p ON p.id = l.parish_id
		LEFT JOIN clients c ON c.id = d.client_id
		WHERE ` + cond + ` ORDER BY d.id`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DeviceView{}
	for rows.Next() {
		var dv DeviceView
		if err := rows.Scan(&dv.ID, &dv.Category, &dv.Brand, &dv.Model, &dv.SerialNumber,
			&dv.InventoryNumber, &dv.DeliveryDate, &dv.DeploymentDate,
			&dv.Status, &dv.Division, &dv.ClientID, &dv.ClientFirstname, &dv.ClientLastname); err != nil {
			return nil, err
		}
		out = append(out, dv)
	}
	return out, rows.Err()
}

// DeliveredSince returns devices delivered on or after the given date.
func (r *DeviceRepo) DeliveredSince(ctx context.Context, date string) ([]DeviceView, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrBadDate
	}
	return r.queryViews(ctx, "d.delivery_date >= ?", []any{date})
}

// DeployedSince returns devices deployed on or after the given date.
func (r *DeviceRepo) DeployedSince(ctx context.Context, date string) ([]DeviceView, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrBadDate
	}
	return r.queryViews(ctx, "d.deployment_date >= ?", []any{date})
}
