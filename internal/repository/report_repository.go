package repository

import (
	"context"
	"database/sql"
)

// CategoryCount pairs a device category with how many devices a location has
// in it.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// LocationReport groups one location's device counts by category.
type LocationReport struct {
	LocationID   uint64          `json:"location_id"`
	LocationName string          `json:"location_name"`
	Categories   []CategoryCount `json:"categories"`
}

type ReportRepo struct{ DB *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

// LocationCategoryCounts walks every location and counts its divisions'
// devices per category.  The per-location loop is fine at this data scale and
// keeps the grouping readable.
func (r *ReportRepo) LocationCategoryCounts(ctx context.Context) ([]LocationReport, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM locations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []LocationReport{}
	for rows.Next() {
		var rep LocationReport
		if err := rows.Scan(&rep.LocationID, &rep.LocationName); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range reports {
		counts, err := r.categoryCountsFor(ctx, reports[i].LocationID)
		if err != nil {
			return nil, err
		}
		reports[i].Categories = counts
	}
	return reports, nil
}

func (r *ReportRepo) categoryCountsFor(ctx context.Context, locationID uint64) ([]CategoryCount, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT d.category, COUNT(*)
		 FROM devices d
		 JOIN divisions v ON v.id = d.division_id
		 WHERE v.location_id = ?
		 GROUP BY d.category
		 ORDER BY d.category`, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CategoryCount{}
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
