package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dwr-api/internal/models"

	"go.uber.org/zap"
)

const (
	insertReportSQL = `
		INSERT INTO daily_work_reports (
			work_date, foreman_id, project_id, arrival_time, departure_time,
			truck_id, trailer_id, billable_work, maybe_explanation, per_diem
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	insertCrewMemberSQL = `INSERT INTO dwr_crew_members (dwr_id, laborer_id) VALUES ($1, $2)`

	insertMachineSQL = `INSERT INTO dwr_machines (dwr_id, machine_id) VALUES ($1, $2)`

	insertItemSQL = `
		INSERT INTO dwr_items (
			dwr_id, item_name, quantity, unit, location_description,
			latitude, longitude, duration_hours, notes, item_index
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DWRRepository stores daily work reports.
type DWRRepository struct {
	db     *sql.DB
	atomic bool
	logger *zap.Logger
}

// NewDWRRepository creates a repository. With atomic set, a report and its
// children are written in one transaction; otherwise each statement commits on
// its own and a failure part way leaves the header without all of its children.
func NewDWRRepository(db *sql.DB, atomic bool, logger *zap.Logger) *DWRRepository {
	return &DWRRepository{db: db, atomic: atomic, logger: logger}
}

// Submit inserts the header, crew members, machines and items of a report and
// returns the generated report id.
func (r *DWRRepository) Submit(ctx context.Context, report *models.DailyWorkReport) (int64, error) {
	if !r.atomic {
		return r.insert(ctx, r.db, report)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := r.insert(ctx, tx, report)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit report %d: %w", id, err)
	}
	return id, nil
}

func (r *DWRRepository) insert(ctx context.Context, q execer, report *models.DailyWorkReport) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, insertReportSQL,
		models.ValueOrNull(report.WorkDate), report.ForemanID, report.ProjectID,
		models.ValueOrNull(report.ArrivalTime), models.ValueOrNull(report.DepartureTime),
		report.TruckID.OrNull(), report.TrailerID.OrNull(), models.ValueOrNull(report.BillableWork),
		models.StringOrNull(report.MaybeExplanation), models.ValueOrNull(report.PerDiem),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoReportID
		}
		return 0, fmt.Errorf("insert report: %w", err)
	}

	for _, laborerID := range report.Laborers {
		if _, err := q.ExecContext(ctx, insertCrewMemberSQL, id, laborerID); err != nil {
			return 0, fmt.Errorf("insert crew member %s: %w", laborerID, err)
		}
	}

	for _, machineID := range report.Machines {
		if _, err := q.ExecContext(ctx, insertMachineSQL, id, machineID); err != nil {
			return 0, fmt.Errorf("insert machine %s: %w", machineID, err)
		}
	}

	for i, item := range report.Items {
		_, err := q.ExecContext(ctx, insertItemSQL,
			id, models.ValueOrNull(item.ItemName), item.Quantity, models.ValueOrNull(item.Unit),
			models.ValueOrNull(item.LocationDescription),
			item.Latitude.OrNull(), item.Longitude.OrNull(), item.DurationHours,
			models.StringOrNull(item.Notes), i+1,
		)
		if err != nil {
			return 0, fmt.Errorf("insert item %d: %w", i+1, err)
		}
	}

	r.logger.Info("report stored",
		zap.Int64("dwr_id", id),
		zap.Int("laborers", len(report.Laborers)),
		zap.Int("machines", len(report.Machines)),
		zap.Int("items", len(report.Items)),
	)
	return id, nil
}
