package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/dazos/cfo-copilot-api/infrastructure/database/postgres"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/lib/pq"
)

const reportSnapshotsTable = "report_snapshots"

type ReportSnapshotRepository interface {
	Save(report *domain.ReportSnapshot) error
	LatestByType(reportType string, before time.Time) (*domain.ReportSnapshot, error)
}

type reportSnapshotRepository struct {
	conn *postgres.Connection
}

func NewReportSnapshotRepository(conn *postgres.Connection) ReportSnapshotRepository {
	return &reportSnapshotRepository{
		conn: conn,
	}
}

func (r *reportSnapshotRepository) Save(report *domain.ReportSnapshot) error {
	reportSQL, reportArgs, err := squirrel.StatementBuilder.
		Insert(reportSnapshotsTable).
		Columns("report_type", "as_of", "data").
		Values(report.ReportType, report.AsOf, report.Data).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(reportSQL, reportArgs...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (r *reportSnapshotRepository) LatestByType(reportType string, before time.Time) (*domain.ReportSnapshot, error) {
	reportSQL, reportArgs, err := squirrel.
		Select("id", "report_type", "as_of", "data").
		From(reportSnapshotsTable).
		Where(squirrel.And{
			squirrel.Eq{"report_type": reportType},
			squirrel.LtOrEq{"as_of": before},
		}).
		OrderBy("as_of DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(reportSQL, reportArgs...)

	report := &domain.ReportSnapshot{}
	if err := row.Scan(
		&report.ID,
		&report.ReportType,
		&report.AsOf,
		&report.Data,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return report, nil
}
