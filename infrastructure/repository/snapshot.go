package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/dazos/cfo-copilot-api/infrastructure/database/postgres"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
)

const snapshotsTable = "arr_snapshots"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type SnapshotRepository interface {
	Save(snapshot *domain.Snapshot) error
	GetByID(id string) (*domain.Snapshot, error)
	LatestBefore(at time.Time) (*domain.Snapshot, error)
	List(tag string, limit uint64) ([]*domain.SnapshotInfo, error)
}

type snapshotRepository struct {
	conn *postgres.Connection
}

func NewSnapshotRepository(conn *postgres.Connection) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

func (r *snapshotRepository) Save(snapshot *domain.Snapshot) error {
	tableJSON, err := json.Marshal(snapshot.Table)
	if err != nil {
		return fmt.Errorf("failed to serialize arr table: %w", err)
	}

	payloadJSON, err := json.Marshal(snapshot.Payload)
	if err != nil {
		return fmt.Errorf("failed to serialize payload: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert(snapshotsTable).
		Columns("id", "tag", "snapshot_date", "captured_at", "arr_table", "payload").
		Values(
			snapshot.ID,
			snapshot.Tag,
			snapshot.SnapshotDate,
			snapshot.CapturedAt,
			tableJSON,
			payloadJSON,
		).
		PlaceholderFormat(squirrel.Dollar)

	// Snapshots "eod" são idempotentes por dia calendário: recapturar o mesmo
	// dia substitui o registro. Snapshots "sync" acumulam livremente.
	if snapshot.Tag == domain.SnapshotTagEOD {
		query = query.Suffix(`
			ON CONFLICT (tag, snapshot_date) WHERE tag = 'eod' DO UPDATE SET
				captured_at = EXCLUDED.captured_at,
				arr_table = EXCLUDED.arr_table,
				payload = EXCLUDED.payload
		`)
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (r *snapshotRepository) GetByID(id string) (*domain.Snapshot, error) {
	return r.get(squirrel.Eq{"id": id})
}

// LatestBefore retorna o snapshot mais recente com captured_at <= at
func (r *snapshotRepository) LatestBefore(at time.Time) (*domain.Snapshot, error) {
	return r.get(squirrel.LtOrEq{"captured_at": at})
}

func (r *snapshotRepository) get(where interface{}) (*domain.Snapshot, error) {
	snapSQL, snapArgs, err := squirrel.
		Select("id", "tag", "snapshot_date", "captured_at", "arr_table", "payload", "created_at").
		From(snapshotsTable).
		Where(where).
		OrderBy("captured_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(snapSQL, snapArgs...)

	snapshot := &domain.Snapshot{}
	var tableJSON, payloadJSON []byte

	if err := row.Scan(
		&snapshot.ID,
		&snapshot.Tag,
		&snapshot.SnapshotDate,
		&snapshot.CapturedAt,
		&tableJSON,
		&payloadJSON,
		&snapshot.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(tableJSON, &snapshot.Table); err != nil {
		return nil, fmt.Errorf("failed to deserialize arr table: %w", err)
	}

	if len(payloadJSON) > 0 {
		if err := json.Unmarshal(payloadJSON, &snapshot.Payload); err != nil {
			return nil, fmt.Errorf("failed to deserialize payload: %w", err)
		}
	}

	return snapshot, nil
}

func (r *snapshotRepository) List(tag string, limit uint64) ([]*domain.SnapshotInfo, error) {
	queryBuilder := squirrel.
		Select("id", "tag", "snapshot_date", "captured_at", "COALESCE((arr_table->>'grand_total')::numeric, 0)").
		From(snapshotsTable).
		OrderBy("captured_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if tag != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"tag": tag})
	}

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(limit)
	}

	listSQL, listArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(listSQL, listArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	infos := make([]*domain.SnapshotInfo, 0)

	for rows.Next() {
		info := &domain.SnapshotInfo{}
		if err := rows.Scan(
			&info.ID,
			&info.Tag,
			&info.SnapshotDate,
			&info.CapturedAt,
			&info.GrandTotal,
		); err != nil {
			return nil, err
		}

		infos = append(infos, info)
	}

	return infos, rows.Err()
}
