package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/dazos/cfo-copilot-api/infrastructure/database/postgres"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/lib/pq"
)

const lineItemsTable = "opportunity_line_items"

var lineItemColumns = []string{
	"id", "external_id", "opportunity_external_id", "product_name",
	"quantity", "unit_price", "total_price", "synced_at",
}

type LineItemRepository interface {
	List() ([]*domain.ProductLine, error)
	ListByOpportunity(opportunityExternalID string) ([]*domain.ProductLine, error)
	ListExternalIDs() (map[string]string, error)
	SaveOrUpdate(lines []*domain.ProductLine) error
}

type lineItemRepository struct {
	conn *postgres.Connection
}

func NewLineItemRepository(conn *postgres.Connection) LineItemRepository {
	return &lineItemRepository{
		conn: conn,
	}
}

func (r *lineItemRepository) List() ([]*domain.ProductLine, error) {
	return r.list(nil)
}

func (r *lineItemRepository) ListByOpportunity(opportunityExternalID string) ([]*domain.ProductLine, error) {
	return r.list(squirrel.Eq{"opportunity_external_id": opportunityExternalID})
}

func (r *lineItemRepository) list(where interface{}) ([]*domain.ProductLine, error) {
	queryBuilder := squirrel.
		Select(lineItemColumns...).
		From(lineItemsTable).
		OrderBy("product_name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if where != nil {
		queryBuilder = queryBuilder.Where(where)
	}

	linesSQL, linesArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(linesSQL, linesArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	lines := make([]*domain.ProductLine, 0)

	for rows.Next() {
		line := &domain.ProductLine{}
		if err := rows.Scan(
			&line.ID,
			&line.ExternalID,
			&line.OpportunityExternalID,
			&line.ProductName,
			&line.Quantity,
			&line.UnitPrice,
			&line.TotalPrice,
			&line.SyncedAt,
		); err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (r *lineItemRepository) ListExternalIDs() (map[string]string, error) {
	idsSQL, idsArgs, err := squirrel.
		Select("external_id", "id").
		From(lineItemsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(idsSQL, idsArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]string)

	for rows.Next() {
		var externalID, id string
		if err := rows.Scan(&externalID, &id); err != nil {
			return nil, err
		}
		ids[externalID] = id
	}

	return ids, rows.Err()
}

func (r *lineItemRepository) SaveOrUpdate(lines []*domain.ProductLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert(lineItemsTable).
		Columns(lineItemColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, line := range lines {
		query = query.Values(
			line.ID,
			line.ExternalID,
			line.OpportunityExternalID,
			line.ProductName,
			line.Quantity,
			line.UnitPrice,
			line.TotalPrice,
			line.SyncedAt,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (external_id) DO UPDATE SET
			opportunity_external_id = EXCLUDED.opportunity_external_id,
			product_name = EXCLUDED.product_name,
			quantity = EXCLUDED.quantity,
			unit_price = EXCLUDED.unit_price,
			total_price = EXCLUDED.total_price,
			synced_at = EXCLUDED.synced_at
	`)

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
