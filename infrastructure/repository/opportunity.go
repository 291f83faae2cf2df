package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/dazos/cfo-copilot-api/infrastructure/database/postgres"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/lib/pq"
)

const opportunitiesTable = "opportunities"

var opportunityColumns = []string{
	"id", "external_id", "name", "amount", "close_date", "stage_name",
	"record_type_name", "opportunity_type", "account_external_id",
	"account_name", "created_date", "synced_at",
}

type OpportunityRepository interface {
	GetByExternalID(externalID string) (*domain.Opportunity, error)
	List() ([]*domain.Opportunity, error)
	ListByAccount(accountExternalID string) ([]*domain.Opportunity, error)
	ListExternalIDs() (map[string]string, error)
	SaveOrUpdate(opportunities []*domain.Opportunity) error
}

type opportunityRepository struct {
	conn *postgres.Connection
}

func NewOpportunityRepository(conn *postgres.Connection) OpportunityRepository {
	return &opportunityRepository{
		conn: conn,
	}
}

func (r *opportunityRepository) GetByExternalID(externalID string) (*domain.Opportunity, error) {
	oppSQL, oppArgs, err := squirrel.
		Select(opportunityColumns...).
		From(opportunitiesTable).
		Where(squirrel.Eq{"external_id": externalID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(oppSQL, oppArgs...)

	opp := &domain.Opportunity{}
	if err := scanOpportunity(row.Scan, opp); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return opp, nil
}

func (r *opportunityRepository) List() ([]*domain.Opportunity, error) {
	return r.list(nil)
}

func (r *opportunityRepository) ListByAccount(accountExternalID string) ([]*domain.Opportunity, error) {
	return r.list(squirrel.Eq{"account_external_id": accountExternalID})
}

func (r *opportunityRepository) list(where interface{}) ([]*domain.Opportunity, error) {
	queryBuilder := squirrel.
		Select(opportunityColumns...).
		From(opportunitiesTable).
		OrderBy("close_date DESC NULLS LAST, name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if where != nil {
		queryBuilder = queryBuilder.Where(where)
	}

	oppsSQL, oppsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(oppsSQL, oppsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	opportunities := make([]*domain.Opportunity, 0)

	for rows.Next() {
		opp := &domain.Opportunity{}
		if err := scanOpportunity(rows.Scan, opp); err != nil {
			return nil, err
		}

		opportunities = append(opportunities, opp)
	}

	return opportunities, rows.Err()
}

func (r *opportunityRepository) ListExternalIDs() (map[string]string, error) {
	idsSQL, idsArgs, err := squirrel.
		Select("external_id", "id").
		From(opportunitiesTable).
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

func (r *opportunityRepository) SaveOrUpdate(opportunities []*domain.Opportunity) error {
	if len(opportunities) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert(opportunitiesTable).
		Columns(opportunityColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, opp := range opportunities {
		query = query.Values(
			opp.ID,
			opp.ExternalID,
			opp.Name,
			opp.Amount,
			opp.CloseDate,
			opp.StageRaw,
			opp.RecordTypeRaw,
			opp.OpportunityType,
			opp.AccountExternalID,
			opp.AccountName,
			opp.CreatedDate,
			opp.SyncedAt,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (external_id) DO UPDATE SET
			name = EXCLUDED.name,
			amount = EXCLUDED.amount,
			close_date = EXCLUDED.close_date,
			stage_name = EXCLUDED.stage_name,
			record_type_name = EXCLUDED.record_type_name,
			opportunity_type = EXCLUDED.opportunity_type,
			account_external_id = EXCLUDED.account_external_id,
			account_name = EXCLUDED.account_name,
			created_date = EXCLUDED.created_date,
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

func scanOpportunity(scan func(...interface{}) error, opp *domain.Opportunity) error {
	return scan(
		&opp.ID,
		&opp.ExternalID,
		&opp.Name,
		&opp.Amount,
		&opp.CloseDate,
		&opp.StageRaw,
		&opp.RecordTypeRaw,
		&opp.OpportunityType,
		&opp.AccountExternalID,
		&opp.AccountName,
		&opp.CreatedDate,
		&opp.SyncedAt,
	)
}
