package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/dazos/cfo-copilot-api/infrastructure/database/postgres"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/lib/pq"
)

const accountsTable = "accounts"

var accountColumns = []string{
	"id", "external_id", "name", "type", "status", "industry", "segment",
	"annual_revenue", "number_of_employees", "billing_country", "billing_city",
	"billing_state", "phone", "website", "created_date", "synced_at",
}

type AccountRepository interface {
	GetByExternalID(externalID string) (*domain.Account, error)
	List() ([]*domain.Account, error)
	ListExternalIDs() (map[string]string, error)
	SaveOrUpdate(accounts []*domain.Account) error
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (r *accountRepository) GetByExternalID(externalID string) (*domain.Account, error) {
	accountSQL, accountArgs, err := squirrel.
		Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.Eq{"external_id": externalID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(accountSQL, accountArgs...)

	acc, err := deserializeAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return acc, nil
}

func (r *accountRepository) List() ([]*domain.Account, error) {
	accountsSQL, accountsArgs, err := squirrel.
		Select(accountColumns...).
		From(accountsTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(accountsSQL, accountsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)

	for rows.Next() {
		acc := &domain.Account{}
		if err := rows.Scan(
			&acc.ID,
			&acc.ExternalID,
			&acc.Name,
			&acc.Type,
			&acc.Status,
			&acc.Industry,
			&acc.Segment,
			&acc.AnnualRevenue,
			&acc.NumberOfEmployees,
			&acc.BillingCountry,
			&acc.BillingCity,
			&acc.BillingState,
			&acc.Phone,
			&acc.Website,
			&acc.CreatedDate,
			&acc.SyncedAt,
		); err != nil {
			return nil, err
		}

		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}

// ListExternalIDs retorna o mapa external_id -> id interno das contas já gravadas
func (r *accountRepository) ListExternalIDs() (map[string]string, error) {
	idsSQL, idsArgs, err := squirrel.
		Select("external_id", "id").
		From(accountsTable).
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

func (r *accountRepository) SaveOrUpdate(accounts []*domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert(accountsTable).
		Columns(accountColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, acc := range accounts {
		query = query.Values(
			acc.ID,
			acc.ExternalID,
			acc.Name,
			acc.Type,
			acc.Status,
			acc.Industry,
			acc.Segment,
			acc.AnnualRevenue,
			acc.NumberOfEmployees,
			acc.BillingCountry,
			acc.BillingCity,
			acc.BillingState,
			acc.Phone,
			acc.Website,
			acc.CreatedDate,
			acc.SyncedAt,
		)
	}

	// Registros que sumiram do CRM nunca são removidos, apenas sobrescritos
	query = query.Suffix(`
		ON CONFLICT (external_id) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			status = EXCLUDED.status,
			industry = EXCLUDED.industry,
			segment = EXCLUDED.segment,
			annual_revenue = EXCLUDED.annual_revenue,
			number_of_employees = EXCLUDED.number_of_employees,
			billing_country = EXCLUDED.billing_country,
			billing_city = EXCLUDED.billing_city,
			billing_state = EXCLUDED.billing_state,
			phone = EXCLUDED.phone,
			website = EXCLUDED.website,
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

func deserializeAccount(row *sql.Row) (*domain.Account, error) {
	acc := &domain.Account{}

	if err := row.Scan(
		&acc.ID,
		&acc.ExternalID,
		&acc.Name,
		&acc.Type,
		&acc.Status,
		&acc.Industry,
		&acc.Segment,
		&acc.AnnualRevenue,
		&acc.NumberOfEmployees,
		&acc.BillingCountry,
		&acc.BillingCity,
		&acc.BillingState,
		&acc.Phone,
		&acc.Website,
		&acc.CreatedDate,
		&acc.SyncedAt,
	); err != nil {
		return nil, err
	}

	return acc, nil
}
