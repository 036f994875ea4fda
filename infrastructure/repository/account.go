package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/adsight/ads-sync-engine/infrastructure/database/postgres"
	"github.com/adsight/ads-sync-engine/internal/domain"
)

const adAccountsTable = "ad_accounts aa"

//go:generate mockgen -source=account.go -destination=mocks/account_mock.go -package=mocks

type AccountRepository interface {
	GetAccountByID(accountID string) (*domain.AdAccount, error)
	GetAccountByExternalID(externalID string) (*domain.AdAccount, error)
	ListAccounts(availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error)
	CreateAccount(account *domain.AdAccount) error
	UpdateAccount(request *domain.UpdateAdAccountRequest, sealedToken *string) error
	UpdateSyncStatus(accountID string, status domain.SyncStatus, syncError *string) error
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (r *accountRepository) GetAccountByID(accountID string) (*domain.AdAccount, error) {
	return r.getAccount(squirrel.Eq{"aa.id": accountID})
}

func (r *accountRepository) GetAccountByExternalID(externalID string) (*domain.AdAccount, error) {
	return r.getAccount(squirrel.Eq{"aa.external_id": externalID})
}

func (r *accountRepository) getAccount(whereClause map[string]interface{}) (*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select(accountColumns).
		From(adAccountsTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	account, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear conta: %w", err)
	}

	return account, nil
}

func (r *accountRepository) ListAccounts(availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error) {
	queryBuilder := squirrel.
		Select(accountColumns).
		From(adAccountsTable).
		OrderBy("aa.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(availableStatus) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"aa.status": availableStatus})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		account := &domain.AdAccount{}
		if err := rows.Scan(
			&account.ID,
			&account.ClientID,
			&account.Platform,
			&account.ExternalID,
			&account.Name,
			&account.SealedToken,
			&account.Status,
			&account.LastSyncAt,
			&account.LastSyncStatus,
			&account.LastSyncError,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear conta: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

func (r *accountRepository) CreateAccount(account *domain.AdAccount) error {
	query, args, err := squirrel.
		Insert("ad_accounts").
		Columns("id", "client_id", "platform", "external_id", "name", "sealed_token", "status").
		Values(
			account.ID,
			account.ClientID,
			account.Platform,
			account.ExternalID,
			account.Name,
			account.SealedToken,
			account.Status,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// UpdateAccount atualiza apenas os campos presentes na requisição. O token
// chega já selado pelo caso de uso, nunca em claro.
func (r *accountRepository) UpdateAccount(request *domain.UpdateAdAccountRequest, sealedToken *string) error {
	queryBuilder := squirrel.
		Update("ad_accounts").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": request.ID}).
		PlaceholderFormat(squirrel.Dollar)

	if request.Name != nil {
		queryBuilder = queryBuilder.Set("name", *request.Name)
	}

	if request.Status != nil {
		queryBuilder = queryBuilder.Set("status", *request.Status)
	}

	if sealedToken != nil {
		queryBuilder = queryBuilder.Set("sealed_token", *sealedToken)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// UpdateSyncStatus registra o desfecho de uma tentativa de sincronização na
// própria conta. A mensagem de erro chega truncada pelo chamador.
func (r *accountRepository) UpdateSyncStatus(accountID string, status domain.SyncStatus, syncError *string) error {
	query, args, err := squirrel.
		Update("ad_accounts").
		Set("last_sync_at", squirrel.Expr("NOW()")).
		Set("last_sync_status", status).
		Set("last_sync_error", syncError).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

const accountColumns = "aa.id, aa.client_id, aa.platform, aa.external_id, aa.name, " +
	"aa.sealed_token, aa.status, aa.last_sync_at, aa.last_sync_status, aa.last_sync_error, " +
	"aa.created_at, aa.updated_at"

func scanAccount(row *sql.Row) (*domain.AdAccount, error) {
	account := &domain.AdAccount{}

	if err := row.Scan(
		&account.ID,
		&account.ClientID,
		&account.Platform,
		&account.ExternalID,
		&account.Name,
		&account.SealedToken,
		&account.Status,
		&account.LastSyncAt,
		&account.LastSyncStatus,
		&account.LastSyncError,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return account, nil
}
