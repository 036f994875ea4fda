package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/adsight/ads-sync-engine/infrastructure/database/postgres"
	"github.com/adsight/ads-sync-engine/internal/domain"
)

const campaignsTable = "campaigns c"

//go:generate mockgen -source=campaign.go -destination=mocks/campaign_mock.go -package=mocks

type CampaignRepository interface {
	ListByAccount(accountID string) ([]*domain.Campaign, error)
	SaveOrUpdate(campaign *domain.Campaign) error
	DeleteByExternalIDs(accountID string, externalIDs []string) (int64, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) ListByAccount(accountID string) ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select("c.id, c.external_id, c.account_id, c.client_id, c.name, c.objective, c.created_at, c.updated_at").
		From(campaignsTable).
		Where(squirrel.Eq{"c.account_id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
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

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign := &domain.Campaign{}
		if err := rows.Scan(
			&campaign.ID,
			&campaign.ExternalID,
			&campaign.AccountID,
			&campaign.ClientID,
			&campaign.Name,
			&campaign.Objective,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

// SaveOrUpdate insere a campanha se ausente; em colisão de external_id
// atualiza nome e objetivo.
func (r *campaignRepository) SaveOrUpdate(campaign *domain.Campaign) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("campaigns").
		Columns("external_id", "account_id", "client_id", "name", "objective").
		Values(
			campaign.ExternalID,
			campaign.AccountID,
			campaign.ClientID,
			campaign.Name,
			campaign.Objective,
		).
		Suffix(`
			ON CONFLICT (external_id) DO UPDATE SET
				name = EXCLUDED.name,
				objective = EXCLUDED.objective,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *campaignRepository) DeleteByExternalIDs(accountID string, externalIDs []string) (int64, error) {
	if len(externalIDs) == 0 {
		return 0, nil
	}

	query, args, err := squirrel.
		Delete("campaigns").
		Where(squirrel.Eq{"account_id": accountID, "external_id": externalIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return affected, nil
}
