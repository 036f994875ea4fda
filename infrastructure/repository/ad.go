package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/adsight/ads-sync-engine/infrastructure/database/postgres"
	"github.com/adsight/ads-sync-engine/internal/domain"
)

const adsTable = "ads a"

//go:generate mockgen -source=ad.go -destination=mocks/ad_mock.go -package=mocks

type AdRepository interface {
	ListByAccount(accountID string) ([]*domain.Ad, error)
	InsertAds(ads []*domain.Ad) error
	UpdateAd(ad *domain.Ad) error
	UpdateEffectiveStatus(externalID string, status domain.AdEffectiveStatus) error
	DeleteByExternalIDs(accountID string, externalIDs []string) (int64, error)
}

type adRepository struct {
	conn *postgres.Connection
}

func NewAdRepository(conn *postgres.Connection) AdRepository {
	return &adRepository{
		conn: conn,
	}
}

const adColumns = "a.id, a.external_id, a.account_id, a.client_id, a.campaign_external_id, " +
	"a.adset_external_id, a.name, a.effective_status, a.creative_id, a.optimization_goal, " +
	"a.created_at, a.updated_at"

func (r *adRepository) ListByAccount(accountID string) ([]*domain.Ad, error) {
	query, args, err := squirrel.
		Select(adColumns).
		From(adsTable).
		Where(squirrel.Eq{"a.account_id": accountID}).
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

	ads := make([]*domain.Ad, 0)
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear anúncio: %w", err)
		}
		ads = append(ads, ad)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ads, nil
}

// InsertAds insere os anúncios novos em lote. Colisão de external_id é
// ignorada: a reconciliação já separou o conjunto de inserts.
func (r *adRepository) InsertAds(ads []*domain.Ad) error {
	if len(ads) == 0 {
		return nil
	}

	builder := squirrel.StatementBuilder.
		Insert("ads").
		Columns("external_id", "account_id", "client_id", "campaign_external_id",
			"adset_external_id", "name", "effective_status", "creative_id", "optimization_goal")

	for _, ad := range ads {
		builder = builder.Values(
			ad.ExternalID,
			ad.AccountID,
			ad.ClientID,
			ad.CampaignExternalID,
			ad.AdsetExternalID,
			ad.Name,
			ad.EffectiveStatus,
			ad.CreativeID,
			ad.OptimizationGoal,
		)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (external_id) DO NOTHING").
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

// UpdateAd atualiza apenas os campos que a reconciliação controla. O
// effective_status fica de fora: pausas e reativações manuais não são
// sobrescritas por uma sincronização em andamento.
func (r *adRepository) UpdateAd(ad *domain.Ad) error {
	query, args, err := squirrel.
		Update("ads").
		Set("name", ad.Name).
		Set("creative_id", ad.CreativeID).
		Set("optimization_goal", ad.OptimizationGoal).
		Set("adset_external_id", ad.AdsetExternalID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"external_id": ad.ExternalID}).
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

// UpdateEffectiveStatus é o caminho das ações de pausa/reativação feitas
// fora da reconciliação.
func (r *adRepository) UpdateEffectiveStatus(externalID string, status domain.AdEffectiveStatus) error {
	query, args, err := squirrel.
		Update("ads").
		Set("effective_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"external_id": externalID}).
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

func (r *adRepository) DeleteByExternalIDs(accountID string, externalIDs []string) (int64, error) {
	if len(externalIDs) == 0 {
		return 0, nil
	}

	query, args, err := squirrel.
		Delete("ads").
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

func scanAd(rows *sql.Rows) (*domain.Ad, error) {
	ad := &domain.Ad{}

	if err := rows.Scan(
		&ad.ID,
		&ad.ExternalID,
		&ad.AccountID,
		&ad.ClientID,
		&ad.CampaignExternalID,
		&ad.AdsetExternalID,
		&ad.Name,
		&ad.EffectiveStatus,
		&ad.CreativeID,
		&ad.OptimizationGoal,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return ad, nil
}
