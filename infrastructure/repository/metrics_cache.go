package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/adsight/ads-sync-engine/infrastructure/database/postgres"
	"github.com/adsight/ads-sync-engine/internal/domain"
)

const metricsCacheTable = "ad_metrics_cache mc"

//go:generate mockgen -source=metrics_cache.go -destination=mocks/metrics_cache_mock.go -package=mocks

// MetricsCacheRepository acessa a tabela ad_metrics_cache, cuja chave lógica
// é (ad_external_id, date_start, date_end, period_days). Os métodos Get* das
// camadas de fallback devolvem no máximo uma linha por anúncio.
type MetricsCacheRepository interface {
	GetExact(adExternalIDs []string, dateStart, dateEnd time.Time, periodDays int) (map[string]*domain.MetricsCacheEntry, error)
	GetSameWindowRecent(adExternalIDs []string, periodDays int, since time.Time) (map[string]*domain.MetricsCacheEntry, error)
	GetAnyRecent(adExternalIDs []string, since time.Time) (map[string]*domain.MetricsCacheEntry, error)
	GetNewest(adExternalIDs []string) (map[string]*domain.MetricsCacheEntry, error)
	SaveOrUpdate(entry *domain.MetricsCacheEntry) error
	DeleteByAdExternalIDs(adExternalIDs []string) (int64, error)
}

type metricsCacheRepository struct {
	conn *postgres.Connection
}

func NewMetricsCacheRepository(conn *postgres.Connection) MetricsCacheRepository {
	return &metricsCacheRepository{
		conn: conn,
	}
}

const metricsCacheColumns = "mc.id, mc.ad_external_id, mc.account_id, mc.client_id, " +
	"mc.date_start, mc.date_end, mc.period_days, mc.metrics, mc.sync_status, " +
	"mc.is_historical, mc.synced_at"

// GetExact é o tier 1: chave exata com sync_status de sucesso.
func (r *metricsCacheRepository) GetExact(adExternalIDs []string, dateStart, dateEnd time.Time, periodDays int) (map[string]*domain.MetricsCacheEntry, error) {
	if len(adExternalIDs) == 0 {
		return map[string]*domain.MetricsCacheEntry{}, nil
	}

	query, args, err := squirrel.
		Select(metricsCacheColumns).
		From(metricsCacheTable).
		Where(squirrel.Eq{
			"mc.ad_external_id": adExternalIDs,
			"mc.date_start":     dateStart.Format(time.DateOnly),
			"mc.date_end":       dateEnd.Format(time.DateOnly),
			"mc.period_days":    periodDays,
			"mc.sync_status":    domain.SyncStatusSuccess,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryEntries(query, args)
}

// GetSameWindowRecent é o tier 2: mesmo period_days, date_end dentro do
// horizonte recente, linha mais nova por anúncio.
func (r *metricsCacheRepository) GetSameWindowRecent(adExternalIDs []string, periodDays int, since time.Time) (map[string]*domain.MetricsCacheEntry, error) {
	if len(adExternalIDs) == 0 {
		return map[string]*domain.MetricsCacheEntry{}, nil
	}

	query, args, err := squirrel.
		Select(metricsCacheColumns).
		Options("DISTINCT ON (mc.ad_external_id)").
		From(metricsCacheTable).
		Where(squirrel.Eq{
			"mc.ad_external_id": adExternalIDs,
			"mc.period_days":    periodDays,
			"mc.sync_status":    domain.SyncStatusSuccess,
		}).
		Where(squirrel.GtOrEq{"mc.date_end": since.Format(time.DateOnly)}).
		OrderBy("mc.ad_external_id", "mc.date_end DESC", "mc.synced_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryEntries(query, args)
}

// GetAnyRecent é o tier 3: qualquer janela com date_end recente.
func (r *metricsCacheRepository) GetAnyRecent(adExternalIDs []string, since time.Time) (map[string]*domain.MetricsCacheEntry, error) {
	if len(adExternalIDs) == 0 {
		return map[string]*domain.MetricsCacheEntry{}, nil
	}

	query, args, err := squirrel.
		Select(metricsCacheColumns).
		Options("DISTINCT ON (mc.ad_external_id)").
		From(metricsCacheTable).
		Where(squirrel.Eq{
			"mc.ad_external_id": adExternalIDs,
			"mc.sync_status":    domain.SyncStatusSuccess,
		}).
		Where(squirrel.GtOrEq{"mc.date_end": since.Format(time.DateOnly)}).
		OrderBy("mc.ad_external_id", "mc.date_end DESC", "mc.synced_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryEntries(query, args)
}

// GetNewest é o tier 4: a linha de sucesso mais nova de cada anúncio,
// independente de recência. Último recurso antes do "sem dados".
func (r *metricsCacheRepository) GetNewest(adExternalIDs []string) (map[string]*domain.MetricsCacheEntry, error) {
	if len(adExternalIDs) == 0 {
		return map[string]*domain.MetricsCacheEntry{}, nil
	}

	query, args, err := squirrel.
		Select(metricsCacheColumns).
		Options("DISTINCT ON (mc.ad_external_id)").
		From(metricsCacheTable).
		Where(squirrel.Eq{
			"mc.ad_external_id": adExternalIDs,
			"mc.sync_status":    domain.SyncStatusSuccess,
		}).
		OrderBy("mc.ad_external_id", "mc.synced_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryEntries(query, args)
}

// SaveOrUpdate grava a entrada na chave exata informada. Colisão substitui a
// linha anterior: a tabela nunca acumula duplicatas da mesma chave.
func (r *metricsCacheRepository) SaveOrUpdate(entry *domain.MetricsCacheEntry) error {
	var metricsJSON []byte
	var err error

	if entry.Metrics != nil {
		metricsJSON, err = json.Marshal(entry.Metrics)
		if err != nil {
			return fmt.Errorf("erro ao serializar métricas para JSON: %w", err)
		}
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("ad_metrics_cache").
		Columns("ad_external_id", "account_id", "client_id", "date_start", "date_end",
			"period_days", "metrics", "sync_status", "is_historical", "synced_at").
		Values(
			entry.AdExternalID,
			entry.AccountID,
			entry.ClientID,
			entry.DateStart.Format(time.DateOnly),
			entry.DateEnd.Format(time.DateOnly),
			entry.PeriodDays,
			metricsJSON,
			entry.SyncStatus,
			entry.IsHistorical,
			squirrel.Expr("NOW()"),
		).
		Suffix(`
			ON CONFLICT (ad_external_id, date_start, date_end, period_days) DO UPDATE SET
				metrics = EXCLUDED.metrics,
				sync_status = EXCLUDED.sync_status,
				is_historical = EXCLUDED.is_historical,
				synced_at = NOW()
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

func (r *metricsCacheRepository) DeleteByAdExternalIDs(adExternalIDs []string) (int64, error) {
	if len(adExternalIDs) == 0 {
		return 0, nil
	}

	query, args, err := squirrel.
		Delete("ad_metrics_cache").
		Where(squirrel.Eq{"ad_external_id": adExternalIDs}).
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

func (r *metricsCacheRepository) queryEntries(query string, args []interface{}) (map[string]*domain.MetricsCacheEntry, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return map[string]*domain.MetricsCacheEntry{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]*domain.MetricsCacheEntry)
	for rows.Next() {
		entry, err := scanMetricsCacheEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear entrada de cache: %w", err)
		}
		entries[entry.AdExternalID] = entry
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

func scanMetricsCacheEntry(rows *sql.Rows) (*domain.MetricsCacheEntry, error) {
	entry := &domain.MetricsCacheEntry{}
	var metricsJSON []byte

	if err := rows.Scan(
		&entry.ID,
		&entry.AdExternalID,
		&entry.AccountID,
		&entry.ClientID,
		&entry.DateStart,
		&entry.DateEnd,
		&entry.PeriodDays,
		&metricsJSON,
		&entry.SyncStatus,
		&entry.IsHistorical,
		&entry.SyncedAt,
	); err != nil {
		return nil, err
	}

	if metricsJSON != nil {
		metrics := &domain.AdMetrics{}
		if err := json.Unmarshal(metricsJSON, metrics); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de métricas: %w", err)
		}
		entry.Metrics = metrics
	}

	return entry, nil
}
