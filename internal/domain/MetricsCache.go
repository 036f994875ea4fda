package domain

import "time"

// MetricsCacheEntry é uma linha da tabela ad_metrics_cache. A chave lógica é
// (ad_external_id, date_start, date_end, period_days): gravar de novo com a
// mesma chave substitui a linha anterior.
type MetricsCacheEntry struct {
	ID           int64      `json:"id"`
	AdExternalID string     `json:"ad_external_id"`
	AccountID    string     `json:"account_id"`
	ClientID     string     `json:"client_id"`
	DateStart    time.Time  `json:"date_start"`
	DateEnd      time.Time  `json:"date_end"`
	PeriodDays   int        `json:"period_days"`
	Metrics      *AdMetrics `json:"metrics"`
	SyncStatus   SyncStatus `json:"sync_status"`
	IsHistorical bool       `json:"is_historical"`
	SyncedAt     time.Time  `json:"synced_at"`
}

// DataSource identifica o tier que respondeu uma consulta de métricas.
type DataSource string

const (
	DataSourceExact    DataSource = "exact"
	DataSourceSimilar  DataSource = "similar"
	DataSourceRecent   DataSource = "recent"
	DataSourceFallback DataSource = "fallback"
	DataSourceEmpty    DataSource = "empty"
)

// MetricsLookupResult é o resultado de consulta para um único anúncio.
// Um miss completo não é erro: vem como DataSourceEmpty com uma sugestão
// de ação para o chamador.
type MetricsLookupResult struct {
	OK          bool       `json:"ok"`
	Cached      bool       `json:"cached"`
	DataSource  DataSource `json:"data_source"`
	Metrics     *AdMetrics `json:"metrics,omitempty"`
	PeriodStart string     `json:"period_start"`
	PeriodEnd   string     `json:"period_end"`
	SyncedAt    *time.Time `json:"synced_at,omitempty"`
	Suggestion  string     `json:"suggestion,omitempty"`
}
