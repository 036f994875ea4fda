package domain

// WindowSyncStats contabiliza a sincronização de métricas de uma janela.
type WindowSyncStats struct {
	WindowDays int    `json:"window_days"`
	DateStart  string `json:"date_start"`
	DateEnd    string `json:"date_end"`
	Synced     int    `json:"synced"`
	Errors     int    `json:"errors"`
}

// SyncResult é o contrato devolvido por uma execução de reconciliação.
type SyncResult struct {
	OK    bool   `json:"ok"`
	RunID string `json:"run_id"`

	CampaignsUpserted int `json:"campaigns_upserted"`
	CampaignsDeleted  int `json:"campaigns_deleted"`
	AdsInserted       int `json:"ads_inserted"`
	AdsUpdated        int `json:"ads_updated"`
	AdsDeleted        int `json:"ads_deleted"`
	AdsSkipped        int `json:"ads_skipped"`

	MetricsSynced int               `json:"metrics_synced"`
	MetricsErrors int               `json:"metrics_errors"`
	Windows       []WindowSyncStats `json:"windows,omitempty"`

	Error             string `json:"error,omitempty"`
	ErrorDetails      string `json:"error_details,omitempty"`
	RateLimitDetected bool   `json:"rate_limit_detected,omitempty"`
	WaitTimeMinutes   int    `json:"wait_time_minutes,omitempty"`
}
