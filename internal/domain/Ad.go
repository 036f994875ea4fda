package domain

import "time"

type AdEffectiveStatus string

const (
	AdStatusActive AdEffectiveStatus = "ACTIVE"
	AdStatusPaused AdEffectiveStatus = "PAUSED"
)

// Ad é o espelho local de um anúncio ativo na plataforma externa.
// O campo EffectiveStatus reflete o último estado conhecido: a reconciliação
// insere anúncios observados como ativos e remove os que deixaram de ser
// reportados, mas nunca sobrescreve um pause/reativação feito manualmente
// durante a mesma execução.
type Ad struct {
	ID                 int64             `json:"id"`
	ExternalID         string            `json:"external_id"`
	AccountID          string            `json:"account_id"`
	ClientID           string            `json:"client_id"`
	CampaignExternalID string            `json:"campaign_external_id"`
	AdsetExternalID    string            `json:"adset_external_id"`
	Name               string            `json:"name"`
	EffectiveStatus    AdEffectiveStatus `json:"effective_status"`
	CreativeID         string            `json:"creative_id"`
	OptimizationGoal   string            `json:"optimization_goal"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// NeedsUpdate compara os campos que a reconciliação tem permissão de alterar.
// O effective_status fica de fora de propósito: mudanças de status feitas por
// ação humana fora da sincronização não devem ser desfeitas aqui.
func (a *Ad) NeedsUpdate(remote *Ad) bool {
	return a.Name != remote.Name ||
		a.CreativeID != remote.CreativeID ||
		a.OptimizationGoal != remote.OptimizationGoal ||
		a.AdsetExternalID != remote.AdsetExternalID
}
