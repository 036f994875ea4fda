package metadomain

// Creative é a expansão opcional do criativo de um anúncio.
type Creative struct {
	ID string `json:"id"`
}

// Adset é a expansão opcional do conjunto de anúncios; o optimization_goal
// vem daqui.
type Adset struct {
	ID               string `json:"id"`
	OptimizationGoal string `json:"optimization_goal"`
}

// Ad é o anúncio como a Graph API devolve na listagem filtrada por
// effective_status ACTIVE. Creative e Adset podem vir vazios quando o
// segundo passe de enriquecimento falha; isso é best-effort.
type Ad struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	EffectiveStatus string    `json:"effective_status"`
	CampaignID      string    `json:"campaign_id"`
	AdsetID         string    `json:"adset_id"`
	Creative        *Creative `json:"creative,omitempty"`
	Adset           *Adset    `json:"adset,omitempty"`
}
