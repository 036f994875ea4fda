package metadomain

// Action é um par (action_type, value) das listas de conversões da Graph API.
// O mesmo conceito de conversão aparece sob vários action_type históricos.
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRow é uma linha de insights por anúncio. Os campos numéricos vêm
// como string da API e são convertidos na normalização.
type InsightRow struct {
	AdID             string   `json:"ad_id"`
	AdName           string   `json:"ad_name"`
	Spend            string   `json:"spend"`
	Impressions      string   `json:"impressions"`
	Reach            string   `json:"reach"`
	Frequency        string   `json:"frequency"`
	Clicks           string   `json:"clicks"`
	InlineLinkClicks string   `json:"inline_link_clicks"`
	CTR              string   `json:"ctr"`
	CPC              string   `json:"cpc"`
	CPM              string   `json:"cpm"`
	Actions          []Action `json:"actions"`
	ActionValues     []Action `json:"action_values"`
	CostPerActions   []Action `json:"cost_per_action_type"`
	PurchaseROAS     []Action `json:"purchase_roas"`
	DateStart        string   `json:"date_start"`
	DateStop         string   `json:"date_stop"`
}
