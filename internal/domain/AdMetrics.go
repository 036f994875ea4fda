package domain

// AdMetrics é o formato fixo de métricas de um anúncio para uma janela de
// datas, já normalizado a partir das listas heterogêneas de ações que a
// plataforma retorna.
type AdMetrics struct {
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Reach       int64   `json:"reach"`
	Frequency   float64 `json:"frequency"`
	Clicks      int64   `json:"clicks"`
	LinkClicks  int64   `json:"link_clicks"`
	CTR         float64 `json:"ctr"`
	CPC         float64 `json:"cpc"`
	CPM         float64 `json:"cpm"`

	// Resultado principal segundo o optimization goal do anúncio.
	Results       int64   `json:"results"`
	ResultType    string  `json:"result_type"`
	CostPerResult float64 `json:"cost_per_result"`
	ROAS          float64 `json:"roas"`

	Purchases       int64   `json:"purchases"`
	CostPerPurchase float64 `json:"cost_per_purchase"`
	PurchaseValue   float64 `json:"purchase_value"`

	Leads       int64   `json:"leads"`
	CostPerLead float64 `json:"cost_per_lead"`

	Registrations       int64   `json:"registrations"`
	CostPerRegistration float64 `json:"cost_per_registration"`

	Conversations       int64   `json:"conversations"`
	CostPerConversation float64 `json:"cost_per_conversation"`

	AppInstalls       int64   `json:"app_installs"`
	CostPerAppInstall float64 `json:"cost_per_app_install"`

	AddsToCart       int64   `json:"adds_to_cart"`
	CostPerAddToCart float64 `json:"cost_per_add_to_cart"`

	InitiatedCheckouts       int64   `json:"initiated_checkouts"`
	CostPerInitiatedCheckout float64 `json:"cost_per_initiated_checkout"`

	LandingPageViews       int64   `json:"landing_page_views"`
	CostPerLandingPageView float64 `json:"cost_per_landing_page_view"`

	ViewContents       int64   `json:"view_contents"`
	CostPerViewContent float64 `json:"cost_per_view_content"`

	Contacts       int64   `json:"contacts"`
	CostPerContact float64 `json:"cost_per_contact"`

	VideoViews      int64 `json:"video_views"`
	ThruPlays       int64 `json:"thru_plays"`
	PageEngagements int64 `json:"page_engagements"`
	PostEngagements int64 `json:"post_engagements"`
	Subscribes      int64 `json:"subscribes"`
	AddsToWishlist  int64 `json:"adds_to_wishlist"`
}

func (m *AdMetrics) IsEmpty() bool {
	if m == nil {
		return true
	}

	return m.Spend == 0 && m.Impressions == 0 && m.Reach == 0 && m.Clicks == 0 && m.Results == 0
}
