package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metadomain "github.com/adsight/ads-sync-engine/infrastructure/integrator/meta/domain"
)

func TestNormalizeInsight_CamposEscalares(t *testing.T) {
	row := &metadomain.InsightRow{
		AdID:             "ad_1",
		Spend:            "150.75",
		Impressions:      "10000",
		Reach:            "8000",
		Frequency:        "1.25",
		Clicks:           "320",
		InlineLinkClicks: "280",
		CTR:              "3.2",
		CPC:              "0.47",
		CPM:              "15.07",
	}

	metrics := NormalizeInsight(row, "")
	require.NotNil(t, metrics)

	assert.Equal(t, 150.75, metrics.Spend)
	assert.Equal(t, int64(10000), metrics.Impressions)
	assert.Equal(t, int64(8000), metrics.Reach)
	assert.Equal(t, 1.25, metrics.Frequency)
	assert.Equal(t, int64(320), metrics.Clicks)
	assert.Equal(t, int64(280), metrics.LinkClicks)
	assert.False(t, metrics.IsEmpty())
}

func TestNormalizeInsight_SinonimosDeAcao(t *testing.T) {
	tests := []struct {
		name          string
		actions       []metadomain.Action
		wantPurchases int64
	}{
		{
			name: "action_type canônico",
			actions: []metadomain.Action{
				{ActionType: "purchase", Value: "7"},
			},
			wantPurchases: 7,
		},
		{
			name: "sinônimo histórico do pixel",
			actions: []metadomain.Action{
				{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "4"},
			},
			wantPurchases: 4,
		},
		{
			name: "prioridade: canônico vence o sinônimo quando ambos existem",
			actions: []metadomain.Action{
				{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "4"},
				{ActionType: "purchase", Value: "9"},
			},
			wantPurchases: 9,
		},
		{
			name: "sinônimo com valor zero é pulado",
			actions: []metadomain.Action{
				{ActionType: "purchase", Value: "0"},
				{ActionType: "omni_purchase", Value: "3"},
			},
			wantPurchases: 3,
		},
		{
			name: "valor não numérico é ignorado sem quebrar",
			actions: []metadomain.Action{
				{ActionType: "purchase", Value: "abc"},
				{ActionType: "omni_purchase", Value: "2"},
			},
			wantPurchases: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := NormalizeInsight(&metadomain.InsightRow{Actions: tt.actions}, "")
			require.NotNil(t, metrics)
			assert.Equal(t, tt.wantPurchases, metrics.Purchases)
		})
	}
}

func TestNormalizeInsight_ResultadoPeloOptimizationGoal(t *testing.T) {
	row := &metadomain.InsightRow{
		Spend: "100",
		Actions: []metadomain.Action{
			{ActionType: "purchase", Value: "2"},
			{ActionType: "lead", Value: "15"},
			{ActionType: "landing_page_view", Value: "500"},
		},
		CostPerActions: []metadomain.Action{
			{ActionType: "lead", Value: "6.6666"},
			{ActionType: "purchase", Value: "50"},
		},
	}

	metrics := NormalizeInsight(row, "LEAD_GENERATION")
	require.NotNil(t, metrics)

	assert.Equal(t, int64(15), metrics.Results)
	assert.Equal(t, "lead", metrics.ResultType)
	assert.Equal(t, 6.67, metrics.CostPerLead)
	assert.Equal(t, 6.67, metrics.CostPerResult)
}

func TestNormalizeInsight_FallbackHierarquico(t *testing.T) {
	tests := []struct {
		name           string
		goal           string
		actions        []metadomain.Action
		wantResultType string
		wantResults    int64
	}{
		{
			name: "goal desconhecido cai para purchase primeiro",
			goal: "SOMETHING_NEW",
			actions: []metadomain.Action{
				{ActionType: "landing_page_view", Value: "100"},
				{ActionType: "purchase", Value: "3"},
			},
			wantResultType: "purchase",
			wantResults:    3,
		},
		{
			name: "goal mapeado sem valor na linha usa o fallback",
			goal: "LEAD_GENERATION",
			actions: []metadomain.Action{
				{ActionType: "onsite_conversion.messaging_conversation_started_7d", Value: "12"},
				{ActionType: "landing_page_view", Value: "40"},
			},
			wantResultType: "messaging_conversation",
			wantResults:    12,
		},
		{
			name: "REACH não tem conversão e respeita a ordem de valor de negócio",
			goal: "REACH",
			actions: []metadomain.Action{
				{ActionType: "link_click", Value: "90"},
				{ActionType: "omni_add_to_cart", Value: "8"},
			},
			wantResultType: "add_to_cart",
			wantResults:    8,
		},
		{
			name:           "linha sem nenhuma ação fica sem resultado",
			goal:           "LEAD_GENERATION",
			actions:        nil,
			wantResultType: "",
			wantResults:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := NormalizeInsight(&metadomain.InsightRow{Actions: tt.actions}, tt.goal)
			require.NotNil(t, metrics)
			assert.Equal(t, tt.wantResultType, metrics.ResultType)
			assert.Equal(t, tt.wantResults, metrics.Results)
		})
	}
}

func TestNormalizeInsight_ROASEValorDeCompra(t *testing.T) {
	row := &metadomain.InsightRow{
		Spend: "200",
		Actions: []metadomain.Action{
			{ActionType: "omni_purchase", Value: "5"},
		},
		ActionValues: []metadomain.Action{
			{ActionType: "omni_purchase", Value: "840.509"},
		},
		PurchaseROAS: []metadomain.Action{
			{ActionType: "omni_purchase", Value: "4.2025"},
		},
	}

	metrics := NormalizeInsight(row, "OFFSITE_CONVERSIONS")
	require.NotNil(t, metrics)

	assert.Equal(t, int64(5), metrics.Purchases)
	assert.Equal(t, 840.51, metrics.PurchaseValue)
	assert.Equal(t, 4.2, metrics.ROAS)

	// Sem cost_per_action_type, o custo por resultado é derivado do spend.
	assert.Equal(t, 40.0, metrics.CostPerResult)
}

func TestNormalizeInsight_LinhaNula(t *testing.T) {
	assert.Nil(t, NormalizeInsight(nil, "LEAD_GENERATION"))
}
