package meta

import (
	"strconv"

	"github.com/sirupsen/logrus"

	metadomain "github.com/adsight/ads-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/adsight/ads-sync-engine/internal/domain"
	"github.com/adsight/ads-sync-engine/pkg/utils"
)

// NormalizeInsight converte uma linha crua de insights no formato fixo de
// métricas, escolhendo a conversão "resultado" pelo optimization goal do
// anúncio. As listas de ações usam sinônimos históricos de action_type; a
// resolução percorre os sinônimos em ordem de prioridade e fica com o
// primeiro valor > 0.
func NormalizeInsight(row *metadomain.InsightRow, optimizationGoal string) *domain.AdMetrics {
	if row == nil {
		return nil
	}

	metrics := &domain.AdMetrics{
		Spend:       parseFloat(row.Spend, "spend"),
		Impressions: parseInt(row.Impressions, "impressions"),
		Reach:       parseInt(row.Reach, "reach"),
		Frequency:   parseFloat(row.Frequency, "frequency"),
		Clicks:      parseInt(row.Clicks, "clicks"),
		LinkClicks:  parseInt(row.InlineLinkClicks, "inline_link_clicks"),
		CTR:         parseFloat(row.CTR, "ctr"),
		CPC:         parseFloat(row.CPC, "cpc"),
		CPM:         parseFloat(row.CPM, "cpm"),
	}

	counts := resolveAll(row.Actions)
	costs := resolveAll(row.CostPerActions)
	values := resolveAll(row.ActionValues)

	metrics.Purchases = int64(counts[metadomain.ActionPurchase])
	metrics.CostPerPurchase = utils.RoundWithTwoDecimalPlace(costs[metadomain.ActionPurchase])
	metrics.PurchaseValue = utils.RoundWithTwoDecimalPlace(values[metadomain.ActionPurchase])

	metrics.Leads = int64(counts[metadomain.ActionLead])
	metrics.CostPerLead = utils.RoundWithTwoDecimalPlace(costs[metadomain.ActionLead])

	metrics.Registrations = int64(counts[metadomain.ActionRegistration])
	metrics.CostPerRegistration = utils.RoundWithTwoDecimalPlace(costs[metadomain.ActionRegistration])

	metrics.Conversations = int64(counts[metadomain.ActionConversation])
	metrics.CostPerConversation = utils.RoundWithTwoDecimalPlace(costs[metadomain.ActionConversation])

	metrics.AppInstalls = int64(counts[metadomain.ActionAppInstall])
	metrics.CostPerAppInstall = utils.RoundWithTwoDecimalPlace(costs[metadomain.ActionAppInstall])

	metrics.AddsToCart = int64(counts[metadomain.ActionAddToCart])
	metrics.CostPerAddToCart = utils.RoundWithTwoDecimalPlace(costs[metadomain.ActionAddToCart])

	metrics.InitiatedCheckouts = int64(counts[metadomain.ActionInitiateCheckout])
	metrics.CostPerInitiatedCheckout = utils.RoundWithTwoDecimalPlace(costs[metadomain.ActionInitiateCheckout])

	metrics.LandingPageViews = int64(counts[metadomain.ActionLandingPageView])
	metrics.CostPerLandingPageView = utils.RoundWithTwoDecimalPlace(costs[metadomain.ActionLandingPageView])

	metrics.ViewContents = int64(counts[metadomain.ActionViewContent])
	metrics.CostPerViewContent = utils.RoundWithTwoDecimalPlace(costs[metadomain.ActionViewContent])

	metrics.Contacts = int64(counts[metadomain.ActionContact])
	metrics.CostPerContact = utils.RoundWithTwoDecimalPlace(costs[metadomain.ActionContact])

	metrics.VideoViews = int64(counts[metadomain.ActionVideoView])
	metrics.ThruPlays = int64(counts[metadomain.ActionThruPlay])
	metrics.PageEngagements = int64(counts[metadomain.ActionPageEngagement])
	metrics.PostEngagements = int64(counts[metadomain.ActionPostEngagement])
	metrics.Subscribes = int64(counts[metadomain.ActionSubscribe])
	metrics.AddsToWishlist = int64(counts[metadomain.ActionAddToWishlist])

	metrics.ROAS = utils.RoundWithTwoDecimalPlace(resolveAction(row.PurchaseROAS, metadomain.ActionPurchase))

	resultAction := pickResultAction(optimizationGoal, counts)
	if resultAction != "" {
		metrics.Results = int64(counts[resultAction])
		metrics.ResultType = string(resultAction)
		metrics.CostPerResult = utils.RoundWithTwoDecimalPlace(costs[resultAction])
	}

	if metrics.CostPerResult == 0 && metrics.Results > 0 && metrics.Spend > 0 {
		metrics.CostPerResult = utils.RoundWithTwoDecimalPlace(metrics.Spend / float64(metrics.Results))
	}

	return metrics
}

// pickResultAction mapeia o optimization goal para a ação semântica do
// resultado; goal desconhecido ou sem valor na linha cai na hierarquia de
// valor de negócio.
func pickResultAction(optimizationGoal string, counts map[metadomain.SemanticAction]float64) metadomain.SemanticAction {
	if action, ok := metadomain.OptimizationGoalToAction[optimizationGoal]; ok {
		if counts[action] > 0 {
			return action
		}
	} else if optimizationGoal != "" {
		logrus.WithField("optimization_goal", optimizationGoal).
			Debug("insights: optimization goal sem mapeamento, usando fallback")
	}

	for _, action := range metadomain.ResultFallbackOrder {
		if counts[action] > 0 {
			return action
		}
	}

	return ""
}

// resolveAll resolve todas as ações semânticas conhecidas contra uma lista
// de (action_type, value) da API.
func resolveAll(list []metadomain.Action) map[metadomain.SemanticAction]float64 {
	resolved := make(map[metadomain.SemanticAction]float64, len(metadomain.ActionSynonyms))
	if len(list) == 0 {
		return resolved
	}

	byType := indexActions(list)
	for action := range metadomain.ActionSynonyms {
		if value := resolveFrom(byType, action); value > 0 {
			resolved[action] = value
		}
	}

	return resolved
}

// resolveAction percorre os sinônimos da ação em ordem de prioridade e
// devolve o primeiro valor > 0 encontrado na lista.
func resolveAction(list []metadomain.Action, action metadomain.SemanticAction) float64 {
	if len(list) == 0 {
		return 0
	}

	return resolveFrom(indexActions(list), action)
}

func indexActions(list []metadomain.Action) map[string]string {
	byType := make(map[string]string, len(list))
	for _, entry := range list {
		byType[entry.ActionType] = entry.Value
	}
	return byType
}

func resolveFrom(byType map[string]string, action metadomain.SemanticAction) float64 {
	for _, synonym := range metadomain.ActionSynonyms[action] {
		raw, ok := byType[synonym]
		if !ok {
			continue
		}

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"action_type":  synonym,
				"action_value": raw,
			}).Warn("insights: erro ao converter valor da ação")
			continue
		}

		if value > 0 {
			return value
		}
	}

	return 0
}

func parseFloat(raw, field string) float64 {
	if raw == "" {
		return 0
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"field": field,
			"value": raw,
		}).Warn("insights: erro ao converter campo para float")
		return 0
	}

	return value
}

func parseInt(raw, field string) int64 {
	if raw == "" {
		return 0
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"field": field,
			"value": raw,
		}).Warn("insights: erro ao converter campo para inteiro")
		return 0
	}

	return value
}
