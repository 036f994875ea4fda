package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	metadomain "github.com/adsight/ads-sync-engine/infrastructure/integrator/meta/domain"
)

const insightFields = "ad_id,ad_name,spend,impressions,reach,frequency,clicks," +
	"inline_link_clicks,ctr,cpc,cpm,actions,action_values,cost_per_action_type,purchase_roas"

// GetAdInsights consulta as métricas por anúncio da janela [since, until].
// A lista de ids vai no filtering; quem chama é responsável por fatiar os
// ids em chunks para limitar o payload de cada chamada.
func (c *MetaClient) GetAdInsights(ctx context.Context, accessToken, accountID string, adIDs []string, since, until string) ([]metadomain.InsightRow, error) {
	if len(adIDs) == 0 {
		return nil, nil
	}

	filtering, err := json.Marshal([]map[string]interface{}{
		{
			"field":    "ad.id",
			"operator": "IN",
			"value":    adIDs,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "falha ao montar o filtering de insights")
	}

	baseURL := fmt.Sprintf("%s/act_%s/insights", c.cfg.Meta.URL, accountID)

	params := url.Values{}
	params.Add("level", "ad")
	params.Add("fields", insightFields)
	params.Add("time_range", fmt.Sprintf(`{"since":"%s","until":"%s"}`, since, until))
	params.Add("filtering", string(filtering))
	params.Add("limit", "500")
	params.Add("access_token", accessToken)

	body, err := c.fetchWithRetry(ctx, baseURL+"?"+params.Encode(), FetchOptions{
		Context:   fmt.Sprintf("insights %s..%s", since, until),
		AccountID: accountID,
	})
	if err != nil {
		return nil, err
	}

	var response struct {
		Data []metadomain.InsightRow `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "falha ao decodificar insights")
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"ads":        len(adIDs),
		"rows":       len(response.Data),
		"since":      since,
		"until":      until,
	}).Debug("metaclient: insights obtidos")

	return response.Data, nil
}
