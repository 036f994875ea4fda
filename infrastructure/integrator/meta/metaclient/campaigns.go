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

// GetActiveCampaigns lista as campanhas com effective_status ACTIVE da conta.
// A reconciliação só espelha a fatia ativa: qualquer outro status conta como
// ausente.
func (c *MetaClient) GetActiveCampaigns(ctx context.Context, accessToken, accountID string) ([]metadomain.Campaign, error) {
	baseURL := fmt.Sprintf("%s/act_%s/campaigns", c.cfg.Meta.URL, accountID)

	params := url.Values{}
	params.Add("fields", "id,name,objective,effective_status")
	params.Add("effective_status", `["ACTIVE"]`)
	params.Add("limit", "100")
	params.Add("access_token", accessToken)

	items, err := c.fetchAllPages(ctx, baseURL+"?"+params.Encode(), c.cfg.Meta.MaxPages, FetchOptions{
		Context:   "campanhas ativas",
		AccountID: accountID,
	})
	if err != nil {
		return nil, err
	}

	campaigns := make([]metadomain.Campaign, 0, len(items))
	for _, item := range items {
		var campaign metadomain.Campaign
		if err := json.Unmarshal(item, &campaign); err != nil {
			return nil, errors.Wrap(err, "falha ao decodificar campanha")
		}
		campaigns = append(campaigns, campaign)
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"campaigns":  len(campaigns),
	}).Debug("metaclient: campanhas ativas obtidas")

	return campaigns, nil
}
