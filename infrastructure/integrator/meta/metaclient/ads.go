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

// GetActiveAds lista os anúncios com effective_status ACTIVE da conta e, em
// um segundo passe best-effort, enriquece cada um com o criativo e o
// optimization goal do adset. Falha no enriquecimento não derruba a listagem.
func (c *MetaClient) GetActiveAds(ctx context.Context, accessToken, accountID string) ([]metadomain.Ad, error) {
	baseURL := fmt.Sprintf("%s/act_%s/ads", c.cfg.Meta.URL, accountID)

	params := url.Values{}
	params.Add("fields", "id,name,effective_status,campaign_id,adset_id")
	params.Add("effective_status", `["ACTIVE"]`)
	params.Add("limit", "200")
	params.Add("access_token", accessToken)

	items, err := c.fetchAllPages(ctx, baseURL+"?"+params.Encode(), c.cfg.Meta.MaxPages, FetchOptions{
		Context:   "anúncios ativos",
		AccountID: accountID,
	})
	if err != nil {
		return nil, err
	}

	ads := make([]metadomain.Ad, 0, len(items))
	for _, item := range items {
		var ad metadomain.Ad
		if err := json.Unmarshal(item, &ad); err != nil {
			return nil, errors.Wrap(err, "falha ao decodificar anúncio")
		}
		ads = append(ads, ad)
	}

	c.enrichAds(ctx, accessToken, accountID, baseURL, ads)

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"ads":        len(ads),
	}).Debug("metaclient: anúncios ativos obtidos")

	return ads, nil
}

// enrichAds busca creative{id} e adset{optimization_goal} em uma segunda
// passada e mescla por id. Qualquer erro vira warn: os anúncios seguem sem
// o enriquecimento.
func (c *MetaClient) enrichAds(ctx context.Context, accessToken, accountID, baseURL string, ads []metadomain.Ad) {
	if len(ads) == 0 {
		return
	}

	params := url.Values{}
	params.Add("fields", "id,creative{id},adset{id,optimization_goal}")
	params.Add("effective_status", `["ACTIVE"]`)
	params.Add("limit", "200")
	params.Add("access_token", accessToken)

	items, err := c.fetchAllPages(ctx, baseURL+"?"+params.Encode(), c.cfg.Meta.MaxPages, FetchOptions{
		Context:   "enriquecimento de anúncios",
		AccountID: accountID,
	})
	if err != nil {
		logrus.WithError(err).WithField("account_id", accountID).
			Warn("metaclient: falha no enriquecimento de anúncios, seguindo sem criativo/goal")
		return
	}

	byID := make(map[string]*metadomain.Ad, len(ads))
	for i := range ads {
		byID[ads[i].ID] = &ads[i]
	}

	for _, item := range items {
		var enriched metadomain.Ad
		if err := json.Unmarshal(item, &enriched); err != nil {
			continue
		}

		ad, ok := byID[enriched.ID]
		if !ok {
			continue
		}

		ad.Creative = enriched.Creative
		ad.Adset = enriched.Adset
	}
}
