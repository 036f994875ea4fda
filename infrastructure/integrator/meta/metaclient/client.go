package metaclient

import (
	"context"
	"net/http"
	"time"

	metadomain "github.com/adsight/ads-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/adsight/ads-sync-engine/internal/config"
	"github.com/adsight/ads-sync-engine/internal/ratelimit"
)

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks

// Client é a superfície da Graph API que o restante do sistema consome.
// O token de acesso é por conta e chega já aberto (decriptado) do chamador.
type Client interface {
	GetActiveCampaigns(ctx context.Context, accessToken, accountID string) ([]metadomain.Campaign, error)
	GetActiveAds(ctx context.Context, accessToken, accountID string) ([]metadomain.Ad, error)
	GetAdInsights(ctx context.Context, accessToken, accountID string, adIDs []string, since, until string) ([]metadomain.InsightRow, error)
}

type MetaClient struct {
	cfg        *config.Config
	limiter    *ratelimit.Manager
	httpClient *http.Client
}

func NewClient(cfg *config.Config, limiter *ratelimit.Manager) Client {
	return &MetaClient{
		cfg:     cfg,
		limiter: limiter,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Meta.RequestTimeoutSeconds) * time.Second,
		},
	}
}
