package syncing

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	metadomain "github.com/adsight/ads-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/adsight/ads-sync-engine/infrastructure/integrator/meta/metaclient"
	clientmocks "github.com/adsight/ads-sync-engine/infrastructure/integrator/meta/metaclient/mocks"
	repomocks "github.com/adsight/ads-sync-engine/infrastructure/repository/mocks"
	"github.com/adsight/ads-sync-engine/internal/config"
	"github.com/adsight/ads-sync-engine/internal/domain"
	"github.com/adsight/ads-sync-engine/internal/ratelimit"
	insightingmocks "github.com/adsight/ads-sync-engine/internal/usecases/insighting/mocks"
	"github.com/adsight/ads-sync-engine/pkg/crypto"
)

const testSecretKey = "chave-de-teste"

type engineFixture struct {
	cfg          *config.Config
	limiter      *ratelimit.Manager
	metaClient   *clientmocks.MockClient
	accountRepo  *repomocks.MockAccountRepository
	campaignRepo *repomocks.MockCampaignRepository
	adRepo       *repomocks.MockAdRepository
	cacheRepo    *repomocks.MockMetricsCacheRepository
	insighter    *insightingmocks.MockMetricsWriter
	engine       Engine
}

func newEngineFixture(t *testing.T) *engineFixture {
	ctrl := gomock.NewController(t)

	f := &engineFixture{
		cfg: &config.Config{
			SecretKey: testSecretKey,
			AdSync: config.AdSync{
				ChunkSize:          50,
				ChunkDelaySeconds:  0,
				WindowDelaySeconds: 0,
			},
		},
		limiter:      ratelimit.NewManager(),
		metaClient:   clientmocks.NewMockClient(ctrl),
		accountRepo:  repomocks.NewMockAccountRepository(ctrl),
		campaignRepo: repomocks.NewMockCampaignRepository(ctrl),
		adRepo:       repomocks.NewMockAdRepository(ctrl),
		cacheRepo:    repomocks.NewMockMetricsCacheRepository(ctrl),
		insighter:    insightingmocks.NewMockMetricsWriter(ctrl),
	}

	f.engine = NewService(
		f.cfg,
		f.limiter,
		f.metaClient,
		f.accountRepo,
		f.campaignRepo,
		f.adRepo,
		f.cacheRepo,
		f.insighter,
	)

	return f
}

func testAccount(t *testing.T) *domain.AdAccount {
	sealed, err := crypto.Seal("token-abc", testSecretKey)
	require.NoError(t, err)

	return &domain.AdAccount{
		ID:          "acc-1",
		ClientID:    "cli-1",
		Platform:    "meta",
		ExternalID:  "111",
		Name:        "Conta de Teste",
		SealedToken: sealed,
		Status:      domain.AdAccountStatusActive,
	}
}

func remoteCampaign(id string) metadomain.Campaign {
	return metadomain.Campaign{ID: id, Name: "Campanha " + id, Objective: "OUTCOME_SALES"}
}

func remoteAd(id, campaignID string) metadomain.Ad {
	return metadomain.Ad{
		ID:         id,
		Name:       "Anúncio " + id,
		CampaignID: campaignID,
		AdsetID:    "set-" + id,
		Creative:   &metadomain.Creative{ID: "cr-" + id},
		Adset:      &metadomain.Adset{ID: "set-" + id, OptimizationGoal: "OFFSITE_CONVERSIONS"},
	}
}

func localAdFromRemote(remote metadomain.Ad, accountID, clientID string) *domain.Ad {
	return &domain.Ad{
		ExternalID:         remote.ID,
		AccountID:          accountID,
		ClientID:           clientID,
		CampaignExternalID: remote.CampaignID,
		AdsetExternalID:    remote.Adset.ID,
		Name:               remote.Name,
		EffectiveStatus:    domain.AdStatusActive,
		CreativeID:         remote.Creative.ID,
		OptimizationGoal:   remote.Adset.OptimizationGoal,
	}
}

func TestService_SyncEspelhaConjuntoRemoto(t *testing.T) {
	// Remoto tem r1..r5, local tem r1..r3 e um obsoleto: a reconciliação
	// precisa inserir 2, remover 1 e deixar o conjunto local igual ao remoto.
	f := newEngineFixture(t)
	account := testAccount(t)

	f.accountRepo.EXPECT().GetAccountByID("acc-1").Return(account, nil)

	campaigns := []metadomain.Campaign{remoteCampaign("c1")}
	f.metaClient.EXPECT().GetActiveCampaigns(gomock.Any(), "token-abc", "111").Return(campaigns, nil)
	f.campaignRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
	f.campaignRepo.EXPECT().ListByAccount("acc-1").Return([]*domain.Campaign{
		{ExternalID: "c1", AccountID: "acc-1"},
	}, nil)

	remote := []metadomain.Ad{
		remoteAd("r1", "c1"), remoteAd("r2", "c1"), remoteAd("r3", "c1"),
		remoteAd("r4", "c1"), remoteAd("r5", "c1"),
	}
	f.metaClient.EXPECT().GetActiveAds(gomock.Any(), "token-abc", "111").Return(remote, nil)

	local := []*domain.Ad{
		localAdFromRemote(remote[0], "acc-1", "cli-1"),
		localAdFromRemote(remote[1], "acc-1", "cli-1"),
		localAdFromRemote(remote[2], "acc-1", "cli-1"),
		{ExternalID: "stale-1", AccountID: "acc-1", CampaignExternalID: "c1"},
	}
	f.adRepo.EXPECT().ListByAccount("acc-1").Return(local, nil)

	f.adRepo.EXPECT().DeleteByExternalIDs("acc-1", []string{"stale-1"}).Return(int64(1), nil)
	f.cacheRepo.EXPECT().DeleteByAdExternalIDs([]string{"stale-1"}).Return(int64(0), nil)
	f.adRepo.EXPECT().InsertAds(gomock.Any()).DoAndReturn(func(ads []*domain.Ad) error {
		assert.Len(t, ads, 2)
		inserted := map[string]bool{}
		for _, ad := range ads {
			inserted[ad.ExternalID] = true
			assert.Equal(t, domain.AdStatusActive, ad.EffectiveStatus)
		}
		assert.True(t, inserted["r4"])
		assert.True(t, inserted["r5"])
		return nil
	})

	// Janelas de métricas: uma chamada de insights por janela.
	f.metaClient.EXPECT().
		GetAdInsights(gomock.Any(), "token-abc", "111", gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]metadomain.InsightRow{{AdID: "r1", Spend: "10"}}, nil).
		Times(3)
	f.insighter.EXPECT().SaveAdMetrics(gomock.Any()).Return(nil).Times(3)

	f.accountRepo.EXPECT().UpdateSyncStatus("acc-1", domain.SyncStatusSuccess, nil).Return(nil)

	result, err := f.engine.SyncAccount(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 1, result.CampaignsUpserted)
	assert.Equal(t, 2, result.AdsInserted)
	assert.Equal(t, 1, result.AdsDeleted)
	assert.Equal(t, 0, result.AdsUpdated)
	assert.Equal(t, 3, result.MetricsSynced)
	assert.Len(t, result.Windows, 3)
	assert.Equal(t, []int{7, 14, 30}, []int{
		result.Windows[0].WindowDays,
		result.Windows[1].WindowDays,
		result.Windows[2].WindowDays,
	})
}

func TestService_SyncIdempotenteSemMudancaRemota(t *testing.T) {
	// Local já igual ao remoto: nenhum insert, update ou delete.
	f := newEngineFixture(t)
	account := testAccount(t)

	f.accountRepo.EXPECT().GetAccountByID("acc-1").Return(account, nil)

	f.metaClient.EXPECT().GetActiveCampaigns(gomock.Any(), "token-abc", "111").
		Return([]metadomain.Campaign{remoteCampaign("c1")}, nil)
	f.campaignRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
	f.campaignRepo.EXPECT().ListByAccount("acc-1").Return([]*domain.Campaign{
		{ExternalID: "c1"},
	}, nil)

	remote := []metadomain.Ad{remoteAd("r1", "c1")}
	f.metaClient.EXPECT().GetActiveAds(gomock.Any(), "token-abc", "111").Return(remote, nil)
	f.adRepo.EXPECT().ListByAccount("acc-1").Return([]*domain.Ad{
		localAdFromRemote(remote[0], "acc-1", "cli-1"),
	}, nil)

	f.metaClient.EXPECT().
		GetAdInsights(gomock.Any(), "token-abc", "111", []string{"r1"}, gomock.Any(), gomock.Any()).
		Return(nil, nil).
		Times(3)

	f.accountRepo.EXPECT().UpdateSyncStatus("acc-1", domain.SyncStatusSuccess, nil).Return(nil)

	result, err := f.engine.SyncAccount(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Zero(t, result.AdsInserted)
	assert.Zero(t, result.AdsUpdated)
	assert.Zero(t, result.AdsDeleted)
}

func TestService_SyncNaoSobrescreveStatusLocal(t *testing.T) {
	// Anúncio pausado manualmente com nome alterado no remoto: o update toca
	// só os campos da reconciliação, nunca o effective_status.
	f := newEngineFixture(t)
	account := testAccount(t)

	f.accountRepo.EXPECT().GetAccountByID("acc-1").Return(account, nil)

	f.metaClient.EXPECT().GetActiveCampaigns(gomock.Any(), "token-abc", "111").
		Return([]metadomain.Campaign{remoteCampaign("c1")}, nil)
	f.campaignRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
	f.campaignRepo.EXPECT().ListByAccount("acc-1").Return([]*domain.Campaign{{ExternalID: "c1"}}, nil)

	remote := []metadomain.Ad{remoteAd("r1", "c1")}
	f.metaClient.EXPECT().GetActiveAds(gomock.Any(), "token-abc", "111").Return(remote, nil)

	paused := localAdFromRemote(remote[0], "acc-1", "cli-1")
	paused.Name = "Nome antigo"
	paused.EffectiveStatus = domain.AdStatusPaused
	f.adRepo.EXPECT().ListByAccount("acc-1").Return([]*domain.Ad{paused}, nil)

	f.adRepo.EXPECT().UpdateAd(gomock.Any()).DoAndReturn(func(ad *domain.Ad) error {
		assert.Equal(t, "r1", ad.ExternalID)
		assert.Equal(t, "Anúncio r1", ad.Name)
		return nil
	})

	f.metaClient.EXPECT().
		GetAdInsights(gomock.Any(), "token-abc", "111", gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil).
		Times(3)

	f.accountRepo.EXPECT().UpdateSyncStatus("acc-1", domain.SyncStatusSuccess, nil).Return(nil)

	result, err := f.engine.SyncAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.AdsUpdated)
}

func TestService_SyncDescartaAnuncioOrfao(t *testing.T) {
	f := newEngineFixture(t)
	account := testAccount(t)

	f.accountRepo.EXPECT().GetAccountByID("acc-1").Return(account, nil)

	f.metaClient.EXPECT().GetActiveCampaigns(gomock.Any(), "token-abc", "111").
		Return([]metadomain.Campaign{remoteCampaign("c1")}, nil)
	f.campaignRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
	f.campaignRepo.EXPECT().ListByAccount("acc-1").Return([]*domain.Campaign{{ExternalID: "c1"}}, nil)

	// r2 aponta para uma campanha fora do conjunto ativo.
	remote := []metadomain.Ad{remoteAd("r1", "c1"), remoteAd("r2", "c-inexistente")}
	f.metaClient.EXPECT().GetActiveAds(gomock.Any(), "token-abc", "111").Return(remote, nil)
	f.adRepo.EXPECT().ListByAccount("acc-1").Return([]*domain.Ad{}, nil)

	f.adRepo.EXPECT().InsertAds(gomock.Any()).DoAndReturn(func(ads []*domain.Ad) error {
		require.Len(t, ads, 1)
		assert.Equal(t, "r1", ads[0].ExternalID)
		return nil
	})

	f.metaClient.EXPECT().
		GetAdInsights(gomock.Any(), "token-abc", "111", []string{"r1"}, gomock.Any(), gomock.Any()).
		Return(nil, nil).
		Times(3)

	f.accountRepo.EXPECT().UpdateSyncStatus("acc-1", domain.SyncStatusSuccess, nil).Return(nil)

	result, err := f.engine.SyncAccount(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.AdsSkipped)
	assert.Equal(t, 1, result.AdsInserted)
}

func TestService_SyncPreCheckDeRateLimitNaoChamaAPlataforma(t *testing.T) {
	f := newEngineFixture(t)
	account := testAccount(t)

	// Conta entra no estado limitado antes da execução.
	state := f.limiter.Classify(ratelimit.PlatformMeta, "111", http.StatusBadRequest, 17, 0, "User request limit reached", nil)
	require.NotNil(t, state)

	f.accountRepo.EXPECT().GetAccountByID("acc-1").Return(account, nil)

	result, err := f.engine.SyncAccount(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.False(t, result.OK)
	assert.True(t, result.RateLimitDetected)
	assert.Greater(t, result.WaitTimeMinutes, 0)
	assert.NotEmpty(t, result.Error)
}

func TestService_SyncRejeitaExecucaoConcorrenteDaMesmaConta(t *testing.T) {
	f := newEngineFixture(t)
	account := testAccount(t)

	blocking := make(chan struct{})
	started := make(chan struct{})

	f.accountRepo.EXPECT().GetAccountByID("acc-1").Return(account, nil).Times(2)

	f.metaClient.EXPECT().GetActiveCampaigns(gomock.Any(), "token-abc", "111").
		DoAndReturn(func(context.Context, string, string) ([]metadomain.Campaign, error) {
			close(started)
			<-blocking
			return nil, assert.AnError
		})

	f.accountRepo.EXPECT().UpdateSyncStatus("acc-1", domain.SyncStatusError, gomock.Any()).Return(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.engine.SyncAccount(context.Background(), "acc-1")
	}()

	<-started

	_, err := f.engine.SyncAccount(context.Background(), "acc-1")
	assert.ErrorIs(t, err, ErrSyncInProgress)

	close(blocking)
	<-done
}

func TestService_SyncErroPermanenteNaoDerrubaOProcesso(t *testing.T) {
	f := newEngineFixture(t)
	account := testAccount(t)

	f.accountRepo.EXPECT().GetAccountByID("acc-1").Return(account, nil)

	f.metaClient.EXPECT().GetActiveCampaigns(gomock.Any(), "token-abc", "111").
		Return(nil, metaclient.ErrPermanent)

	f.accountRepo.EXPECT().
		UpdateSyncStatus("acc-1", domain.SyncStatusError, gomock.Any()).
		DoAndReturn(func(_ string, _ domain.SyncStatus, syncError *string) error {
			require.NotNil(t, syncError)
			assert.LessOrEqual(t, len(*syncError), 500)
			return nil
		})

	result, err := f.engine.SyncAccount(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.False(t, result.OK)
	assert.Contains(t, result.Error, "reautentique")
	assert.NotEmpty(t, result.ErrorDetails)
}

func TestService_SyncRateLimitDuranteMetricasNaoDesfazReconciliacao(t *testing.T) {
	f := newEngineFixture(t)
	account := testAccount(t)

	f.accountRepo.EXPECT().GetAccountByID("acc-1").Return(account, nil)

	f.metaClient.EXPECT().GetActiveCampaigns(gomock.Any(), "token-abc", "111").
		Return([]metadomain.Campaign{remoteCampaign("c1")}, nil)
	f.campaignRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
	f.campaignRepo.EXPECT().ListByAccount("acc-1").Return([]*domain.Campaign{{ExternalID: "c1"}}, nil)

	remote := []metadomain.Ad{remoteAd("r1", "c1")}
	f.metaClient.EXPECT().GetActiveAds(gomock.Any(), "token-abc", "111").Return(remote, nil)
	f.adRepo.EXPECT().ListByAccount("acc-1").Return([]*domain.Ad{
		localAdFromRemote(remote[0], "acc-1", "cli-1"),
	}, nil)

	// A primeira janela de métricas cai em rate limit: linhas de erro são
	// gravadas e as janelas seguintes não são tentadas.
	f.metaClient.EXPECT().
		GetAdInsights(gomock.Any(), "token-abc", "111", []string{"r1"}, gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string, []string, string, string) ([]metadomain.InsightRow, error) {
			f.limiter.Classify(ratelimit.PlatformMeta, "111", http.StatusBadRequest, 4, 0, "Application request limit reached", nil)
			return nil, metaclient.ErrRateLimited
		})

	f.insighter.EXPECT().
		SaveErrorRow("r1", "acc-1", "cli-1", gomock.Any(), gomock.Any(), 7).
		Return(nil)

	f.accountRepo.EXPECT().UpdateSyncStatus("acc-1", domain.SyncStatusSuccess, nil).Return(nil)

	result, err := f.engine.SyncAccount(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.True(t, result.RateLimitDetected)
	assert.Greater(t, result.WaitTimeMinutes, 0)
	assert.Equal(t, 1, result.MetricsErrors)
	assert.Len(t, result.Windows, 1)
}

func TestService_SyncGravaJanelasComDatasDaJanela(t *testing.T) {
	f := newEngineFixture(t)
	account := testAccount(t)

	f.accountRepo.EXPECT().GetAccountByID("acc-1").Return(account, nil)

	f.metaClient.EXPECT().GetActiveCampaigns(gomock.Any(), "token-abc", "111").
		Return([]metadomain.Campaign{remoteCampaign("c1")}, nil)
	f.campaignRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
	f.campaignRepo.EXPECT().ListByAccount("acc-1").Return([]*domain.Campaign{{ExternalID: "c1"}}, nil)

	remote := []metadomain.Ad{remoteAd("r1", "c1")}
	f.metaClient.EXPECT().GetActiveAds(gomock.Any(), "token-abc", "111").Return(remote, nil)
	f.adRepo.EXPECT().ListByAccount("acc-1").Return([]*domain.Ad{
		localAdFromRemote(remote[0], "acc-1", "cli-1"),
	}, nil)

	f.metaClient.EXPECT().
		GetAdInsights(gomock.Any(), "token-abc", "111", []string{"r1"}, gomock.Any(), gomock.Any()).
		Return([]metadomain.InsightRow{{AdID: "r1", Spend: "5"}}, nil).
		Times(3)

	savedWindows := make([]int, 0, 3)
	f.insighter.EXPECT().SaveAdMetrics(gomock.Any()).DoAndReturn(func(entry *domain.MetricsCacheEntry) error {
		// A janela gravada tem exatamente periodDays dias e termina ontem.
		days := int(entry.DateEnd.Sub(entry.DateStart).Hours()/24) + 1
		assert.Equal(t, entry.PeriodDays, days)
		savedWindows = append(savedWindows, entry.PeriodDays)
		return nil
	}).Times(3)

	f.accountRepo.EXPECT().UpdateSyncStatus("acc-1", domain.SyncStatusSuccess, nil).Return(nil)

	result, err := f.engine.SyncAccount(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Equal(t, []int{7, 14, 30}, savedWindows)
	assert.Equal(t, 3, result.MetricsSynced)
}
