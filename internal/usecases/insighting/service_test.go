package insighting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	metadomain "github.com/adsight/ads-sync-engine/infrastructure/integrator/meta/domain"
	clientmocks "github.com/adsight/ads-sync-engine/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/adsight/ads-sync-engine/infrastructure/repository/mocks"
	"github.com/adsight/ads-sync-engine/internal/config"
	"github.com/adsight/ads-sync-engine/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		AdSync: config.AdSync{
			ChunkSize: 50,
		},
		MetricsCache: config.MetricsCache{
			RecentDays:                14,
			CoverageThreshold:         0.8,
			FallbackCoverageThreshold: 0.7,
		},
	}
}

func cacheEntry(adID string, start, end time.Time, periodDays int, spend float64) *domain.MetricsCacheEntry {
	return &domain.MetricsCacheEntry{
		AdExternalID: adID,
		AccountID:    "acc-1",
		ClientID:     "cli-1",
		DateStart:    start,
		DateEnd:      end,
		PeriodDays:   periodDays,
		Metrics:      &domain.AdMetrics{Spend: spend},
		SyncStatus:   domain.SyncStatusSuccess,
		SyncedAt:     time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestService_LookupTierExatoEncerraCedo(t *testing.T) {
	ctrl := gomock.NewController(t)
	cacheRepo := mocks.NewMockMetricsCacheRepository(ctrl)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	cacheRepo.EXPECT().
		GetExact([]string{"ad-1"}, start, end, 7).
		Return(map[string]*domain.MetricsCacheEntry{
			"ad-1": cacheEntry("ad-1", start, end, 7, 123.45),
		}, nil)

	svc := NewService(testConfig(), cacheRepo, nil, nil, nil)

	results, err := svc.LookupAdMetrics([]string{"ad-1"}, &start, &end, 7)
	require.NoError(t, err)
	require.Len(t, results, 1)

	result := results["ad-1"]
	require.NotNil(t, result)
	assert.True(t, result.OK)
	assert.True(t, result.Cached)
	assert.Equal(t, domain.DataSourceExact, result.DataSource)
	assert.Equal(t, 123.45, result.Metrics.Spend)
	assert.Equal(t, "2025-06-01", result.PeriodStart)
	assert.Equal(t, "2025-06-07", result.PeriodEnd)
}

func TestService_LookupPrefereJanelaSimilarAoFallback(t *testing.T) {
	// Só existe uma linha recente de mesma janela com outro date_end: o
	// lookup pelas datas exatas deve devolvê-la marcada como aproximação,
	// sem chegar aos tiers mais fracos.
	ctrl := gomock.NewController(t)
	cacheRepo := mocks.NewMockMetricsCacheRepository(ctrl)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	shiftedStart := time.Date(2025, 5, 29, 0, 0, 0, 0, time.UTC)
	shiftedEnd := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	cacheRepo.EXPECT().
		GetExact([]string{"ad-1"}, start, end, 7).
		Return(map[string]*domain.MetricsCacheEntry{}, nil)

	cacheRepo.EXPECT().
		GetSameWindowRecent([]string{"ad-1"}, 7, gomock.Any()).
		Return(map[string]*domain.MetricsCacheEntry{
			"ad-1": cacheEntry("ad-1", shiftedStart, shiftedEnd, 7, 50),
		}, nil)

	svc := NewService(testConfig(), cacheRepo, nil, nil, nil)

	results, err := svc.LookupAdMetrics([]string{"ad-1"}, &start, &end, 7)
	require.NoError(t, err)

	result := results["ad-1"]
	require.NotNil(t, result)
	assert.True(t, result.OK)
	assert.Equal(t, domain.DataSourceSimilar, result.DataSource)
	assert.Equal(t, "2025-05-29", result.PeriodStart)
	assert.Equal(t, "2025-06-04", result.PeriodEnd)
}

func TestService_LookupMissCompletoDevolveVazioComSugestao(t *testing.T) {
	ctrl := gomock.NewController(t)
	cacheRepo := mocks.NewMockMetricsCacheRepository(ctrl)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	empty := map[string]*domain.MetricsCacheEntry{}
	cacheRepo.EXPECT().GetExact([]string{"ad-1"}, start, end, 7).Return(empty, nil)
	cacheRepo.EXPECT().GetSameWindowRecent([]string{"ad-1"}, 7, gomock.Any()).Return(empty, nil)
	cacheRepo.EXPECT().GetAnyRecent([]string{"ad-1"}, gomock.Any()).Return(empty, nil)
	cacheRepo.EXPECT().GetNewest([]string{"ad-1"}).Return(empty, nil)

	svc := NewService(testConfig(), cacheRepo, nil, nil, nil)

	results, err := svc.LookupAdMetrics([]string{"ad-1"}, &start, &end, 7)
	require.NoError(t, err)

	result := results["ad-1"]
	require.NotNil(t, result)
	assert.False(t, result.OK)
	assert.False(t, result.Cached)
	assert.Equal(t, domain.DataSourceEmpty, result.DataSource)
	assert.Nil(t, result.Metrics)
	assert.Equal(t, "2025-06-01", result.PeriodStart)
	assert.Equal(t, "2025-06-07", result.PeriodEnd)
	assert.NotEmpty(t, result.Suggestion)
}

func TestService_LookupLinhaDeErroNaoEhServida(t *testing.T) {
	// Uma linha com sync_status de erro não tem métricas: mesmo que algum
	// tier a devolva, o resultado do anúncio é vazio, não a linha de erro.
	ctrl := gomock.NewController(t)
	cacheRepo := mocks.NewMockMetricsCacheRepository(ctrl)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	errorRow := &domain.MetricsCacheEntry{
		AdExternalID: "ad-1",
		DateStart:    start,
		DateEnd:      end,
		PeriodDays:   7,
		Metrics:      nil,
		SyncStatus:   domain.SyncStatusError,
	}

	empty := map[string]*domain.MetricsCacheEntry{}
	cacheRepo.EXPECT().GetExact([]string{"ad-1"}, start, end, 7).
		Return(map[string]*domain.MetricsCacheEntry{"ad-1": errorRow}, nil)
	cacheRepo.EXPECT().GetSameWindowRecent([]string{"ad-1"}, 7, gomock.Any()).Return(empty, nil)
	cacheRepo.EXPECT().GetAnyRecent([]string{"ad-1"}, gomock.Any()).Return(empty, nil)
	cacheRepo.EXPECT().GetNewest([]string{"ad-1"}).Return(empty, nil)

	svc := NewService(testConfig(), cacheRepo, nil, nil, nil)

	results, err := svc.LookupAdMetrics([]string{"ad-1"}, &start, &end, 7)
	require.NoError(t, err)

	result := results["ad-1"]
	require.NotNil(t, result)
	assert.False(t, result.OK)
	assert.Equal(t, domain.DataSourceEmpty, result.DataSource)
}

func TestService_LookupCoberturaParcialDesceDeTier(t *testing.T) {
	// Dois anúncios, só um no tier exato: cobertura de 50% fica abaixo do
	// limiar de 80% e o pendente desce até o último recurso.
	ctrl := gomock.NewController(t)
	cacheRepo := mocks.NewMockMetricsCacheRepository(ctrl)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	oldStart := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	oldEnd := time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC)

	empty := map[string]*domain.MetricsCacheEntry{}
	cacheRepo.EXPECT().GetExact([]string{"ad-1", "ad-2"}, start, end, 7).
		Return(map[string]*domain.MetricsCacheEntry{
			"ad-1": cacheEntry("ad-1", start, end, 7, 10),
		}, nil)
	cacheRepo.EXPECT().GetSameWindowRecent([]string{"ad-2"}, 7, gomock.Any()).Return(empty, nil)
	cacheRepo.EXPECT().GetAnyRecent([]string{"ad-2"}, gomock.Any()).Return(empty, nil)
	cacheRepo.EXPECT().GetNewest([]string{"ad-2"}).
		Return(map[string]*domain.MetricsCacheEntry{
			"ad-2": cacheEntry("ad-2", oldStart, oldEnd, 30, 99),
		}, nil)

	svc := NewService(testConfig(), cacheRepo, nil, nil, nil)

	results, err := svc.LookupAdMetrics([]string{"ad-1", "ad-2"}, &start, &end, 7)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, domain.DataSourceExact, results["ad-1"].DataSource)
	assert.Equal(t, domain.DataSourceFallback, results["ad-2"].DataSource)
	assert.Equal(t, 99.0, results["ad-2"].Metrics.Spend)
}

func TestService_SaveGravaDatasAoPeDaLetra(t *testing.T) {
	ctrl := gomock.NewController(t)
	cacheRepo := mocks.NewMockMetricsCacheRepository(ctrl)

	start := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 2, 14, 0, 0, 0, 0, time.UTC)

	cacheRepo.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(func(entry *domain.MetricsCacheEntry) error {
		assert.Equal(t, start, entry.DateStart)
		assert.Equal(t, end, entry.DateEnd)
		assert.Equal(t, 14, entry.PeriodDays)
		assert.Equal(t, domain.SyncStatusSuccess, entry.SyncStatus)
		return nil
	})

	svc := NewService(testConfig(), cacheRepo, nil, nil, nil)

	err := svc.SaveAdMetrics(&domain.MetricsCacheEntry{
		AdExternalID: "ad-1",
		AccountID:    "acc-1",
		ClientID:     "cli-1",
		DateStart:    start,
		DateEnd:      end,
		Metrics:      &domain.AdMetrics{Spend: 1},
	})
	require.NoError(t, err)
}

func TestService_SaveSemDatasDerivaJanelaTerminandoOntem(t *testing.T) {
	ctrl := gomock.NewController(t)
	cacheRepo := mocks.NewMockMetricsCacheRepository(ctrl)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	wantEnd := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)
	wantStart := wantEnd.AddDate(0, 0, -6)

	cacheRepo.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(func(entry *domain.MetricsCacheEntry) error {
		assert.Equal(t, wantStart, entry.DateStart)
		assert.Equal(t, wantEnd, entry.DateEnd)
		assert.Equal(t, 7, entry.PeriodDays)
		return nil
	})

	svc := NewService(testConfig(), cacheRepo, nil, nil, nil)

	err := svc.SaveAdMetrics(&domain.MetricsCacheEntry{
		AdExternalID: "ad-1",
		Metrics:      &domain.AdMetrics{Spend: 1},
	})
	require.NoError(t, err)
}

func TestService_SaveErrorRowSemMetricas(t *testing.T) {
	ctrl := gomock.NewController(t)
	cacheRepo := mocks.NewMockMetricsCacheRepository(ctrl)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	cacheRepo.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(func(entry *domain.MetricsCacheEntry) error {
		assert.Equal(t, domain.SyncStatusError, entry.SyncStatus)
		assert.Nil(t, entry.Metrics)
		assert.Equal(t, start, entry.DateStart)
		assert.Equal(t, end, entry.DateEnd)
		assert.Equal(t, 7, entry.PeriodDays)
		return nil
	})

	svc := NewService(testConfig(), cacheRepo, nil, nil, nil)

	err := svc.SaveErrorRow("ad-1", "acc-1", "cli-1", start, end, 7)
	require.NoError(t, err)
}

func TestService_RefreshBuscaNormalizaEGrava(t *testing.T) {
	ctrl := gomock.NewController(t)
	cacheRepo := mocks.NewMockMetricsCacheRepository(ctrl)
	adRepo := mocks.NewMockAdRepository(ctrl)
	metaClient := clientmocks.NewMockClient(ctrl)

	account := &domain.AdAccount{
		ID:         "acc-1",
		ClientID:   "cli-1",
		ExternalID: "111",
	}

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	adRepo.EXPECT().ListByAccount("acc-1").Return([]*domain.Ad{
		{ExternalID: "ad-1", OptimizationGoal: "LEAD_GENERATION"},
	}, nil)

	metaClient.EXPECT().
		GetAdInsights(gomock.Any(), "token", "111", []string{"ad-1"}, "2025-06-01", "2025-06-07").
		Return([]metadomain.InsightRow{
			{
				AdID:  "ad-1",
				Spend: "42.50",
				Actions: []metadomain.Action{
					{ActionType: "lead", Value: "4"},
				},
			},
		}, nil)

	cacheRepo.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(func(entry *domain.MetricsCacheEntry) error {
		assert.Equal(t, "ad-1", entry.AdExternalID)
		assert.Equal(t, start, entry.DateStart)
		assert.Equal(t, end, entry.DateEnd)
		assert.Equal(t, 7, entry.PeriodDays)
		require.NotNil(t, entry.Metrics)
		assert.Equal(t, 42.5, entry.Metrics.Spend)
		assert.Equal(t, int64(4), entry.Metrics.Leads)
		return nil
	})

	cacheRepo.EXPECT().
		GetExact([]string{"ad-1"}, start, end, 7).
		Return(map[string]*domain.MetricsCacheEntry{
			"ad-1": cacheEntry("ad-1", start, end, 7, 42.5),
		}, nil)

	svc := NewService(testConfig(), cacheRepo, adRepo, nil, metaClient)

	results, err := svc.RefreshAdMetrics(context.Background(), account, "token", []string{"ad-1"}, start, end)
	require.NoError(t, err)
	assert.Equal(t, domain.DataSourceExact, results["ad-1"].DataSource)
}

func TestService_LookupPorContaInexistente(t *testing.T) {
	ctrl := gomock.NewController(t)
	accountRepo := mocks.NewMockAccountRepository(ctrl)

	accountRepo.EXPECT().GetAccountByID("acc-x").Return(nil, nil)

	svc := NewService(testConfig(), nil, nil, accountRepo, nil)

	_, err := svc.LookupAccountAdMetrics("acc-x", nil, nil, 7)
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestService_LookupPorContaUsaAnunciosLocais(t *testing.T) {
	ctrl := gomock.NewController(t)
	cacheRepo := mocks.NewMockMetricsCacheRepository(ctrl)
	adRepo := mocks.NewMockAdRepository(ctrl)
	accountRepo := mocks.NewMockAccountRepository(ctrl)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	accountRepo.EXPECT().GetAccountByID("acc-1").Return(&domain.AdAccount{ID: "acc-1"}, nil)
	adRepo.EXPECT().ListByAccount("acc-1").Return([]*domain.Ad{
		{ExternalID: "ad-1"},
	}, nil)

	cacheRepo.EXPECT().
		GetExact([]string{"ad-1"}, start, end, 7).
		Return(map[string]*domain.MetricsCacheEntry{
			"ad-1": cacheEntry("ad-1", start, end, 7, 7.7),
		}, nil)

	svc := NewService(testConfig(), cacheRepo, adRepo, accountRepo, nil)

	results, err := svc.LookupAccountAdMetrics("acc-1", &start, &end, 7)
	require.NoError(t, err)
	assert.Equal(t, 7.7, results["ad-1"].Metrics.Spend)
}

func TestService_RefreshPorContaExigeToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	accountRepo := mocks.NewMockAccountRepository(ctrl)

	accountRepo.EXPECT().GetAccountByID("acc-1").Return(&domain.AdAccount{ID: "acc-1"}, nil)

	svc := NewService(testConfig(), nil, nil, accountRepo, nil)

	_, err := svc.RefreshAccountAdMetrics(context.Background(), "acc-1", time.Now(), time.Now())
	require.ErrorIs(t, err, ErrAccountWithoutToken)
}
