package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/adsight/ads-sync-engine/infrastructure/repository/mocks"
	"github.com/adsight/ads-sync-engine/internal/api/handler/router"
	"github.com/adsight/ads-sync-engine/internal/config"
	"github.com/adsight/ads-sync-engine/internal/domain"
	"github.com/adsight/ads-sync-engine/internal/scheduler"
	syncmocks "github.com/adsight/ads-sync-engine/internal/usecases/syncing/mocks"
)

func TestRunCronJob_DisparoManualSobreviveAoContextoDaRequisicao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := mocks.NewMockAccountRepository(ctrl)
	mockEngine := syncmocks.NewMockEngine(ctrl)

	mockAccountRepo.EXPECT().
		ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive}).
		Return([]*domain.AdAccount{{ID: "acc-1", Name: "Loja A", ExternalID: "111"}}, nil)

	// O engine só termina depois da resposta HTTP. Se a reconciliação
	// herdar o contexto da requisição, ctxErr chega cancelado.
	ctxErr := make(chan error, 1)
	mockEngine.EXPECT().
		SyncAccount(gomock.Any(), "acc-1").
		DoAndReturn(func(ctx context.Context, accountID string) (*domain.SyncResult, error) {
			time.Sleep(50 * time.Millisecond)
			ctxErr <- ctx.Err()
			return &domain.SyncResult{OK: true, RunID: "run-1"}, nil
		})

	appConfig := &config.Config{}
	appConfig.AdSync.MaxConcurrentJobs = 2

	adSyncService := scheduler.NewAdSyncService(mockAccountRepo, mockEngine, appConfig)

	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, adSyncService.Start(serviceCtx))

	mux := router.New(router.WithRoutes(CronJobs(CronJobServices{AdSyncService: adSyncService})...))
	server := httptest.NewServer(mux)
	defer server.Close()

	resp, err := http.Post(server.URL+"/v1/cron/ad-sync/run", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	select {
	case err := <-ctxErr:
		assert.NoError(t, err, "a reconciliação não pode ser cancelada junto com a requisição")
	case <-time.After(2 * time.Second):
		t.Fatal("reconciliação manual não executou")
	}
}

func TestRunCronJob_TipoInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adSyncService := scheduler.NewAdSyncService(
		mocks.NewMockAccountRepository(ctrl),
		syncmocks.NewMockEngine(ctrl),
		&config.Config{},
	)

	mux := router.New(router.WithRoutes(CronJobs(CronJobServices{AdSyncService: adSyncService})...))
	server := httptest.NewServer(mux)
	defer server.Close()

	resp, err := http.Post(server.URL+"/v1/cron/qualquer-coisa/run", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
