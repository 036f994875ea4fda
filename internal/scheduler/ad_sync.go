package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/adsight/ads-sync-engine/infrastructure/repository"
	"github.com/adsight/ads-sync-engine/internal/config"
	"github.com/adsight/ads-sync-engine/internal/domain"
	"github.com/adsight/ads-sync-engine/internal/usecases/syncing"
)

// AdSyncConfig representa a configuração do agendador de reconciliação
type AdSyncConfig struct {
	CronSchedule      string
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// AdSyncService gerencia o agendamento e execução da reconciliação noturna
// das contas de anúncio
type AdSyncService struct {
	scheduler   *gocron.Scheduler
	config      AdSyncConfig
	accountRepo repository.AccountRepository
	syncEngine  syncing.Engine

	// baseCtx é o contexto de vida longa recebido em Start. Execuções em
	// background partem dele, nunca de um contexto de requisição.
	baseCtx context.Context

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewAdSyncService cria uma nova instância do serviço de reconciliação
func NewAdSyncService(
	accountRepo repository.AccountRepository,
	syncEngine syncing.Engine,
	appConfig *config.Config,
) *AdSyncService {
	syncConfig := AdSyncConfig{
		CronSchedule:      appConfig.AdSync.CronSchedule,
		MaxConcurrentJobs: appConfig.AdSync.MaxConcurrentJobs,
		SyncEnabled:       appConfig.AdSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de reconciliação carregada")

	return &AdSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		accountRepo: accountRepo,
		syncEngine:  syncEngine,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *AdSyncService) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if !s.config.SyncEnabled {
		logrus.Info("Reconciliação de contas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de reconciliação de contas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllAccounts(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar reconciliação de contas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de reconciliação de contas")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllAccounts reconcilia todas as contas ativas, com workers limitados
// por semáforo. A trava de conta do engine cuida de não sobrepor execuções
// da mesma conta.
func (s *AdSyncService) syncAllAccounts(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Reconciliação de contas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando reconciliação de todas as contas ativas")

	activeAccounts, err := s.accountRepo.ListAccounts([]domain.AdAccountStatus{domain.AdAccountStatusActive})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lista de contas para reconciliação")
		return
	}

	if len(activeAccounts) == 0 {
		logrus.Info("Nenhuma conta ativa encontrada para reconciliação")
		return
	}

	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, account := range activeAccounts {
		if account.ExternalID == "" {
			logrus.WithField("account_id", account.ID).Warn("Conta sem external_id. Pulando.")
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *domain.AdAccount) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			result, err := s.syncEngine.SyncAccount(ctx, acc.ID)
			if err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"account_id":   acc.ID,
					"account_name": acc.Name,
				}).Error("Erro ao reconciliar conta")
				return
			}

			logrus.WithFields(logrus.Fields{
				"account_id":     acc.ID,
				"account_name":   acc.Name,
				"run_id":         result.RunID,
				"ok":             result.OK,
				"ads_inserted":   result.AdsInserted,
				"ads_updated":    result.AdsUpdated,
				"ads_deleted":    result.AdsDeleted,
				"metrics_synced": result.MetricsSynced,
				"metrics_errors": result.MetricsErrors,
			}).Info("Reconciliação de conta concluída")
		}(account)
	}

	wg.Wait()

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"accounts": len(activeAccounts),
	}).Info("Reconciliação de contas concluída")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}

// TriggerManualSync inicia manualmente uma reconciliação de todas as contas.
// A execução roda em background sobre o contexto de vida longa do serviço:
// o contexto da requisição que disparou já terá sido cancelado pelo net/http
// quando o handler responder.
func (s *AdSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Reconciliação já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	ctx := s.baseCtx
	if ctx == nil {
		ctx = context.Background()
	}

	logrus.Info("Iniciando reconciliação manual de contas")
	go s.syncAllAccounts(ctx)
}

// GetStatus retorna o status atual do agendador
func (s *AdSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	running := s.syncRunning
	startedAt := s.lastSyncStartedAt
	completedAt := s.lastSyncCompletedAt
	s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_running":           running,
		"last_sync_started_at":   startedAt,
		"last_sync_completed_at": completedAt,
	}
}
