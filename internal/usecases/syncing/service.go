package syncing

import (
	"context"
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/adsight/ads-sync-engine/infrastructure/integrator/meta"
	"github.com/adsight/ads-sync-engine/infrastructure/integrator/meta/metaclient"
	"github.com/adsight/ads-sync-engine/infrastructure/repository"
	"github.com/adsight/ads-sync-engine/internal/config"
	"github.com/adsight/ads-sync-engine/internal/domain"
	"github.com/adsight/ads-sync-engine/internal/ratelimit"
	"github.com/adsight/ads-sync-engine/internal/usecases/insighting"
	"github.com/adsight/ads-sync-engine/pkg/crypto"
	"github.com/adsight/ads-sync-engine/pkg/utils"
)

// ErrSyncInProgress sinaliza que a conta já tem uma sincronização em
// andamento neste processo. O chamador deve rejeitar, não enfileirar.
var ErrSyncInProgress = errors.New("sincronização já em andamento para a conta")

// ErrAccountNotFound sinaliza que o ID informado não corresponde a nenhuma
// conta cadastrada.
var ErrAccountNotFound = errors.New("conta não encontrada")

// Janelas de métricas sincronizadas a cada reconciliação, em dias,
// todas terminando ontem.
var metricsWindows = []int{7, 14, 30}

// Limite de tamanho da mensagem de erro persistida na conta.
const maxSyncErrorLen = 500

//go:generate mockgen -source=service.go -destination=mocks/syncing_mock.go -package=mocks

// Engine reconcilia o espelho local de uma conta com o estado remoto.
// A varredura de todas as contas fica a cargo do agendador, que aplica
// seu próprio limite de concorrência sobre SyncAccount.
type Engine interface {
	SyncAccount(ctx context.Context, accountID string) (*domain.SyncResult, error)
}

type Service struct {
	cfg              *config.Config
	limiter          *ratelimit.Manager
	metaClient       metaclient.Client
	accountRepo      repository.AccountRepository
	campaignRepo     repository.CampaignRepository
	adRepo           repository.AdRepository
	metricsCacheRepo repository.MetricsCacheRepository
	insighter        insighting.MetricsWriter

	// trava consultiva por conta, válida só dentro deste processo.
	mu      sync.Mutex
	running map[string]bool
}

func NewService(
	cfg *config.Config,
	limiter *ratelimit.Manager,
	metaClient metaclient.Client,
	accountRepo repository.AccountRepository,
	campaignRepo repository.CampaignRepository,
	adRepo repository.AdRepository,
	metricsCacheRepo repository.MetricsCacheRepository,
	insighter insighting.MetricsWriter,
) Engine {
	return &Service{
		cfg:              cfg,
		limiter:          limiter,
		metaClient:       metaClient,
		accountRepo:      accountRepo,
		campaignRepo:     campaignRepo,
		adRepo:           adRepo,
		metricsCacheRepo: metricsCacheRepo,
		insighter:        insighter,
		running:          make(map[string]bool),
	}
}

// SyncAccount executa uma reconciliação completa da conta: pré-check de rate
// limit, espelhamento de campanhas e anúncios ativos e sincronização das
// janelas de métricas. Falha de métricas nunca derruba a reconciliação já
// aplicada; ela é contabilizada no resultado.
func (s *Service) SyncAccount(ctx context.Context, accountID string) (*domain.SyncResult, error) {
	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar a conta: %w", err)
	}
	if account == nil {
		return nil, errors.Wrap(ErrAccountNotFound, accountID)
	}

	if !s.acquire(account.ID) {
		return nil, ErrSyncInProgress
	}
	defer s.release(account.ID)

	runID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da execução: %w", err)
	}

	result := &domain.SyncResult{RunID: runID}

	logger := logrus.WithFields(logrus.Fields{
		"run_id":      runID,
		"account_id":  account.ID,
		"external_id": account.ExternalID,
	})
	logger.Info("syncing: reconciliação iniciada")

	// Pré-check: conta limitada não gera nenhuma chamada remota.
	if state := s.limiter.IsCurrentlyLimited(ratelimit.PlatformMeta, account.ExternalID); state != nil {
		now := time.Now()
		result.RateLimitDetected = true
		result.WaitTimeMinutes = state.WaitMinutes(now)
		result.Error = state.LimitedMessage(now)
		logger.WithField("wait_minutes", result.WaitTimeMinutes).
			Warn("syncing: conta sob rate limit, execução abortada no pré-check")
		return result, nil
	}

	accessToken, err := crypto.Open(account.SealedToken, s.cfg.SecretKey)
	if err != nil {
		return s.fail(account, result, "não foi possível abrir a credencial da conta", err), nil
	}

	activeAds, err := s.reconcile(ctx, account, accessToken, result)
	if err != nil {
		switch {
		case errors.Is(err, metaclient.ErrRateLimited):
			s.markRateLimited(account, result)
			s.persistFailure(account, result.Error)
		case errors.Is(err, metaclient.ErrPermanent):
			s.fail(account, result, "credencial ou permissão rejeitada pela plataforma; reautentique a conta", err)
		default:
			s.fail(account, result, "falha transitória ao consultar a plataforma", err)
		}
		return result, nil
	}

	s.syncMetrics(ctx, account, accessToken, activeAds, result)

	result.OK = true
	if err := s.accountRepo.UpdateSyncStatus(account.ID, domain.SyncStatusSuccess, nil); err != nil {
		logger.WithError(err).Warn("syncing: falha ao registrar sucesso na conta")
	}

	logger.WithFields(logrus.Fields{
		"campaigns_upserted": result.CampaignsUpserted,
		"campaigns_deleted":  result.CampaignsDeleted,
		"ads_inserted":       result.AdsInserted,
		"ads_updated":        result.AdsUpdated,
		"ads_deleted":        result.AdsDeleted,
		"ads_skipped":        result.AdsSkipped,
		"metrics_synced":     result.MetricsSynced,
		"metrics_errors":     result.MetricsErrors,
	}).Info("syncing: reconciliação concluída")

	return result, nil
}

// reconcile espelha o conjunto remoto ativo: upsert de campanhas, remoção
// das locais que sumiram, e o diff de anúncios aplicado na ordem campanhas →
// deletes → inserts → updates. Devolve o conjunto pós-reconciliação de
// anúncios ativos, que é o que a sincronização de métricas deve ler.
func (s *Service) reconcile(ctx context.Context, account *domain.AdAccount, accessToken string, result *domain.SyncResult) ([]*domain.Ad, error) {
	remoteCampaigns, err := s.metaClient.GetActiveCampaigns(ctx, accessToken, account.ExternalID)
	if err != nil {
		return nil, errors.Wrap(err, "falha ao buscar campanhas ativas")
	}

	remoteCampaignIDs := make(map[string]bool, len(remoteCampaigns))
	for _, campaign := range remoteCampaigns {
		remoteCampaignIDs[campaign.ID] = true

		if err := s.campaignRepo.SaveOrUpdate(&domain.Campaign{
			ExternalID: campaign.ID,
			AccountID:  account.ID,
			ClientID:   account.ClientID,
			Name:       campaign.Name,
			Objective:  campaign.Objective,
		}); err != nil {
			return nil, fmt.Errorf("erro ao gravar campanha %s: %w", campaign.ID, err)
		}
		result.CampaignsUpserted++
	}

	localCampaigns, err := s.campaignRepo.ListByAccount(account.ID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar campanhas locais: %w", err)
	}

	staleCampaignIDs := make([]string, 0)
	for _, campaign := range localCampaigns {
		if !remoteCampaignIDs[campaign.ExternalID] {
			staleCampaignIDs = append(staleCampaignIDs, campaign.ExternalID)
		}
	}
	if len(staleCampaignIDs) > 0 {
		deleted, err := s.campaignRepo.DeleteByExternalIDs(account.ID, staleCampaignIDs)
		if err != nil {
			return nil, fmt.Errorf("erro ao remover campanhas obsoletas: %w", err)
		}
		result.CampaignsDeleted = int(deleted)
	}

	remoteAds, err := s.metaClient.GetActiveAds(ctx, accessToken, account.ExternalID)
	if err != nil {
		return nil, errors.Wrap(err, "falha ao buscar anúncios ativos")
	}

	// Anúncio órfão (campanha fora do conjunto ativo) é descartado, não
	// espelhado.
	remoteByID := make(map[string]*domain.Ad, len(remoteAds))
	for i := range remoteAds {
		remote := &remoteAds[i]
		if !remoteCampaignIDs[remote.CampaignID] {
			result.AdsSkipped++
			continue
		}

		ad := &domain.Ad{
			ExternalID:         remote.ID,
			AccountID:          account.ID,
			ClientID:           account.ClientID,
			CampaignExternalID: remote.CampaignID,
			Name:               remote.Name,
			EffectiveStatus:    domain.AdStatusActive,
		}
		if remote.Creative != nil {
			ad.CreativeID = remote.Creative.ID
		}
		if remote.Adset != nil {
			ad.AdsetExternalID = remote.Adset.ID
			ad.OptimizationGoal = remote.Adset.OptimizationGoal
		} else {
			ad.AdsetExternalID = remote.AdsetID
		}

		remoteByID[ad.ExternalID] = ad
	}

	localAds, err := s.adRepo.ListByAccount(account.ID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar anúncios locais: %w", err)
	}

	localByID := make(map[string]*domain.Ad, len(localAds))
	for _, ad := range localAds {
		localByID[ad.ExternalID] = ad
	}

	removedIDs := make([]string, 0)
	for id := range localByID {
		if _, stillActive := remoteByID[id]; !stillActive {
			removedIDs = append(removedIDs, id)
		}
	}

	newAds := make([]*domain.Ad, 0)
	updates := make([]*domain.Ad, 0)
	for id, remote := range remoteByID {
		local, exists := localByID[id]
		if !exists {
			newAds = append(newAds, remote)
			continue
		}
		if local.NeedsUpdate(remote) {
			updates = append(updates, remote)
		}
	}

	// Ordem de aplicação: deletes antes de inserts, inserts antes de
	// updates. A sincronização de métricas lê o conjunto resultante.
	if len(removedIDs) > 0 {
		deleted, err := s.adRepo.DeleteByExternalIDs(account.ID, removedIDs)
		if err != nil {
			return nil, fmt.Errorf("erro ao remover anúncios obsoletos: %w", err)
		}
		result.AdsDeleted = int(deleted)

		if _, err := s.metricsCacheRepo.DeleteByAdExternalIDs(removedIDs); err != nil {
			logrus.WithError(err).WithField("account_id", account.ID).
				Warn("syncing: falha ao limpar cache de métricas dos anúncios removidos")
		}
	}

	if len(newAds) > 0 {
		if err := s.adRepo.InsertAds(newAds); err != nil {
			return nil, fmt.Errorf("erro ao inserir anúncios novos: %w", err)
		}
		result.AdsInserted = len(newAds)
	}

	for _, ad := range updates {
		if err := s.adRepo.UpdateAd(ad); err != nil {
			return nil, fmt.Errorf("erro ao atualizar anúncio %s: %w", ad.ExternalID, err)
		}
		result.AdsUpdated++
	}

	activeAds := make([]*domain.Ad, 0, len(remoteByID))
	for _, ad := range remoteByID {
		activeAds = append(activeAds, ad)
	}

	return activeAds, nil
}

// syncMetrics percorre as janelas de métricas em chunks de anúncios, com as
// pausas configuradas entre chunks e entre janelas. Um rate limit encerra o
// restante da sincronização de métricas; qualquer outra falha de chunk gera
// linhas de erro e segue adiante.
func (s *Service) syncMetrics(ctx context.Context, account *domain.AdAccount, accessToken string, activeAds []*domain.Ad, result *domain.SyncResult) {
	if len(activeAds) == 0 {
		return
	}

	adIDs := make([]string, 0, len(activeAds))
	goals := make(map[string]string, len(activeAds))
	for _, ad := range activeAds {
		adIDs = append(adIDs, ad.ExternalID)
		goals[ad.ExternalID] = ad.OptimizationGoal
	}

	chunkDelay := time.Duration(s.cfg.AdSync.ChunkDelaySeconds) * time.Second
	windowDelay := time.Duration(s.cfg.AdSync.WindowDelaySeconds) * time.Second

	for wi, days := range metricsWindows {
		if wi > 0 && windowDelay > 0 {
			time.Sleep(windowDelay)
		}

		start, end := utils.WindowEndingYesterday(time.Now(), days)
		since := start.Format(time.DateOnly)
		until := end.Format(time.DateOnly)

		stats := domain.WindowSyncStats{
			WindowDays: days,
			DateStart:  since,
			DateEnd:    until,
		}

		for ci, chunk := range utils.ChunkStrings(adIDs, s.cfg.AdSync.ChunkSize) {
			if ci > 0 && chunkDelay > 0 {
				time.Sleep(chunkDelay)
			}

			rows, err := s.metaClient.GetAdInsights(ctx, accessToken, account.ExternalID, chunk, since, until)
			if err != nil {
				s.writeErrorRows(account, chunk, start, end, days)
				stats.Errors += len(chunk)
				result.MetricsErrors += len(chunk)

				if errors.Is(err, metaclient.ErrRateLimited) {
					s.markRateLimited(account, result)
					result.Windows = append(result.Windows, stats)
					logrus.WithFields(logrus.Fields{
						"account_id":  account.ID,
						"window_days": days,
					}).Warn("syncing: rate limit durante métricas, janelas restantes adiadas")
					return
				}

				logrus.WithError(err).WithFields(logrus.Fields{
					"account_id":  account.ID,
					"window_days": days,
					"ads":         len(chunk),
				}).Warn("syncing: falha em chunk de métricas")
				continue
			}

			for i := range rows {
				row := &rows[i]
				metrics := meta.NormalizeInsight(row, goals[row.AdID])

				entry := &domain.MetricsCacheEntry{
					AdExternalID: row.AdID,
					AccountID:    account.ID,
					ClientID:     account.ClientID,
					DateStart:    start,
					DateEnd:      end,
					PeriodDays:   days,
					Metrics:      metrics,
					SyncStatus:   domain.SyncStatusSuccess,
				}

				if err := s.insighter.SaveAdMetrics(entry); err != nil {
					logrus.WithError(err).WithField("ad_external_id", row.AdID).
						Warn("syncing: falha ao gravar métricas no cache")
					stats.Errors++
					result.MetricsErrors++
					continue
				}

				stats.Synced++
				result.MetricsSynced++
			}
		}

		result.Windows = append(result.Windows, stats)
	}
}

func (s *Service) writeErrorRows(account *domain.AdAccount, adIDs []string, start, end time.Time, periodDays int) {
	for _, adID := range adIDs {
		if err := s.insighter.SaveErrorRow(adID, account.ID, account.ClientID, start, end, periodDays); err != nil {
			logrus.WithError(err).WithField("ad_external_id", adID).
				Warn("syncing: falha ao gravar linha de erro no cache")
		}
	}
}

func (s *Service) markRateLimited(account *domain.AdAccount, result *domain.SyncResult) {
	result.RateLimitDetected = true
	if state := s.limiter.IsCurrentlyLimited(ratelimit.PlatformMeta, account.ExternalID); state != nil {
		now := time.Now()
		result.WaitTimeMinutes = state.WaitMinutes(now)
		if result.Error == "" {
			result.Error = state.LimitedMessage(now)
		}
	}
}

// fail registra a falha no resultado e na própria conta, com a mensagem
// truncada.
func (s *Service) fail(account *domain.AdAccount, result *domain.SyncResult, message string, cause error) *domain.SyncResult {
	result.OK = false
	result.Error = message
	if cause != nil {
		result.ErrorDetails = truncate(cause.Error(), maxSyncErrorLen)
	}

	logrus.WithError(cause).WithFields(logrus.Fields{
		"run_id":     result.RunID,
		"account_id": account.ID,
	}).Error("syncing: ", message)

	s.persistFailure(account, message)

	return result
}

func (s *Service) persistFailure(account *domain.AdAccount, message string) {
	truncated := truncate(message, maxSyncErrorLen)
	if err := s.accountRepo.UpdateSyncStatus(account.ID, domain.SyncStatusError, &truncated); err != nil {
		logrus.WithError(err).WithField("account_id", account.ID).
			Warn("syncing: falha ao registrar erro na conta")
	}
}

func (s *Service) acquire(accountID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running[accountID] {
		return false
	}
	s.running[accountID] = true
	return true
}

func (s *Service) release(accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.running, accountID)
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
