package insighting

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/adsight/ads-sync-engine/infrastructure/integrator/meta"
	"github.com/adsight/ads-sync-engine/infrastructure/integrator/meta/metaclient"
	"github.com/adsight/ads-sync-engine/infrastructure/repository"
	"github.com/adsight/ads-sync-engine/internal/config"
	"github.com/adsight/ads-sync-engine/internal/domain"
	"github.com/adsight/ads-sync-engine/pkg/crypto"
	"github.com/adsight/ads-sync-engine/pkg/utils"
)

const (
	defaultPeriodDays = 7

	// Sugestão devolvida junto com um miss completo.
	refreshSuggestion = "sem métricas no cache para o período; dispare uma sincronização da conta"
)

// Erros devolvidos pelas operações por conta.
var (
	ErrAccountNotFound     = errors.New("conta não encontrada")
	ErrAccountWithoutToken = errors.New("conta sem token de acesso")
)

// Service implementa o cache de métricas em camadas sobre a tabela
// ad_metrics_cache.
type Service struct {
	cfg         *config.Config
	cacheRepo   repository.MetricsCacheRepository
	adRepo      repository.AdRepository
	accountRepo repository.AccountRepository
	metaClient  metaclient.Client
}

func NewService(
	cfg *config.Config,
	cacheRepo repository.MetricsCacheRepository,
	adRepo repository.AdRepository,
	accountRepo repository.AccountRepository,
	metaClient metaclient.Client,
) Insighter {
	return &Service{
		cfg:         cfg,
		cacheRepo:   cacheRepo,
		adRepo:      adRepo,
		accountRepo: accountRepo,
		metaClient:  metaClient,
	}
}

// LookupAdMetrics caminha pelos tiers do cache até atingir a cobertura
// configurada:
//
//  1. chave exata (datas e janela);
//  2. mesma janela, date_end dentro do horizonte recente;
//  3. qualquer janela com date_end recente;
//  4. a linha mais nova de cada anúncio, sem restrição de recência.
//
// O caminhar para depois dos tiers 1-2 só acontece se a cobertura ficou
// abaixo do limiar; o tier 4 é o último recurso antes do resultado vazio.
func (s *Service) LookupAdMetrics(adExternalIDs []string, dateStart, dateEnd *time.Time, periodDays int) (map[string]*domain.MetricsLookupResult, error) {
	if len(adExternalIDs) == 0 {
		return map[string]*domain.MetricsLookupResult{}, nil
	}

	start, end, periodDays, derived := resolvePeriod(dateStart, dateEnd, periodDays)

	results := make(map[string]*domain.MetricsLookupResult, len(adExternalIDs))
	pending := adExternalIDs

	// Tier 1: chave exata.
	exact, err := s.cacheRepo.GetExact(pending, start, end, periodDays)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar o tier exato do cache: %w", err)
	}
	pending = fillResults(results, pending, exact, domain.DataSourceExact)

	threshold := s.cfg.MetricsCache.CoverageThreshold
	if derived {
		// O caminho sem datas explícitas aceita cobertura menor.
		threshold = s.cfg.MetricsCache.FallbackCoverageThreshold
	}

	if !s.coverageReached(results, adExternalIDs, threshold) {
		since := utils.Yesterday(time.Now()).AddDate(0, 0, -s.cfg.MetricsCache.RecentDays)

		// Tier 2: mesma janela, fim recente.
		if len(pending) > 0 {
			similar, err := s.cacheRepo.GetSameWindowRecent(pending, periodDays, since)
			if err != nil {
				return nil, fmt.Errorf("erro ao consultar o tier de janela similar: %w", err)
			}
			pending = fillResults(results, pending, similar, domain.DataSourceSimilar)
		}

		if !s.coverageReached(results, adExternalIDs, threshold) {
			// Tier 3: qualquer janela recente.
			if len(pending) > 0 {
				recent, err := s.cacheRepo.GetAnyRecent(pending, since)
				if err != nil {
					return nil, fmt.Errorf("erro ao consultar o tier recente: %w", err)
				}
				pending = fillResults(results, pending, recent, domain.DataSourceRecent)
			}

			// Tier 4: o que houver, por mais velho que seja.
			if len(pending) > 0 {
				newest, err := s.cacheRepo.GetNewest(pending)
				if err != nil {
					return nil, fmt.Errorf("erro ao consultar o tier de último recurso: %w", err)
				}
				pending = fillResults(results, pending, newest, domain.DataSourceFallback)
			}
		}
	}

	// O que sobrou vira resultado vazio com a sugestão de refresh.
	for _, adID := range pending {
		results[adID] = &domain.MetricsLookupResult{
			OK:          false,
			Cached:      false,
			DataSource:  domain.DataSourceEmpty,
			PeriodStart: start.Format(time.DateOnly),
			PeriodEnd:   end.Format(time.DateOnly),
			Suggestion:  refreshSuggestion,
		}
	}

	logrus.WithFields(logrus.Fields{
		"ads":         len(adExternalIDs),
		"misses":      len(pending),
		"date_start":  start.Format(time.DateOnly),
		"date_end":    end.Format(time.DateOnly),
		"period_days": periodDays,
	}).Debug("insighting: lookup de métricas concluído")

	return results, nil
}

// SaveAdMetrics grava a entrada na chave exata. Datas do chamador nunca são
// recalculadas; só na ausência delas a janela terminando ontem é derivada.
func (s *Service) SaveAdMetrics(entry *domain.MetricsCacheEntry) error {
	if entry == nil {
		return fmt.Errorf("entrada de cache vazia")
	}

	if entry.DateStart.IsZero() || entry.DateEnd.IsZero() {
		periodDays := entry.PeriodDays
		if periodDays <= 0 {
			periodDays = defaultPeriodDays
		}
		entry.DateStart, entry.DateEnd = utils.WindowEndingYesterday(time.Now(), periodDays)
		entry.PeriodDays = periodDays
	} else if entry.PeriodDays <= 0 {
		entry.PeriodDays = inclusiveDays(entry.DateStart, entry.DateEnd)
	}

	if entry.SyncStatus == "" {
		entry.SyncStatus = domain.SyncStatusSuccess
	}

	if err := s.cacheRepo.SaveOrUpdate(entry); err != nil {
		return fmt.Errorf("erro ao gravar métricas no cache: %w", err)
	}

	return nil
}

// SaveErrorRow grava uma linha com sync_status de erro e sem métricas para a
// chave, evitando que a mesma janela seja tentada de novo na mesma execução.
func (s *Service) SaveErrorRow(adExternalID, accountID, clientID string, dateStart, dateEnd time.Time, periodDays int) error {
	entry := &domain.MetricsCacheEntry{
		AdExternalID: adExternalID,
		AccountID:    accountID,
		ClientID:     clientID,
		DateStart:    dateStart,
		DateEnd:      dateEnd,
		PeriodDays:   periodDays,
		Metrics:      nil,
		SyncStatus:   domain.SyncStatusError,
	}

	if err := s.cacheRepo.SaveOrUpdate(entry); err != nil {
		return fmt.Errorf("erro ao gravar linha de erro no cache: %w", err)
	}

	return nil
}

// RefreshAdMetrics busca da plataforma as métricas dos anúncios informados,
// grava cada linha no cache e devolve o lookup já com os dados novos. Os ids
// são fatiados em chunks para não estourar o payload da chamada de insights.
func (s *Service) RefreshAdMetrics(ctx context.Context, account *domain.AdAccount, accessToken string, adExternalIDs []string, dateStart, dateEnd time.Time) (map[string]*domain.MetricsLookupResult, error) {
	if account == nil {
		return nil, fmt.Errorf("conta não informada")
	}

	periodDays := inclusiveDays(dateStart, dateEnd)
	since := dateStart.Format(time.DateOnly)
	until := dateEnd.Format(time.DateOnly)

	goals, err := s.optimizationGoals(account.ID, adExternalIDs)
	if err != nil {
		return nil, err
	}

	chunkSize := s.cfg.AdSync.ChunkSize
	for _, chunk := range utils.ChunkStrings(adExternalIDs, chunkSize) {
		rows, err := s.metaClient.GetAdInsights(ctx, accessToken, account.ExternalID, chunk, since, until)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"account_id": account.ID,
				"ads":        len(chunk),
			}).Warn("insighting: falha ao buscar insights no refresh")
			continue
		}

		for i := range rows {
			row := &rows[i]
			metrics := meta.NormalizeInsight(row, goals[row.AdID])

			entry := &domain.MetricsCacheEntry{
				AdExternalID: row.AdID,
				AccountID:    account.ID,
				ClientID:     account.ClientID,
				DateStart:    dateStart,
				DateEnd:      dateEnd,
				PeriodDays:   periodDays,
				Metrics:      metrics,
				SyncStatus:   domain.SyncStatusSuccess,
			}

			if err := s.SaveAdMetrics(entry); err != nil {
				logrus.WithError(err).WithField("ad_external_id", row.AdID).
					Warn("insighting: falha ao gravar métricas do refresh")
			}
		}
	}

	return s.LookupAdMetrics(adExternalIDs, &dateStart, &dateEnd, periodDays)
}

// LookupAccountAdMetrics resolve métricas para todos os anúncios locais da
// conta, apenas a partir do cache.
func (s *Service) LookupAccountAdMetrics(accountID string, dateStart, dateEnd *time.Time, periodDays int) (map[string]*domain.MetricsLookupResult, error) {
	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conta: %w", err)
	}

	if account == nil {
		return nil, ErrAccountNotFound
	}

	adIDs, err := s.accountAdIDs(accountID)
	if err != nil {
		return nil, err
	}

	return s.LookupAdMetrics(adIDs, dateStart, dateEnd, periodDays)
}

// RefreshAccountAdMetrics abre o token selado da conta e busca na plataforma
// as métricas de todos os seus anúncios para o período.
func (s *Service) RefreshAccountAdMetrics(ctx context.Context, accountID string, dateStart, dateEnd time.Time) (map[string]*domain.MetricsLookupResult, error) {
	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conta: %w", err)
	}

	if account == nil {
		return nil, ErrAccountNotFound
	}

	if account.SealedToken == "" {
		return nil, ErrAccountWithoutToken
	}

	accessToken, err := crypto.Open(account.SealedToken, s.cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir o token selado da conta: %w", err)
	}

	adIDs, err := s.accountAdIDs(accountID)
	if err != nil {
		return nil, err
	}

	if len(adIDs) == 0 {
		return map[string]*domain.MetricsLookupResult{}, nil
	}

	return s.RefreshAdMetrics(ctx, account, accessToken, adIDs, dateStart, dateEnd)
}

func (s *Service) accountAdIDs(accountID string) ([]string, error) {
	ads, err := s.adRepo.ListByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar anúncios da conta: %w", err)
	}

	adIDs := make([]string, 0, len(ads))
	for _, ad := range ads {
		adIDs = append(adIDs, ad.ExternalID)
	}

	return adIDs, nil
}

// optimizationGoals indexa o optimization goal local dos anúncios pedidos.
func (s *Service) optimizationGoals(accountID string, adExternalIDs []string) (map[string]string, error) {
	ads, err := s.adRepo.ListByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar anúncios da conta: %w", err)
	}

	wanted := make(map[string]bool, len(adExternalIDs))
	for _, id := range adExternalIDs {
		wanted[id] = true
	}

	goals := make(map[string]string, len(adExternalIDs))
	for _, ad := range ads {
		if wanted[ad.ExternalID] {
			goals[ad.ExternalID] = ad.OptimizationGoal
		}
	}

	return goals, nil
}

// resolvePeriod aplica o contrato de datas: explícitas valem ao pé da letra;
// sem datas, deriva a janela de periodDays dias terminando ontem.
func resolvePeriod(dateStart, dateEnd *time.Time, periodDays int) (start, end time.Time, days int, derived bool) {
	if dateStart != nil && dateEnd != nil {
		days = periodDays
		if days <= 0 {
			days = inclusiveDays(*dateStart, *dateEnd)
		}
		return *dateStart, *dateEnd, days, false
	}

	days = periodDays
	if days <= 0 {
		days = defaultPeriodDays
	}

	start, end = utils.WindowEndingYesterday(time.Now(), days)
	return start, end, days, true
}

func inclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// fillResults move para o mapa de resultados os anúncios atendidos pelo tier
// e devolve os que continuam pendentes.
func fillResults(results map[string]*domain.MetricsLookupResult, pending []string, hits map[string]*domain.MetricsCacheEntry, source domain.DataSource) []string {
	if len(hits) == 0 {
		return pending
	}

	still := make([]string, 0, len(pending))
	for _, adID := range pending {
		entry, ok := hits[adID]
		if !ok || entry.Metrics == nil {
			still = append(still, adID)
			continue
		}

		syncedAt := entry.SyncedAt
		results[adID] = &domain.MetricsLookupResult{
			OK:          true,
			Cached:      true,
			DataSource:  source,
			Metrics:     entry.Metrics,
			PeriodStart: entry.DateStart.Format(time.DateOnly),
			PeriodEnd:   entry.DateEnd.Format(time.DateOnly),
			SyncedAt:    &syncedAt,
		}
	}

	return still
}

func (s *Service) coverageReached(results map[string]*domain.MetricsLookupResult, all []string, threshold float64) bool {
	if len(all) == 0 {
		return true
	}
	return float64(len(results))/float64(len(all)) >= threshold
}
