package insighting

import (
	"context"
	"time"

	"github.com/adsight/ads-sync-engine/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/insighting_mock.go -package=mocks

// MetricsReader define a consulta de métricas em camadas do cache.
type MetricsReader interface {
	// LookupAdMetrics resolve métricas para um conjunto de anúncios,
	// caminhando dos tiers mais exatos para os mais aproximados. Um miss
	// completo não é erro: o anúncio recebe um resultado "empty".
	LookupAdMetrics(adExternalIDs []string, dateStart, dateEnd *time.Time, periodDays int) (map[string]*domain.MetricsLookupResult, error)
}

// MetricsWriter grava entradas no cache. É o caminho de escrita usado pela
// reconciliação ao fim de cada janela de métricas.
type MetricsWriter interface {
	// SaveAdMetrics faz upsert na chave exata da entrada. Datas informadas
	// pelo chamador são gravadas ao pé da letra; a janela terminando ontem
	// só é derivada quando a entrada chega sem datas.
	SaveAdMetrics(entry *domain.MetricsCacheEntry) error

	// SaveErrorRow registra uma linha de erro (sem métricas) para a chave,
	// suprimindo novas tentativas fúteis para a mesma janela.
	SaveErrorRow(adExternalID, accountID, clientID string, dateStart, dateEnd time.Time, periodDays int) error
}

// Insighter é a superfície completa do cache de métricas, incluindo o
// caminho de refresh que busca na plataforma o que o cache não tem.
type Insighter interface {
	MetricsReader
	MetricsWriter

	// RefreshAdMetrics busca as métricas dos anúncios direto da plataforma,
	// grava no cache e devolve o lookup já atualizado.
	RefreshAdMetrics(ctx context.Context, account *domain.AdAccount, accessToken string, adExternalIDs []string, dateStart, dateEnd time.Time) (map[string]*domain.MetricsLookupResult, error)

	// LookupAccountAdMetrics resolve métricas para todos os anúncios da
	// conta, sem tocar a plataforma.
	LookupAccountAdMetrics(accountID string, dateStart, dateEnd *time.Time, periodDays int) (map[string]*domain.MetricsLookupResult, error)

	// RefreshAccountAdMetrics abre o token selado da conta e dispara o
	// refresh de todos os seus anúncios para o período informado.
	RefreshAccountAdMetrics(ctx context.Context, accountID string, dateStart, dateEnd time.Time) (map[string]*domain.MetricsLookupResult, error)
}
