package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	metadomain "github.com/adsight/ads-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/adsight/ads-sync-engine/internal/ratelimit"
)

var (
	// ErrPermanent indica erro de credencial, permissão ou parâmetro:
	// repetir a chamada não resolve, o chamador precisa reconfigurar.
	ErrPermanent = errors.New("erro permanente da plataforma")

	// ErrRateLimited indica que as tentativas esgotaram por limite de
	// requisições; o estado com a espera fica registrado no Manager.
	ErrRateLimited = errors.New("limite de requisições da plataforma")
)

const (
	defaultMaxRetries   = 3
	defaultInitialDelay = 2 * time.Second
	maxTransientDelay   = 30 * time.Second

	// Orçamentos da paginação.
	paginationBudget = 25 * time.Second
	pageTimeout      = 8 * time.Second
)

// FetchOptions parametriza uma chamada com retry.
type FetchOptions struct {
	MaxRetries   int
	InitialDelay time.Duration
	Context      string
	AccountID    string
}

func (o FetchOptions) withDefaults() FetchOptions {
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetries
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = defaultInitialDelay
	}
	return o
}

// pageEnvelope é o envelope padrão de listagem da Graph API.
type pageEnvelope struct {
	Data   json.RawMessage   `json:"data"`
	Paging metadomain.Paging `json:"paging"`
}

// fetchWithRetry executa uma chamada GET com classificação de falhas.
// Rate limit espera o tempo calculado pelo Manager e tenta de novo; erros
// permanentes abortam na hora; o resto recebe backoff exponencial limitado.
func (c *MetaClient) fetchWithRetry(ctx context.Context, rawURL string, opts FetchOptions) ([]byte, error) {
	opts = opts.withDefaults()

	var lastErr error

	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		body, apiErr, err := c.doRequest(ctx, rawURL)
		if err != nil {
			// Falha de rede/timeout: transitória por definição.
			lastErr = err
			if attempt < opts.MaxRetries {
				c.sleepTransient(ctx, opts, attempt, err)
				continue
			}
			break
		}

		if apiErr == nil {
			c.limiter.MarkSuccess(ratelimit.PlatformMeta, opts.AccountID)
			return body, nil
		}

		state := c.limiter.Classify(
			ratelimit.PlatformMeta,
			opts.AccountID,
			apiErr.StatusCode,
			apiErr.Response.Error.Code,
			apiErr.Response.Error.ErrorSubcode,
			apiErr.Response.Error.Message,
			apiErr.Headers,
		)
		if state != nil {
			lastErr = errors.Wrapf(ErrRateLimited, "%s: %s", opts.Context, apiErr.Response.Error.Message)
			if attempt < opts.MaxRetries {
				if waitErr := c.waitForReset(ctx, state, opts); waitErr != nil {
					return nil, waitErr
				}
				continue
			}
			break
		}

		if apiErr.Response.IsPermanent() {
			logrus.WithFields(logrus.Fields{
				"context":    opts.Context,
				"account_id": opts.AccountID,
				"code":       apiErr.Response.Error.Code,
				"subcode":    apiErr.Response.Error.ErrorSubcode,
			}).Error("metaclient: erro permanente, abortando sem retry")
			return nil, errors.Wrapf(ErrPermanent, "%s: %s", opts.Context, apiErr.Response.Error.Message)
		}

		// 5xx e erros desconhecidos: transitórios.
		lastErr = errors.Errorf("%s: status %d: %s", opts.Context, apiErr.StatusCode, apiErr.Response.Error.Message)
		if attempt < opts.MaxRetries {
			c.sleepTransient(ctx, opts, attempt, lastErr)
		}
	}

	return nil, lastErr
}

// fetchAllPages segue os cursores "next" acumulando os itens de cada página.
// Um orçamento global de parede e um timeout menor por página evitam que uma
// listagem degenerada trave a sincronização; URLs repetidas interrompem o
// loop de paginação.
func (c *MetaClient) fetchAllPages(ctx context.Context, firstURL string, maxPages int, opts FetchOptions) ([]json.RawMessage, error) {
	opts = opts.withDefaults()

	started := time.Now()
	seen := make(map[string]struct{})
	items := make([]json.RawMessage, 0)

	nextURL := firstURL
	for page := 1; page <= maxPages && nextURL != ""; page++ {
		if time.Since(started) > paginationBudget {
			logrus.WithFields(logrus.Fields{
				"context": opts.Context,
				"pages":   page - 1,
				"items":   len(items),
			}).Warn("metaclient: orçamento de paginação esgotado, devolvendo parcial")
			break
		}

		if _, ok := seen[nextURL]; ok {
			logrus.WithField("context", opts.Context).Warn("metaclient: cursor de paginação repetido, interrompendo")
			break
		}
		seen[nextURL] = struct{}{}

		pageCtx, cancel := context.WithTimeout(ctx, pageTimeout)
		body, err := c.fetchWithRetry(pageCtx, nextURL, opts)
		cancel()
		if err != nil {
			if page == 1 {
				return nil, err
			}
			// Página seguinte falhou: melhor parcial do que nada.
			logrus.WithError(err).WithField("context", opts.Context).Warn("metaclient: falha em página subsequente, devolvendo parcial")
			break
		}

		var envelope pageEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, errors.Wrapf(err, "%s: falha ao decodificar página %d", opts.Context, page)
		}

		var pageItems []json.RawMessage
		if len(envelope.Data) > 0 {
			if err := json.Unmarshal(envelope.Data, &pageItems); err != nil {
				return nil, errors.Wrapf(err, "%s: falha ao decodificar itens da página %d", opts.Context, page)
			}
		}
		items = append(items, pageItems...)

		nextURL = envelope.Paging.Next
	}

	return items, nil
}

// apiError carrega a resposta de erro da Graph API junto com o status HTTP
// e os headers (o Retry-After importa para o Manager).
type apiError struct {
	StatusCode int
	Headers    http.Header
	Response   metadomain.ErrorResponse
}

func (c *MetaClient) doRequest(ctx context.Context, rawURL string) ([]byte, *apiError, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "falha ao criar a requisição")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, errors.Wrap(err, "falha ao executar a requisição")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.Wrap(err, "falha ao ler o corpo da resposta")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil, nil
	}

	var errResp metadomain.ErrorResponse
	// Corpo ilegível não impede a classificação por status HTTP.
	_ = json.Unmarshal(body, &errResp)

	return nil, &apiError{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Response:   errResp,
	}, nil
}

// waitForReset dorme até o reset do rate limit, logando progresso quando a
// espera passa de 30 segundos.
func (c *MetaClient) waitForReset(ctx context.Context, state *ratelimit.State, opts FetchOptions) error {
	wait := state.RemainingWait(time.Now())
	if wait <= 0 {
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"context":    opts.Context,
		"account_id": opts.AccountID,
		"limit_type": state.LimitType,
		"wait":       wait.String(),
	}).Warn("metaclient: aguardando reset do limite de requisições")

	if wait <= 30*time.Second {
		select {
		case <-time.After(wait):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	deadline := time.Now().Add(wait)
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if !now.Before(deadline) {
				return nil
			}
			logrus.WithFields(logrus.Fields{
				"context":   opts.Context,
				"remaining": deadline.Sub(now).Round(time.Second).String(),
			}).Info("metaclient: ainda aguardando reset do limite")
		}
	}
}

func (c *MetaClient) sleepTransient(ctx context.Context, opts FetchOptions, attempt int, cause error) {
	delay := opts.InitialDelay * time.Duration(1<<uint(attempt-1))
	if delay > maxTransientDelay {
		delay = maxTransientDelay
	}

	logrus.WithFields(logrus.Fields{
		"context": opts.Context,
		"attempt": attempt,
		"delay":   delay.String(),
		"error":   fmt.Sprintf("%v", cause),
	}).Warn("metaclient: falha transitória, tentando novamente")

	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}
}
