package ratelimit

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type LimitType string

const (
	LimitTypeUser    LimitType = "user"
	LimitTypeApp     LimitType = "app"
	LimitTypeHourly  LimitType = "hourly"
	LimitTypeGeneric LimitType = "generic"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

const (
	// Espera mínima aplicada a qualquer limite detectado.
	minWait = 60 * time.Second

	// Crescimento do multiplicador a cada limite consecutivo e seu teto.
	multiplierStep = 1.5
	multiplierCap  = 4.0
)

// Tetos de espera por severidade.
var severityCaps = map[Severity]time.Duration{
	SeverityLow:    1 * time.Hour,
	SeverityMedium: 1 * time.Hour,
	SeverityHigh:   2 * time.Hour,
}

// State é o estado de limitação de uma chave (plataforma, conta).
type State struct {
	Platform   string    `json:"platform"`
	AccountID  string    `json:"account_id"`
	LimitType  LimitType `json:"limit_type"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	Multiplier float64   `json:"multiplier"`
	DetectedAt time.Time `json:"detected_at"`
	ResetTime  time.Time `json:"reset_time"`
}

// RemainingWait devolve quanto tempo ainda falta até o reset.
func (s *State) RemainingWait(now time.Time) time.Duration {
	if s == nil || !now.Before(s.ResetTime) {
		return 0
	}
	return s.ResetTime.Sub(now)
}

// WaitMinutes arredonda a espera restante para cima, em minutos.
func (s *State) WaitMinutes(now time.Time) int {
	remaining := s.RemainingWait(now)
	if remaining <= 0 {
		return 0
	}
	minutes := int(remaining / time.Minute)
	if remaining%time.Minute > 0 {
		minutes++
	}
	return minutes
}

// Manager mantém o estado de rate limit por (plataforma, conta). É o único
// componente autorizado a mutar esse estado; cliente e engine recebem o
// Manager por referência a partir do main.
type Manager struct {
	mu sync.Mutex

	// multiplicador corrente por chave; sobrevive à expiração do estado
	// e só volta a 1 no próximo sucesso.
	multipliers map[string]float64
	states      map[string]*State

	now func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		multipliers: make(map[string]float64),
		states:      make(map[string]*State),
		now:         time.Now,
	}
}

func stateKey(platform, accountID string) string {
	return platform + ":" + accountID
}

// Classify inspeciona uma falha de chamada remota e decide se ela é um
// rate limit. Devolve o novo estado quando for, ou nil quando não for.
func (m *Manager) Classify(platform, accountID string, statusCode, errorCode, errorSubcode int, message string, headers http.Header) *State {
	rule := matchRule(platform, statusCode, errorCode, errorSubcode, message)
	if rule == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := stateKey(platform, accountID)

	multiplier, ok := m.multipliers[key]
	if !ok {
		multiplier = 1.0
	} else {
		multiplier *= multiplierStep
		if multiplier > multiplierCap {
			multiplier = multiplierCap
		}
	}
	m.multipliers[key] = multiplier

	baseWait := rule.BaseWait
	if retryAfter := parseRetryAfter(headers); retryAfter > 0 {
		baseWait = retryAfter
	}

	wait := time.Duration(float64(baseWait) * multiplier)
	if ceiling, ok := severityCaps[rule.Severity]; ok && wait > ceiling {
		wait = ceiling
	}
	if wait < minWait {
		wait = minWait
	}

	now := m.now()
	state := &State{
		Platform:   platform,
		AccountID:  accountID,
		LimitType:  rule.LimitType,
		Severity:   rule.Severity,
		Message:    message,
		Multiplier: multiplier,
		DetectedAt: now,
		ResetTime:  now.Add(wait),
	}
	m.states[key] = state

	logrus.WithFields(logrus.Fields{
		"platform":   platform,
		"account_id": accountID,
		"limit_type": state.LimitType,
		"severity":   state.Severity,
		"multiplier": multiplier,
		"wait":       wait.String(),
	}).Warn("ratelimit: limite de requisições detectado")

	return state
}

// IsCurrentlyLimited consulta o estado da chave, expirando-o de forma
// preguiçosa quando o reset já passou.
func (m *Manager) IsCurrentlyLimited(platform, accountID string) *State {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := stateKey(platform, accountID)
	state, ok := m.states[key]
	if !ok {
		return nil
	}

	if !m.now().Before(state.ResetTime) {
		delete(m.states, key)
		return nil
	}

	return state
}

// MarkSuccess zera o multiplicador de backoff da chave após uma chamada bem
// sucedida. Um ResetTime ainda não expirado não é apagado à força: o pré-check
// de quem chama continua valendo.
func (m *Manager) MarkSuccess(platform, accountID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.multipliers, stateKey(platform, accountID))
}

// LimitedMessage monta a mensagem com estimativa de espera para o chamador.
func (s *State) LimitedMessage(now time.Time) string {
	return fmt.Sprintf(
		"limite de requisições da plataforma atingido (%s/%s), aguarde cerca de %d minuto(s)",
		s.LimitType, s.Severity, s.WaitMinutes(now),
	)
}

func parseRetryAfter(headers http.Header) time.Duration {
	if headers == nil {
		return 0
	}

	value := headers.Get("Retry-After")
	if value == "" {
		return 0
	}

	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return 0
	}

	return time.Duration(seconds) * time.Second
}
