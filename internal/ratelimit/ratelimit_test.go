package ratelimit

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(now time.Time) *Manager {
	m := NewManager()
	m.now = func() time.Time { return now }
	return m
}

func TestManager_Classify(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		statusCode    int
		errorCode     int
		errorSubcode  int
		message       string
		headers       http.Header
		wantLimit     bool
		wantLimitType LimitType
		wantSeverity  Severity
	}{
		{
			name:          "Código 4 - limite de aplicação",
			statusCode:    400,
			errorCode:     4,
			wantLimit:     true,
			wantLimitType: LimitTypeApp,
			wantSeverity:  SeverityHigh,
		},
		{
			name:          "Código 17 - limite de usuário",
			statusCode:    400,
			errorCode:     17,
			message:       "User request limit reached",
			wantLimit:     true,
			wantLimitType: LimitTypeUser,
			wantSeverity:  SeverityMedium,
		},
		{
			name:          "Código 613 - limite customizado por hora",
			statusCode:    400,
			errorCode:     613,
			wantLimit:     true,
			wantLimitType: LimitTypeHourly,
			wantSeverity:  SeverityMedium,
		},
		{
			name:          "Subcódigo 2446079 - throttling de insights",
			statusCode:    400,
			errorCode:     80000,
			errorSubcode:  2446079,
			wantLimit:     true,
			wantLimitType: LimitTypeHourly,
			wantSeverity:  SeverityHigh,
		},
		{
			name:          "HTTP 429 sem corpo de erro",
			statusCode:    http.StatusTooManyRequests,
			wantLimit:     true,
			wantLimitType: LimitTypeGeneric,
			wantSeverity:  SeverityLow,
		},
		{
			name:          "Mensagem genérica de too many requests",
			statusCode:    500,
			message:       "Too Many Requests, slow down",
			wantLimit:     true,
			wantLimitType: LimitTypeGeneric,
			wantSeverity:  SeverityLow,
		},
		{
			name:       "Erro de permissão não é rate limit",
			statusCode: 400,
			errorCode:  200,
			message:    "Permissions error",
			wantLimit:  false,
		},
		{
			name:       "Erro de token não é rate limit",
			statusCode: 401,
			errorCode:  190,
			message:    "Invalid OAuth access token",
			wantLimit:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(now)

			state := m.Classify(PlatformMeta, "act_123", tt.statusCode, tt.errorCode, tt.errorSubcode, tt.message, tt.headers)

			if !tt.wantLimit {
				assert.Nil(t, state)
				assert.Nil(t, m.IsCurrentlyLimited(PlatformMeta, "act_123"))
				return
			}

			require.NotNil(t, state)
			assert.Equal(t, tt.wantLimitType, state.LimitType)
			assert.Equal(t, tt.wantSeverity, state.Severity)
			assert.True(t, state.ResetTime.After(now))
			assert.GreaterOrEqual(t, state.RemainingWait(now), 60*time.Second)

			// O estado fica consultável até o reset.
			limited := m.IsCurrentlyLimited(PlatformMeta, "act_123")
			require.NotNil(t, limited)
			assert.Equal(t, state.ResetTime, limited.ResetTime)
		})
	}
}

func TestManager_BackoffMonotonicoEResetNoSucesso(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	m := newTestManager(now)

	// Três limites consecutivos devem aumentar estritamente a espera.
	first := m.Classify(PlatformMeta, "act_9", 400, 17, 0, "", nil)
	second := m.Classify(PlatformMeta, "act_9", 400, 17, 0, "", nil)
	third := m.Classify(PlatformMeta, "act_9", 400, 17, 0, "", nil)

	require.NotNil(t, first)
	require.NotNil(t, second)
	require.NotNil(t, third)

	assert.Equal(t, 1.0, first.Multiplier)
	assert.Equal(t, 1.5, second.Multiplier)
	assert.Equal(t, 2.25, third.Multiplier)
	assert.Greater(t, second.RemainingWait(now), first.RemainingWait(now))
	assert.Greater(t, third.RemainingWait(now), second.RemainingWait(now))

	// O multiplicador satura no teto.
	fourth := m.Classify(PlatformMeta, "act_9", 400, 17, 0, "", nil)
	fifth := m.Classify(PlatformMeta, "act_9", 400, 17, 0, "", nil)
	require.NotNil(t, fifth)
	assert.Equal(t, 3.375, fourth.Multiplier)
	assert.Equal(t, 4.0, fifth.Multiplier)

	// Um sucesso volta o multiplicador para o valor base.
	m.MarkSuccess(PlatformMeta, "act_9")

	afterSuccess := m.Classify(PlatformMeta, "act_9", 400, 17, 0, "", nil)
	require.NotNil(t, afterSuccess)
	assert.Equal(t, 1.0, afterSuccess.Multiplier)
	assert.Equal(t, first.RemainingWait(now), afterSuccess.RemainingWait(now))
}

func TestManager_ExpiracaoPreguicosa(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	m := newTestManager(now)

	state := m.Classify(PlatformMeta, "act_7", 429, 0, 0, "", nil)
	require.NotNil(t, state)
	require.NotNil(t, m.IsCurrentlyLimited(PlatformMeta, "act_7"))

	// Avança o relógio para depois do reset: a consulta limpa o estado.
	m.now = func() time.Time { return state.ResetTime.Add(time.Second) }
	assert.Nil(t, m.IsCurrentlyLimited(PlatformMeta, "act_7"))

	// Contas diferentes não compartilham estado.
	m.now = func() time.Time { return now }
	m.Classify(PlatformMeta, "act_a", 429, 0, 0, "", nil)
	assert.Nil(t, m.IsCurrentlyLimited(PlatformMeta, "act_b"))
}

func TestManager_RetryAfterSobrescreveBase(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	m := newTestManager(now)

	headers := http.Header{}
	headers.Set("Retry-After", "600")

	state := m.Classify(PlatformMeta, "act_5", 429, 0, 0, "", headers)
	require.NotNil(t, state)
	assert.Equal(t, 10*time.Minute, state.RemainingWait(now))
}

func TestState_WaitMinutes(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	state := &State{ResetTime: now.Add(90 * time.Second)}
	assert.Equal(t, 2, state.WaitMinutes(now))

	expired := &State{ResetTime: now.Add(-time.Minute)}
	assert.Equal(t, 0, expired.WaitMinutes(now))
}
