package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// Rule descreve uma condição de rate limit conhecida de uma plataforma.
// O match acontece por código de erro, subcódigo ou trecho da mensagem.
type Rule struct {
	Codes           []int
	Subcodes        []int
	MessageContains []string
	LimitType       LimitType
	Severity        Severity
	BaseWait        time.Duration
}

// PlatformMeta é o identificador de plataforma usado nas chaves de estado.
const PlatformMeta = "meta"

// Regras específicas da Graph API do Meta. Referência dos códigos:
// 4  = application request limit, 17 = user request limit,
// 32 = page request limit, 613 = custom rate limit,
// 80000/80004 = insights throttling por conta.
var metaRules = []Rule{
	{
		Codes:     []int{4},
		LimitType: LimitTypeApp,
		Severity:  SeverityHigh,
		BaseWait:  30 * time.Minute,
	},
	{
		Codes:     []int{17},
		LimitType: LimitTypeUser,
		Severity:  SeverityMedium,
		BaseWait:  15 * time.Minute,
	},
	{
		Codes:     []int{32},
		LimitType: LimitTypeUser,
		Severity:  SeverityMedium,
		BaseWait:  15 * time.Minute,
	},
	{
		Codes:     []int{613},
		LimitType: LimitTypeHourly,
		Severity:  SeverityMedium,
		BaseWait:  20 * time.Minute,
	},
	{
		Codes:     []int{80000, 80004},
		Subcodes:  []int{2446079},
		LimitType: LimitTypeHourly,
		Severity:  SeverityHigh,
		BaseWait:  30 * time.Minute,
	},
}

// Regras genéricas aplicadas a qualquer plataforma.
var genericRules = []Rule{
	{
		MessageContains: []string{"rate limit", "too many requests", "request limit reached"},
		LimitType:       LimitTypeGeneric,
		Severity:        SeverityLow,
		BaseWait:        5 * time.Minute,
	},
}

var rulesByPlatform = map[string][]Rule{
	PlatformMeta: metaRules,
}

func matchRule(platform string, statusCode, errorCode, errorSubcode int, message string) *Rule {
	for i := range rulesByPlatform[platform] {
		rule := &rulesByPlatform[platform][i]
		if rule.matches(errorCode, errorSubcode, message) {
			return rule
		}
	}

	// HTTP 429 sempre conta como limite, mesmo sem corpo de erro.
	if statusCode == http.StatusTooManyRequests {
		return &genericRules[0]
	}

	for i := range genericRules {
		rule := &genericRules[i]
		if rule.matches(errorCode, errorSubcode, message) {
			return rule
		}
	}

	return nil
}

func (r *Rule) matches(errorCode, errorSubcode int, message string) bool {
	for _, code := range r.Codes {
		if code == errorCode {
			return true
		}
	}

	for _, subcode := range r.Subcodes {
		if subcode != 0 && subcode == errorSubcode {
			return true
		}
	}

	if len(r.MessageContains) > 0 && message != "" {
		lowered := strings.ToLower(message)
		for _, fragment := range r.MessageContains {
			if strings.Contains(lowered, fragment) {
				return true
			}
		}
	}

	return false
}
