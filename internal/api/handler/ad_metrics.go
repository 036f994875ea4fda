package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/adsight/ads-sync-engine/internal/usecases/insighting"
	"github.com/adsight/ads-sync-engine/pkg/apiErrors"
	"github.com/adsight/ads-sync-engine/pkg/log"
	"github.com/adsight/ads-sync-engine/pkg/utils"
)

// GetAdMetrics resolve as métricas dos anúncios da conta a partir do cache em
// camadas. Datas explícitas valem ao pé da letra; sem elas, a janela de
// period_days dias terminando ontem é usada.
func GetAdMetrics(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		dateStart, dateEnd, periodDays, ok := parseMetricsParams(w, r, logger)
		if !ok {
			return
		}

		results, err := service.LookupAccountAdMetrics(id, dateStart, dateEnd, periodDays)
		if err != nil {
			if errors.Is(err, insighting.ErrAccountNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrAccountNotFound, "Conta não encontrada", nil)
				return
			}

			logger.WithError(err).WithField("account_id", id).
				Error("metrics: failed to lookup ad metrics")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Falha ao consultar métricas", nil)
			return
		}

		logger.WithFields(log.Fields{
			"account_id": id,
			"ads":        len(results),
		}).Info("metrics: lookup finished")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(results); err != nil {
			logger.WithError(err).Error("metrics: failed to encode response")
		}
	})
}

// RefreshAdMetrics força a busca das métricas direto na plataforma para o
// período informado, grava no cache e devolve o resultado atualizado.
func RefreshAdMetrics(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		dateStart, dateEnd, periodDays, ok := parseMetricsParams(w, r, logger)
		if !ok {
			return
		}

		// O refresh exige um período concreto: sem datas, deriva a janela
		// de period_days dias terminando ontem.
		var start, end time.Time
		if dateStart != nil && dateEnd != nil {
			start, end = *dateStart, *dateEnd
		} else {
			if periodDays <= 0 {
				periodDays = 7
			}
			start, end = utils.WindowEndingYesterday(time.Now(), periodDays)
		}

		results, err := service.RefreshAccountAdMetrics(r.Context(), id, start, end)
		if err != nil {
			switch {
			case errors.Is(err, insighting.ErrAccountNotFound):
				apiErrors.WriteError(w, apiErrors.ErrAccountNotFound, "Conta não encontrada", nil)
			case errors.Is(err, insighting.ErrAccountWithoutToken):
				apiErrors.WriteError(w, apiErrors.ErrAccountWithoutToken, "Conta sem token de acesso cadastrado", nil)
			default:
				logger.WithError(err).WithField("account_id", id).
					Error("metrics: failed to refresh ad metrics")
				apiErrors.WriteError(w, apiErrors.ErrExternalService, "Falha ao atualizar métricas na plataforma", nil)
			}
			return
		}

		logger.WithFields(log.Fields{
			"account_id": id,
			"ads":        len(results),
			"date_start": start.Format(time.DateOnly),
			"date_end":   end.Format(time.DateOnly),
		}).Info("metrics: refresh finished")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(results); err != nil {
			logger.WithError(err).Error("metrics: failed to encode response")
		}
	})
}

// parseMetricsParams interpreta start_date, end_date e period_days da query
// string. Datas são opcionais, mas precisam vir em par.
func parseMetricsParams(w http.ResponseWriter, r *http.Request, logger log.Logger) (*time.Time, *time.Time, int, bool) {
	var dateStart, dateEnd *time.Time

	rawStart := r.URL.Query().Get("start_date")
	rawEnd := r.URL.Query().Get("end_date")

	if (rawStart == "") != (rawEnd == "") {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "start_date e end_date devem ser informados juntos", nil)
		return nil, nil, 0, false
	}

	if rawStart != "" {
		start, err := utils.ParseDate(rawStart)
		if err != nil {
			logger.WithField("start_date", rawStart).Warn("metrics: invalid start_date parameter")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date inválido", nil)
			return nil, nil, 0, false
		}

		end, err := utils.ParseDate(rawEnd)
		if err != nil {
			logger.WithField("end_date", rawEnd).Warn("metrics: invalid end_date parameter")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date inválido", nil)
			return nil, nil, 0, false
		}

		if end.Before(*start) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "end_date anterior a start_date", nil)
			return nil, nil, 0, false
		}

		dateStart, dateEnd = start, end
	}

	periodDays := 0
	if raw := r.URL.Query().Get("period_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "period_days inválido", nil)
			return nil, nil, 0, false
		}
		periodDays = parsed
	}

	return dateStart, dateEnd, periodDays, true
}
