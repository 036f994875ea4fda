package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/adsight/ads-sync-engine/internal/domain"
	"github.com/adsight/ads-sync-engine/internal/usecases/account"
	"github.com/adsight/ads-sync-engine/internal/usecases/syncing"
	"github.com/adsight/ads-sync-engine/pkg/apiErrors"
	"github.com/adsight/ads-sync-engine/pkg/log"
)

// AdAccountList lista as contas de anúncio cadastradas. O filtro de status
// chega pela query string e, ausente, devolve todas.
func AdAccountList(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		availableStatus := make([]domain.AdAccountStatus, 0, 2)
		if status := r.URL.Query().Get("status"); status != "" {
			availableStatus = append(availableStatus, domain.AdAccountStatus(status))
		}

		accounts, err := service.ListAdAccounts(availableStatus)
		if err != nil {
			logger.WithError(err).Error("accounts: failed to list ad accounts")
			writeAccountError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(accounts); err != nil {
			logger.WithError(err).Error("accounts: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// RegisterAdAccount cadastra uma conta nova com o token de acesso em claro no
// corpo. O token é selado pelo caso de uso antes de tocar o banco.
func RegisterAdAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var request domain.RegisterAdAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.WithError(err).Warn("accounts: invalid register payload")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		response, err := service.RegisterAccount(&request)
		if err != nil {
			logger.WithError(err).WithField("external_id", request.ExternalID).
				Error("accounts: failed to register ad account")
			writeAccountError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"account_id":  response.ID,
			"external_id": response.ExternalID,
		}).Info("accounts: ad account registered")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("accounts: failed to encode response")
		}
	})
}

func UpdateAdAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var request domain.UpdateAdAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.WithError(err).Warn("accounts: invalid update payload")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}
		request.ID = id

		response, err := service.UpdateAccount(&request)
		if err != nil {
			logger.WithError(err).WithField("account_id", id).
				Error("accounts: failed to update ad account")
			writeAccountError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("accounts: failed to encode response")
		}
	})
}

// SyncAdAccount dispara a reconciliação completa de uma conta e responde com
// o resultado da execução. Uma segunda chamada durante a execução recebe 409.
func SyncAdAccount(engine syncing.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger.WithField("account_id", id).Info("accounts: manual sync requested")

		result, err := engine.SyncAccount(r.Context(), id)
		if err != nil {
			if errors.Is(err, syncing.ErrSyncInProgress) {
				apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Sincronização já em andamento para esta conta", nil)
				return
			}

			if errors.Is(err, syncing.ErrAccountNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrAccountNotFound, "Conta não encontrada", nil)
				return
			}

			logger.WithError(err).WithField("account_id", id).Error("accounts: sync failed")
			apiErrors.WriteError(w, apiErrors.ErrSyncFailed, "Falha ao sincronizar a conta", result)
			return
		}

		logger.WithFields(log.Fields{
			"account_id":   id,
			"run_id":       result.RunID,
			"ok":           result.OK,
			"ads_inserted": result.AdsInserted,
			"ads_updated":  result.AdsUpdated,
			"ads_deleted":  result.AdsDeleted,
		}).Info("accounts: manual sync finished")

		w.Header().Set("Content-Type", "application/json")
		if result.RateLimitDetected && !result.OK {
			w.WriteHeader(http.StatusTooManyRequests)
		}
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("accounts: failed to encode response")
		}
	})
}

// writeAccountError traduz um AccountError para a resposta padronizada,
// preservando o código de API definido pelo caso de uso.
func writeAccountError(w http.ResponseWriter, err error) {
	var accountErr *account.AccountError
	if errors.As(err, &accountErr) {
		apiErrors.WriteError(w, accountErr.Code, accountErr.Details, nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
}
