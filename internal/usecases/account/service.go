package account

import (
	"github.com/sirupsen/logrus"

	"github.com/adsight/ads-sync-engine/infrastructure/repository"
	"github.com/adsight/ads-sync-engine/internal/config"
	"github.com/adsight/ads-sync-engine/internal/domain"
	"github.com/adsight/ads-sync-engine/pkg/apiErrors"
	"github.com/adsight/ads-sync-engine/pkg/crypto"
	"github.com/adsight/ads-sync-engine/pkg/utils"
)

const defaultPlatform = "meta"

type AccountService interface {
	RegisterAccount(request *domain.RegisterAdAccountRequest) (*domain.AdAccountResponse, error)
	ListAdAccounts(availableStatus []domain.AdAccountStatus) ([]*domain.AdAccountResponse, error)
	UpdateAccount(request *domain.UpdateAdAccountRequest) (*domain.AdAccountResponse, error)
}

type Service struct {
	accountRepository repository.AccountRepository
	cfg               *config.Config
}

func NewService(
	accountRepository repository.AccountRepository,
	cfg *config.Config,
) AccountService {
	return &Service{
		accountRepository: accountRepository,
		cfg:               cfg,
	}
}

func (s *Service) ListAdAccounts(availableStatus []domain.AdAccountStatus) ([]*domain.AdAccountResponse, error) {
	accounts, err := s.accountRepository.ListAccounts(availableStatus)
	if err != nil {
		return nil, NewAccountError(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, "Falha ao listar contas no banco de dados")
	}

	// Transforma os accounts para o formato de resposta da API
	adAccountsResponse := make([]*domain.AdAccountResponse, 0, len(accounts))
	for _, account := range accounts {
		adAccountsResponse = append(adAccountsResponse, toResponse(account))
	}

	return adAccountsResponse, nil
}

// RegisterAccount cadastra uma nova conta de anúncios vinculada a um cliente.
// O token de acesso é selado antes de ser persistido e nunca fica em claro
// no banco.
func (s *Service) RegisterAccount(request *domain.RegisterAdAccountRequest) (*domain.AdAccountResponse, error) {
	if request.ExternalID == "" {
		return nil, NewAccountError(ErrExternalIDReq, apiErrors.ErrMissingRequiredData, "ID externo da conta é obrigatório")
	}

	if request.Token == "" {
		return nil, NewAccountError(ErrTokenRequired, apiErrors.ErrMissingRequiredData, "Token de acesso é obrigatório")
	}

	existing, err := s.accountRepository.GetAccountByExternalID(request.ExternalID)
	if err != nil {
		logrus.Error("Error getting account by external id on the repository:", err)
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar conta no banco de dados")
	}

	if existing != nil {
		return nil, NewAccountErrorWithID(ErrAccountExists, apiErrors.ErrAccountAlreadyExists, existing.ID, "Já existe conta cadastrada para este ID externo")
	}

	accountID, err := utils.GenerateID()
	if err != nil {
		return nil, NewAccountError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador único para conta")
	}

	sealedToken, err := crypto.Seal(request.Token, s.cfg.SecretKey)
	if err != nil {
		logrus.Error("Error sealing account token:", err)
		return nil, NewAccountError(ErrSealToken, apiErrors.ErrInternalServer, "Falha ao selar token de acesso")
	}

	platform := request.Platform
	if platform == "" {
		platform = defaultPlatform
	}

	newAccount := &domain.AdAccount{
		ID:          accountID,
		ClientID:    request.ClientID,
		Platform:    platform,
		ExternalID:  request.ExternalID,
		Name:        request.Name,
		SealedToken: sealedToken,
		Status:      domain.AdAccountStatusActive,
	}

	if err := s.accountRepository.CreateAccount(newAccount); err != nil {
		logrus.Error("Error creating account on the repository:", err)
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar conta no banco de dados")
	}

	logrus.WithFields(logrus.Fields{
		"account_id":  accountID,
		"external_id": request.ExternalID,
		"platform":    platform,
	}).Info("Conta de anúncios cadastrada")

	return toResponse(newAccount), nil
}

func (s *Service) UpdateAccount(request *domain.UpdateAdAccountRequest) (*domain.AdAccountResponse, error) {
	if request.ID == "" {
		return nil, NewAccountError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório")
	}

	// Busca a conta para verificar se existe
	account, err := s.accountRepository.GetAccountByID(request.ID)
	if err != nil {
		logrus.Error("Error getting account by id on the repository:", err)
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar conta no banco de dados")
	}

	if account == nil {
		return nil, NewAccountErrorWithID(ErrAccountNotFound, apiErrors.ErrAccountNotFound, request.ID, "Conta não encontrada")
	}

	var sealedToken *string
	if request.Token != nil && *request.Token != "" {
		sealed, err := crypto.Seal(*request.Token, s.cfg.SecretKey)
		if err != nil {
			logrus.Error("Error sealing account token:", err)
			return nil, NewAccountErrorWithID(ErrSealToken, apiErrors.ErrInternalServer, request.ID, "Falha ao selar token de acesso")
		}
		sealedToken = &sealed
	}

	// Atualiza a conta no repositório
	if err := s.accountRepository.UpdateAccount(request, sealedToken); err != nil {
		logrus.Error("Error updating account on the repository:", err)
		return nil, NewAccountErrorWithID(ErrUpdateAccount, apiErrors.ErrDatabaseOperation, request.ID, "Falha ao atualizar conta no banco de dados")
	}

	if request.Name != nil {
		account.Name = *request.Name
	}
	if request.Status != nil {
		account.Status = *request.Status
	}
	if sealedToken != nil {
		account.SealedToken = *sealedToken
	}

	return toResponse(account), nil
}

func toResponse(account *domain.AdAccount) *domain.AdAccountResponse {
	return &domain.AdAccountResponse{
		ID:             account.ID,
		ClientID:       account.ClientID,
		Platform:       account.Platform,
		ExternalID:     account.ExternalID,
		Name:           account.Name,
		Status:         account.Status,
		HasToken:       account.SealedToken != "",
		LastSyncAt:     account.LastSyncAt,
		LastSyncStatus: account.LastSyncStatus,
		LastSyncError:  account.LastSyncError,
	}
}
