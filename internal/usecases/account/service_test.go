package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/adsight/ads-sync-engine/infrastructure/repository/mocks"
	"github.com/adsight/ads-sync-engine/internal/config"
	"github.com/adsight/ads-sync-engine/internal/domain"
	"github.com/adsight/ads-sync-engine/pkg/crypto"
)

const testSecretKey = "chave-de-teste"

func TestService_RegisterSelaOTokenAntesDePersistir(t *testing.T) {
	ctrl := gomock.NewController(t)
	accountRepo := mocks.NewMockAccountRepository(ctrl)

	accountRepo.EXPECT().GetAccountByExternalID("111").Return(nil, nil)
	accountRepo.EXPECT().CreateAccount(gomock.Any()).DoAndReturn(func(acc *domain.AdAccount) error {
		assert.NotEmpty(t, acc.ID)
		assert.Equal(t, domain.AdAccountStatusActive, acc.Status)
		assert.Equal(t, "meta", acc.Platform)

		// O token nunca chega em claro ao repositório.
		assert.NotEqual(t, "token-abc", acc.SealedToken)

		opened, err := crypto.Open(acc.SealedToken, testSecretKey)
		require.NoError(t, err)
		assert.Equal(t, "token-abc", opened)
		return nil
	})

	svc := NewService(accountRepo, &config.Config{SecretKey: testSecretKey})

	response, err := svc.RegisterAccount(&domain.RegisterAdAccountRequest{
		ClientID:   "cli-1",
		ExternalID: "111",
		Name:       "Loja A",
		Token:      "token-abc",
	})
	require.NoError(t, err)
	assert.True(t, response.HasToken)
	assert.Equal(t, "111", response.ExternalID)
}

func TestService_RegisterRejeitaExternalIDDuplicado(t *testing.T) {
	ctrl := gomock.NewController(t)
	accountRepo := mocks.NewMockAccountRepository(ctrl)

	accountRepo.EXPECT().GetAccountByExternalID("111").Return(&domain.AdAccount{
		ID:         "acc-1",
		ExternalID: "111",
	}, nil)

	svc := NewService(accountRepo, &config.Config{SecretKey: testSecretKey})

	_, err := svc.RegisterAccount(&domain.RegisterAdAccountRequest{
		ExternalID: "111",
		Token:      "token-abc",
	})
	require.ErrorIs(t, err, ErrAccountExists)
}

func TestService_RegisterExigeToken(t *testing.T) {
	svc := NewService(nil, &config.Config{SecretKey: testSecretKey})

	_, err := svc.RegisterAccount(&domain.RegisterAdAccountRequest{
		ExternalID: "111",
	})
	require.ErrorIs(t, err, ErrTokenRequired)
}
