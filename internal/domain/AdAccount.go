package domain

import (
	"time"
)

type AdAccountStatus string

const (
	AdAccountStatusActive   AdAccountStatus = "ACTIVE"
	AdAccountStatusInactive AdAccountStatus = "INACTIVE"
)

type SyncStatus string

const (
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusError   SyncStatus = "error"
)

// AdAccount representa o vínculo entre um cliente e uma conta de anúncios
// da plataforma externa. O token de acesso é armazenado selado (secretbox)
// e só é aberto no momento de uma sincronização.
type AdAccount struct {
	ID             string          `json:"id"`
	ClientID       string          `json:"client_id"`
	Platform       string          `json:"platform"`
	ExternalID     string          `json:"external_id"`
	Name           string          `json:"name"`
	SealedToken    string          `json:"-"`
	Status         AdAccountStatus `json:"status"`
	LastSyncAt     *time.Time      `json:"last_sync_at,omitempty"`
	LastSyncStatus *SyncStatus     `json:"last_sync_status,omitempty"`
	LastSyncError  *string         `json:"last_sync_error,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// RegisterAdAccountRequest representa o payload de cadastro de uma conta.
// O token chega em claro e é selado antes de tocar o banco.
type RegisterAdAccountRequest struct {
	ClientID   string `json:"client_id"`
	Platform   string `json:"platform"`
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Token      string `json:"token"`
}

type UpdateAdAccountRequest struct {
	ID     string           `json:"-"`
	Name   *string          `json:"name,omitempty"`
	Token  *string          `json:"token,omitempty"`
	Status *AdAccountStatus `json:"status,omitempty"`
}

// AdAccountResponse é o formato de conta exposto pela API. O token selado
// nunca sai daqui, apenas a indicação de que existe.
type AdAccountResponse struct {
	ID             string          `json:"id"`
	ClientID       string          `json:"client_id"`
	Platform       string          `json:"platform"`
	ExternalID     string          `json:"external_id"`
	Name           string          `json:"name"`
	Status         AdAccountStatus `json:"status"`
	HasToken       bool            `json:"has_token"`
	LastSyncAt     *time.Time      `json:"last_sync_at,omitempty"`
	LastSyncStatus *SyncStatus     `json:"last_sync_status,omitempty"`
	LastSyncError  *string         `json:"last_sync_error,omitempty"`
}
