package domain

import "time"

// Campaign é o espelho local de uma campanha ativa na plataforma externa.
type Campaign struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"external_id"`
	AccountID  string    `json:"account_id"`
	ClientID   string    `json:"client_id"`
	Name       string    `json:"name"`
	Objective  string    `json:"objective"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
