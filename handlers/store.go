package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"CRIART_GO/models"
)

// CobrancaStore é o que os handlers precisam do repositório de cobranças
type CobrancaStore interface {
	Create(ctx context.Context, c *models.PixCobranca) error
	GetByID(ctx context.Context, id string) (*models.PixCobranca, error)
	GetByTxID(ctx context.Context, txid string) (*models.PixCobranca, error)
	List(ctx context.Context, limit, offset int) ([]models.PixCobranca, error)
	UpdateStatus(ctx context.Context, txid, status string, paidAt *time.Time) error
	ListPending(ctx context.Context, origem string) ([]string, error)
}

// UserStore é o que os handlers precisam do repositório de usuários
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// EfiGateway são as chamadas da API PIX da Efí usadas aqui
type EfiGateway interface {
	CreateImmediateCharge(body map[string]interface{}) (string, error)
	DetailCharge(txid string) (string, error)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
