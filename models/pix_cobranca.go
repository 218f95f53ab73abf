package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origem da cobrança
const (
	OrigemEstatico = "estatico" // payload gerado localmente
	OrigemEfi      = "efi"      // cobrança imediata criada na Efí
)

// Status da cobrança, os mesmos nomes usados pela API PIX
const (
	StatusAtiva     = "ATIVA"
	StatusConcluida = "CONCLUIDA"
	StatusVencido   = "VENCIDO"
)

// PixCobranca é uma cobrança PIX emitida para um cliente
type PixCobranca struct {
	ID            string          `json:"id" db:"id"`
	Cliente       string          `json:"cliente" db:"cliente"`
	TxID          string          `json:"txid" db:"txid"`
	Valor         decimal.Decimal `json:"valor" db:"valor"`
	Descricao     string          `json:"descricao" db:"descricao"`
	Chave         string          `json:"chave" db:"chave"`
	PixCopiaECola string          `json:"pix_copia_e_cola" db:"pix_copia_e_cola"`
	QRCodeURL     string          `json:"qrcode_url" db:"qrcode_url"`
	Origem        string          `json:"origem" db:"origem"`
	Status        string          `json:"status" db:"status"`
	DateCreate    time.Time       `json:"date_create" db:"date_create"`
	DateUpdate    time.Time       `json:"date_update" db:"date_update"`
	DataPago      *time.Time      `json:"data_pago,omitempty" db:"data_pago"`
}
