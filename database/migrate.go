package database

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE SCHEMA IF NOT EXISTS core;`,

	// Tabela user
	`CREATE TABLE IF NOT EXISTS core.user (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		active BOOLEAN DEFAULT true,
		date_create TIMESTAMP DEFAULT now(),
		date_update TIMESTAMP DEFAULT now()
	);`,

	// Tabela pix_cobranca
	`CREATE TABLE IF NOT EXISTS core.pix_cobranca (
		id UUID PRIMARY KEY,
		cliente VARCHAR(255) NOT NULL,
		txid VARCHAR(35) UNIQUE NOT NULL,
		valor NUMERIC(12, 2) NOT NULL DEFAULT 0,
		descricao VARCHAR(255),
		chave VARCHAR(77) NOT NULL,
		pix_copia_e_cola TEXT NOT NULL,
		qrcode_url TEXT,
		origem VARCHAR(20) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'ATIVA',
		date_create TIMESTAMP DEFAULT now(),
		date_update TIMESTAMP DEFAULT now(),
		data_pago TIMESTAMP
	);`,

	`CREATE INDEX IF NOT EXISTS idx_pix_cobranca_status ON core.pix_cobranca (status, origem);`,
}

// RunMigrations cria o schema e as tabelas que ainda não existem
func RunMigrations(db *sql.DB) error {
	for _, query := range migrations {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("erro ao executar migração: %w", err)
		}
	}
	return nil
}
