package database

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // Driver PostgreSQL
)

// ErrNotFound indica que o registro procurado não existe
var ErrNotFound = errors.New("registro não encontrado")

// Connect cria uma conexão com o banco de dados PostgreSQL
func Connect(dbURL string) (*sql.DB, error) {
	// Abre a conexão com o banco
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("não foi possível conectar ao banco de dados: %w", err)
	}

	// Testa a conexão
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao testar a conexão com o banco: %w", err)
	}

	return db, nil
}
