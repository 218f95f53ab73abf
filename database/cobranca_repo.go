package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"CRIART_GO/models"
)

const cobrancaColumns = `id, cliente, txid, valor, descricao, chave, pix_copia_e_cola,
	qrcode_url, origem, status, date_create, date_update, data_pago`

// CobrancaRepository grava e consulta cobranças PIX em core.pix_cobranca
type CobrancaRepository struct {
	db *sql.DB
}

func NewCobrancaRepository(db *sql.DB) *CobrancaRepository {
	return &CobrancaRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCobranca(row rowScanner) (*models.PixCobranca, error) {
	var c models.PixCobranca
	var descricao, qrcodeURL sql.NullString
	err := row.Scan(
		&c.ID, &c.Cliente, &c.TxID, &c.Valor, &descricao, &c.Chave, &c.PixCopiaECola,
		&qrcodeURL, &c.Origem, &c.Status, &c.DateCreate, &c.DateUpdate, &c.DataPago,
	)
	if err != nil {
		return nil, err
	}
	c.Descricao = descricao.String
	c.QRCodeURL = qrcodeURL.String
	return &c, nil
}

// Create insere uma nova cobrança
func (r *CobrancaRepository) Create(ctx context.Context, c *models.PixCobranca) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO core.pix_cobranca (`+cobrancaColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		c.ID, c.Cliente, c.TxID, c.Valor, c.Descricao, c.Chave, c.PixCopiaECola,
		c.QRCodeURL, c.Origem, c.Status, c.DateCreate, c.DateUpdate, c.DataPago,
	)
	if err != nil {
		return fmt.Errorf("erro ao salvar pix_cobranca: %w", err)
	}
	return nil
}

func (r *CobrancaRepository) getOne(ctx context.Context, where string, arg any) (*models.PixCobranca, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cobrancaColumns+` FROM core.pix_cobranca WHERE `+where, arg)
	c, err := scanCobranca(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pix_cobranca: %w", err)
	}
	return c, nil
}

// GetByID busca uma cobrança pelo id
func (r *CobrancaRepository) GetByID(ctx context.Context, id string) (*models.PixCobranca, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByTxID busca uma cobrança pelo txid
func (r *CobrancaRepository) GetByTxID(ctx context.Context, txid string) (*models.PixCobranca, error) {
	return r.getOne(ctx, "txid = $1", txid)
}

// List devolve as cobranças mais recentes primeiro
func (r *CobrancaRepository) List(ctx context.Context, limit, offset int) ([]models.PixCobranca, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+cobrancaColumns+`
		FROM core.pix_cobranca
		ORDER BY date_create DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pix_cobranca: %w", err)
	}
	defer rows.Close()

	cobrancas := []models.PixCobranca{}
	for rows.Next() {
		c, err := scanCobranca(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler pix_cobranca: %w", err)
		}
		cobrancas = append(cobrancas, *c)
	}
	return cobrancas, rows.Err()
}

// UpdateStatus altera o status de uma cobrança; paidAt só é gravado quando não for nil
func (r *CobrancaRepository) UpdateStatus(ctx context.Context, txid, status string, paidAt *time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE core.pix_cobranca
		SET status = $1, data_pago = COALESCE($2, data_pago), date_update = now()
		WHERE txid = $3
	`, status, paidAt, txid)
	if err != nil {
		return fmt.Errorf("erro ao atualizar pix_cobranca: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao atualizar pix_cobranca: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPending devolve os txids ainda ativos de uma origem
func (r *CobrancaRepository) ListPending(ctx context.Context, origem string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT txid
		FROM core.pix_cobranca
		WHERE status = 'ATIVA' AND origem = $1 AND data_pago IS NULL
	`, origem)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar cobranças ativas: %w", err)
	}
	defer rows.Close()

	var txids []string
	for rows.Next() {
		var txid string
		if err := rows.Scan(&txid); err != nil {
			return nil, fmt.Errorf("erro ao ler txid: %w", err)
		}
		txids = append(txids, txid)
	}
	return txids, rows.Err()
}
