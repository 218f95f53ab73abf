package database

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"CRIART_GO/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL não definida")
	}
	db, err := Connect(url)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db), "migrações devem ser idempotentes")
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCobrancaRepository(t *testing.T) {
	db := testDB(t)
	repo := NewCobrancaRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	c := models.PixCobranca{
		ID:            uuid.NewString(),
		Cliente:       "Cliente X",
		TxID:          "TESTE" + uuid.NewString()[:8],
		Valor:         decimal.RequireFromString("150.00"),
		Chave:         "dsprestes7@gmail.com",
		PixCopiaECola: "000201",
		Origem:        models.OrigemEfi,
		Status:        models.StatusAtiva,
		DateCreate:    now,
		DateUpdate:    now,
	}
	require.NoError(t, repo.Create(ctx, &c))
	t.Cleanup(func() { db.Exec(`DELETE FROM core.pix_cobranca WHERE id = $1`, c.ID) })

	got, err := repo.GetByTxID(ctx, c.TxID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.True(t, c.Valor.Equal(got.Valor))
	assert.Nil(t, got.DataPago)

	pending, err := repo.ListPending(ctx, models.OrigemEfi)
	require.NoError(t, err)
	assert.Contains(t, pending, c.TxID)

	paid := time.Now()
	require.NoError(t, repo.UpdateStatus(ctx, c.TxID, models.StatusConcluida, &paid))
	got, err = repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConcluida, got.Status)
	assert.NotNil(t, got.DataPago)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "NAOEXISTE", models.StatusVencido, nil), ErrNotFound)
	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := models.User{
		ID:         uuid.NewString(),
		Name:       "Ana",
		Email:      uuid.NewString() + "@criart.com.br",
		Password:   "hash",
		Active:     true,
		DateCreate: time.Now(),
		DateUpdate: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, &u))
	t.Cleanup(func() { db.Exec(`DELETE FROM core.user WHERE id = $1`, u.ID) })

	got, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "ninguem@criart.com.br")
	assert.ErrorIs(t, err, ErrNotFound)
}
