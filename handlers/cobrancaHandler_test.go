package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"CRIART_GO/config"
	"CRIART_GO/models"
	"CRIART_GO/pix"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func createCobranca(t *testing.T, store *fakeStore, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cobrancas", strings.NewReader(body))
	CreateCobrancaHandler(store, testMerchant, zap.NewNop())(rec, req)
	return rec
}

func TestCreateCobrancaHandler(t *testing.T) {
	store := newFakeStore()
	rec := createCobranca(t, store, `{"cliente": "Cliente X", "valor": "150.00", "descricao": "Pagamento - Cliente X", "txid": "CRIART12345678"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got models.PixCobranca
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, criartPayload, got.PixCopiaECola)
	assert.Equal(t, pix.QRImageURL(criartPayload), got.QRCodeURL)
	assert.Equal(t, models.OrigemEstatico, got.Origem)
	assert.Equal(t, models.StatusAtiva, got.Status)
	assert.Equal(t, "dsprestes7@gmail.com", got.Chave)

	stored, err := store.GetByID(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, "CRIART12345678", stored.TxID)
}

func TestCreateCobrancaHandler_GeneratesTxID(t *testing.T) {
	store := newFakeStore()
	rec := createCobranca(t, store, `{"cliente": "Cliente Y", "valor": 10}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got models.PixCobranca
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.TxID, pix.MaxTxID)
	assert.True(t, txidPattern.MatchString(got.TxID))
	assert.Contains(t, got.PixCopiaECola, "0525"+got.TxID+"6304")
	require.NoError(t, pix.Verify(got.PixCopiaECola))
}

func TestCreateCobrancaHandler_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"json inválido", `{`, http.StatusBadRequest},
		{"sem cliente", `{"valor": 10}`, http.StatusBadRequest},
		{"valor negativo", `{"cliente": "X", "valor": -1}`, http.StatusBadRequest},
		{"txid com símbolo", `{"cliente": "X", "txid": "ABC-123"}`, http.StatusBadRequest},
		{"txid longo", `{"cliente": "X", "txid": "` + strings.Repeat("A", 26) + `"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, createCobranca(t, newFakeStore(), tt.body).Code)
		})
	}
}

func TestCreateCobrancaHandler_StoreError(t *testing.T) {
	store := newFakeStore()
	store.createErr = errFake
	assert.Equal(t, http.StatusInternalServerError, createCobranca(t, store, `{"cliente": "X", "valor": 1}`).Code)
}

func TestCreateCobrancaHandler_NoMerchantKey(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cobrancas", strings.NewReader(`{"cliente": "X"}`))
	CreateCobrancaHandler(newFakeStore(), config.Merchant{Name: "Criart"}, zap.NewNop())(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListCobrancasHandler(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusCreated, createCobranca(t, store, `{"cliente": "X", "valor": 1}`).Code)
	}
	h := ListCobrancasHandler(store, zap.NewNop())

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/cobrancas?limit=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.PixCobranca
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/cobrancas?limit=500", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/cobrancas?offset=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCobrancaHandler(t *testing.T) {
	store := newFakeStore()
	rec := createCobranca(t, store, `{"cliente": "X", "valor": 1}`)
	var created models.PixCobranca
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	h := GetCobrancaHandler(store, zap.NewNop())

	get := func(id string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/cobrancas/"+id, nil), map[string]string{"id": id})
		h(rec, req)
		return rec
	}

	rec = get(created.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), created.TxID)

	assert.Equal(t, http.StatusNotFound, get(uuid.NewString()).Code)
	assert.Equal(t, http.StatusBadRequest, get("nao-e-uuid").Code)
}

func TestMarcarPagoHandler(t *testing.T) {
	store := newFakeStore()
	require.Equal(t, http.StatusCreated, createCobranca(t, store, `{"cliente": "X", "valor": 1, "txid": "PAGO1"}`).Code)
	h := MarcarPagoHandler(store, zap.NewNop())

	put := func(txid string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := mux.SetURLVars(httptest.NewRequest(http.MethodPut, "/cobrancas/"+txid+"/pago", nil), map[string]string{"txid": txid})
		h(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, put("PAGO1").Code)
	assert.Equal(t, models.StatusConcluida, store.status("PAGO1"))
	assert.Equal(t, http.StatusNotFound, put("OUTRO").Code)
}
