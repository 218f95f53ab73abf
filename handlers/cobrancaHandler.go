package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"CRIART_GO/config"
	"CRIART_GO/database"
	"CRIART_GO/models"
	"CRIART_GO/pix"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var txidPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,25}$`)

// CobrancaRequest é o corpo de criação de uma cobrança estática
type CobrancaRequest struct {
	Cliente   string          `json:"cliente"`
	Valor     decimal.Decimal `json:"valor"`
	Descricao string          `json:"descricao"`
	TxID      string          `json:"txid"`
}

// novoTxID gera um txid alfanumérico de 25 caracteres
func novoTxID() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "CRIART" + id[:pix.MaxTxID-len("CRIART")]
}

// CreateCobrancaHandler gera o payload PIX de uma cobrança e grava o registro
func CreateCobrancaHandler(store CobrancaStore, merchant config.Merchant, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CobrancaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Erro ao decodificar JSON: "+err.Error(), http.StatusBadRequest)
			return
		}

		// Validar os campos obrigatórios
		if strings.TrimSpace(req.Cliente) == "" {
			http.Error(w, "O campo cliente é obrigatório", http.StatusBadRequest)
			return
		}
		if req.Valor.IsNegative() {
			http.Error(w, "O valor não pode ser negativo", http.StatusBadRequest)
			return
		}
		if req.TxID == "" {
			req.TxID = novoTxID()
		} else if !txidPattern.MatchString(req.TxID) {
			http.Error(w, "txid deve ter até 25 letras ou números", http.StatusBadRequest)
			return
		}
		if merchant.PixKey == "" {
			http.Error(w, "Chave PIX do recebedor não configurada", http.StatusInternalServerError)
			return
		}

		payload := pix.BuildPayload(pix.PaymentRequest{
			PixKey:       merchant.PixKey,
			MerchantName: merchant.Name,
			MerchantCity: merchant.City,
			Amount:       req.Valor,
			Description:  req.Descricao,
			TxID:         req.TxID,
		})

		now := time.Now()
		cobranca := models.PixCobranca{
			ID:            uuid.NewString(),
			Cliente:       req.Cliente,
			TxID:          req.TxID,
			Valor:         req.Valor,
			Descricao:     req.Descricao,
			Chave:         merchant.PixKey,
			PixCopiaECola: payload,
			QRCodeURL:     pix.QRImageURL(payload),
			Origem:        models.OrigemEstatico,
			Status:        models.StatusAtiva,
			DateCreate:    now,
			DateUpdate:    now,
		}
		if err := store.Create(r.Context(), &cobranca); err != nil {
			log.Error("erro ao salvar cobrança", zap.String("txid", req.TxID), zap.Error(err))
			http.Error(w, "Erro ao salvar a cobrança", http.StatusInternalServerError)
			return
		}

		log.Info("cobrança PIX criada", zap.String("id", cobranca.ID), zap.String("txid", cobranca.TxID))
		writeJSON(w, http.StatusCreated, cobranca)
	}
}

// ListCobrancasHandler lista as cobranças com limit/offset
func ListCobrancasHandler(store CobrancaStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", 50)
		if err != nil || limit <= 0 || limit > 200 {
			http.Error(w, "limit inválido", http.StatusBadRequest)
			return
		}
		offset, err := queryInt(r, "offset", 0)
		if err != nil || offset < 0 {
			http.Error(w, "offset inválido", http.StatusBadRequest)
			return
		}

		cobrancas, err := store.List(r.Context(), limit, offset)
		if err != nil {
			log.Error("erro ao listar cobranças", zap.Error(err))
			http.Error(w, "Erro ao listar cobranças", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cobrancas)
	}
}

// GetCobrancaHandler devolve uma cobrança pelo id
func GetCobrancaHandler(store CobrancaStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if _, err := uuid.Parse(id); err != nil {
			http.Error(w, "id inválido", http.StatusBadRequest)
			return
		}

		cobranca, err := store.GetByID(r.Context(), id)
		if errors.Is(err, database.ErrNotFound) {
			http.Error(w, "Cobrança não encontrada", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("erro ao buscar cobrança", zap.String("id", id), zap.Error(err))
			http.Error(w, "Erro ao buscar cobrança", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cobranca)
	}
}

// MarcarPagoHandler baixa manualmente uma cobrança estática
func MarcarPagoHandler(store CobrancaStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txid := mux.Vars(r)["txid"]
		if txid == "" {
			http.Error(w, "txid é obrigatório", http.StatusBadRequest)
			return
		}

		now := time.Now()
		err := store.UpdateStatus(r.Context(), txid, models.StatusConcluida, &now)
		if errors.Is(err, database.ErrNotFound) {
			http.Error(w, "Cobrança não encontrada", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("erro ao baixar cobrança", zap.String("txid", txid), zap.Error(err))
			http.Error(w, "Erro ao atualizar cobrança", http.StatusInternalServerError)
			return
		}

		log.Info("cobrança baixada manualmente", zap.String("txid", txid))
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Pagamento registrado com sucesso",
			"txid":    txid,
		})
	}
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
