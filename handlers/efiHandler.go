package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"CRIART_GO/config"
	"CRIART_GO/models"
	"CRIART_GO/pix"

	efipix "github.com/efipay/sdk-go-apis-efi/src/efipay/pix"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NewEfiGateway cria o client do SDK da Efí com as credenciais do ambiente
func NewEfiGateway() EfiGateway {
	return efipix.NewEfiPay(config.GetCredentials())
}

// EfiCobrancaRequest é o corpo da criação de uma cobrança imediata na Efí
type EfiCobrancaRequest struct {
	Cliente   string          `json:"cliente"`
	Valor     decimal.Decimal `json:"valor"`
	CPF       string          `json:"cpf"`
	Nome      string          `json:"nome"`
	Descricao string          `json:"descricao"`
}

// efiCobResponse são os campos usados da resposta do POST /v2/cob
type efiCobResponse struct {
	TxID          string `json:"txid"`
	Status        string `json:"status"`
	PixCopiaECola string `json:"pixCopiaECola"`
	Loc           struct {
		Location string `json:"location"`
	} `json:"loc"`
}

// CreateEfiCobrancaHandler cria uma cobrança PIX imediata na Efí e começa a acompanhar o pagamento
func CreateEfiCobrancaHandler(store CobrancaStore, efi EfiGateway, monitor *StatusMonitor, merchant config.Merchant, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EfiCobrancaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Erro ao decodificar JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Cliente) == "" || !req.Valor.IsPositive() {
			http.Error(w, "Campos cliente e valor são obrigatórios", http.StatusBadRequest)
			return
		}

		body := map[string]interface{}{
			"calendario": map[string]interface{}{"expiracao": 3600},
			"valor":      map[string]interface{}{"original": req.Valor.StringFixed(2)},
			"chave":      merchant.PixKey,
		}
		if req.CPF != "" && req.Nome != "" {
			body["devedor"] = map[string]interface{}{
				"cpf":  req.CPF,
				"nome": req.Nome,
			}
		}
		if req.Descricao != "" {
			body["solicitacaoPagador"] = req.Descricao
		}

		resStr, err := efi.CreateImmediateCharge(body)
		if err != nil {
			log.Error("erro ao criar cobrança na Efí", zap.Error(err))
			http.Error(w, "Erro ao criar cobrança PIX", http.StatusBadGateway)
			return
		}

		var res efiCobResponse
		if err := json.Unmarshal([]byte(resStr), &res); err != nil || res.TxID == "" {
			log.Error("resposta inválida da Efí", zap.String("resposta", resStr), zap.Error(err))
			http.Error(w, "Resposta inválida da API (txid ausente)", http.StatusBadGateway)
			return
		}
		if err := pix.Verify(res.PixCopiaECola); err != nil {
			log.Warn("copia e cola da Efí não passou na verificação", zap.String("txid", res.TxID), zap.Error(err))
		}

		now := time.Now()
		cobranca := models.PixCobranca{
			ID:            uuid.NewString(),
			Cliente:       req.Cliente,
			TxID:          res.TxID,
			Valor:         req.Valor,
			Descricao:     req.Descricao,
			Chave:         merchant.PixKey,
			PixCopiaECola: res.PixCopiaECola,
			Origem:        models.OrigemEfi,
			Status:        models.StatusAtiva,
			DateCreate:    now,
			DateUpdate:    now,
		}
		if res.PixCopiaECola != "" {
			cobranca.QRCodeURL = pix.QRImageURL(res.PixCopiaECola)
		}
		if err := store.Create(r.Context(), &cobranca); err != nil {
			log.Error("erro ao salvar cobrança da Efí", zap.String("txid", res.TxID), zap.Error(err))
			http.Error(w, "Erro ao salvar a cobrança", http.StatusInternalServerError)
			return
		}

		// Acompanha o pagamento em segundo plano, sem prender a requisição
		go monitor.Watch(context.Background(), res.TxID)

		writeJSON(w, http.StatusCreated, cobranca)
	}
}

// EfiStatusHandler devolve a resposta original da Efí para o txid
func EfiStatusHandler(efi EfiGateway, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txid := mux.Vars(r)["txid"]
		if txid == "" {
			http.Error(w, "txid é obrigatório", http.StatusBadRequest)
			return
		}

		res, err := efi.DetailCharge(txid)
		if err != nil {
			log.Warn("erro ao consultar status na Efí", zap.String("txid", txid), zap.Error(err))
			http.Error(w, fmt.Sprintf("Erro ao consultar status do PIX: %v", err), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(res))
	}
}

// MonitorarPendentesHandler volta a acompanhar todas as cobranças da Efí ainda ativas
func MonitorarPendentesHandler(monitor *StatusMonitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := monitor.ResumePending(r.Context())
		if err != nil {
			http.Error(w, "Erro ao buscar cobranças ativas", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]interface{}{
			"message":         "Monitoramento iniciado",
			"total_monitorar": total,
		})
	}
}

// MonitorPhase é uma fase do acompanhamento: Attempts consultas espaçadas por Interval
type MonitorPhase struct {
	Interval time.Duration
	Attempts int
}

// DefaultMonitorPhases cobre a hora de validade da cobrança: 10 consultas a cada 30s, depois 21 a cada minuto
var DefaultMonitorPhases = []MonitorPhase{
	{Interval: 30 * time.Second, Attempts: 10},
	{Interval: time.Minute, Attempts: 21},
}

// Status devolvidos pela Efí que encerram a cobrança sem pagamento
var efiStatusRemovida = map[string]bool{
	"REMOVIDA_PELO_USUARIO_RECEBEDOR": true,
	"REMOVIDA_PELO_PSP":               true,
}

// StatusMonitor consulta a Efí até a cobrança ser paga ou expirar
type StatusMonitor struct {
	store  CobrancaStore
	efi    EfiGateway
	log    *zap.Logger
	phases []MonitorPhase
}

func NewStatusMonitor(store CobrancaStore, efi EfiGateway, log *zap.Logger, phases []MonitorPhase) *StatusMonitor {
	if len(phases) == 0 {
		phases = DefaultMonitorPhases
	}
	return &StatusMonitor{store: store, efi: efi, log: log, phases: phases}
}

// Watch acompanha um txid. Erros só vão para o log.
func (m *StatusMonitor) Watch(ctx context.Context, txid string) {
	log := m.log.With(zap.String("txid", txid))

	for _, phase := range m.phases {
		for i := 0; i < phase.Attempts; i++ {
			log.Debug("verificando status", zap.Int("tentativa", i+1), zap.Int("de", phase.Attempts))

			status, err := m.consultarStatus(txid)
			if err != nil {
				log.Error("erro ao consultar status PIX", zap.Error(err))
				return
			}

			switch {
			case status == models.StatusConcluida:
				now := time.Now()
				m.atualizar(ctx, log, txid, models.StatusConcluida, &now)
				return
			case efiStatusRemovida[status]:
				m.atualizar(ctx, log, txid, models.StatusVencido, nil)
				return
			}

			select {
			case <-ctx.Done():
				log.Info("monitoramento interrompido")
				return
			case <-time.After(phase.Interval):
			}
		}
	}

	log.Info("verificações encerradas sem pagamento concluído")
	m.atualizar(ctx, log, txid, models.StatusVencido, nil)
}

// ResumePending dispara Watch para cada cobrança da Efí ainda ativa e devolve quantas foram
func (m *StatusMonitor) ResumePending(ctx context.Context) (int, error) {
	txids, err := m.store.ListPending(ctx, models.OrigemEfi)
	if err != nil {
		m.log.Error("erro ao buscar cobranças ativas", zap.Error(err))
		return 0, err
	}
	for _, txid := range txids {
		go m.Watch(context.Background(), txid)
	}
	return len(txids), nil
}

func (m *StatusMonitor) consultarStatus(txid string) (string, error) {
	res, err := m.efi.DetailCharge(txid)
	if err != nil {
		return "", err
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(res), &body); err != nil {
		return "", err
	}
	if body.Status == "" {
		return "", fmt.Errorf("status não encontrado na resposta")
	}
	return body.Status, nil
}

func (m *StatusMonitor) atualizar(ctx context.Context, log *zap.Logger, txid, status string, paidAt *time.Time) {
	if err := m.store.UpdateStatus(ctx, txid, status, paidAt); err != nil {
		log.Error("erro ao atualizar cobrança", zap.String("status", status), zap.Error(err))
		return
	}
	log.Info("cobrança atualizada", zap.String("status", status))
}
