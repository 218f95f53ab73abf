package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"CRIART_GO/cache"
	"CRIART_GO/config"
	"CRIART_GO/pix"

	"go.uber.org/zap"
)

// PixPayloadResponse é o retorno da geração de payload
type PixPayloadResponse struct {
	Payload   string `json:"payload"`
	QRCodeURL string `json:"qrcode_url"`
}

// withMerchant completa a requisição com os dados padrão do recebedor
func withMerchant(req pix.PaymentRequest, m config.Merchant) pix.PaymentRequest {
	if req.PixKey == "" {
		req.PixKey = m.PixKey
	}
	if req.MerchantName == "" {
		req.MerchantName = m.Name
	}
	if req.MerchantCity == "" {
		req.MerchantCity = m.City
	}
	return req
}

// PixPayloadHandler gera o "copia e cola" e a URL do QR code, sem gravar nada
func PixPayloadHandler(merchant config.Merchant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pix.PaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Erro ao decodificar JSON: "+err.Error(), http.StatusBadRequest)
			return
		}

		req = withMerchant(req, merchant)
		if req.PixKey == "" {
			http.Error(w, "Chave PIX não informada nem configurada", http.StatusBadRequest)
			return
		}

		payload := pix.BuildPayload(req)
		writeJSON(w, http.StatusOK, PixPayloadResponse{
			Payload:   payload,
			QRCodeURL: pix.QRImageURL(payload),
		})
	}
}

// PixDecodeHandler confere o CRC de um payload e devolve os campos
func PixDecodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Payload string `json:"payload"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Erro ao decodificar JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.Payload == "" {
			http.Error(w, "payload é obrigatório", http.StatusBadRequest)
			return
		}

		fields, err := pix.Parse(req.Payload)
		if err != nil {
			status := http.StatusUnprocessableEntity
			if errors.Is(err, pix.ErrPayloadTooShort) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"valido": true,
			"campos": fields,
		})
	}
}

// PixQRCodeHandler renderiza o QR code em PNG, usando o cache quando houver
func PixQRCodeHandler(images cache.ImageCache, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := r.URL.Query().Get("payload")
		if payload == "" {
			http.Error(w, "payload é obrigatório", http.StatusBadRequest)
			return
		}
		size := 0
		if s := r.URL.Query().Get("size"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 1024 {
				http.Error(w, "size inválido", http.StatusBadRequest)
				return
			}
			size = n
		}

		sum := sha256.Sum256([]byte(payload + "|" + strconv.Itoa(size)))
		key := hex.EncodeToString(sum[:])

		png, ok, err := images.Get(r.Context(), key)
		if err != nil {
			log.Warn("cache de QR indisponível", zap.Error(err))
		}
		if !ok {
			png, err = pix.RenderPNG(payload, size)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			if err := images.Set(r.Context(), key, png); err != nil {
				log.Warn("falha ao gravar QR no cache", zap.Error(err))
			}
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Write(png)
	}
}
