package pix

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	qrServerURL   = "https://api.qrserver.com/v1/create-qr-code/"
	qrDefaultSize = 200
)

// QRImageURL devolve a URL do qrserver que renderiza o payload em PNG 200x200, correção M
func QRImageURL(payload string) string {
	return fmt.Sprintf("%s?size=%dx%d&data=%s&format=png&ecc=M",
		qrServerURL, qrDefaultSize, qrDefaultSize, url.QueryEscape(payload))
}

// RenderPNG gera o QR code localmente, com o mesmo nível de correção da URL
func RenderPNG(payload string, size int) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("payload vazio")
	}
	if size <= 0 {
		size = qrDefaultSize
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar QR code: %w", err)
	}
	return png, nil
}
