// Package pix gera o código "copia e cola" do PIX (formato EMV-QR do Banco Central)
// e a URL da imagem do QR code correspondente.
//
// Tudo aqui é função pura: a mesma requisição sempre gera o mesmo payload,
// e as funções podem ser chamadas de várias goroutines sem coordenação.
package pix

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Tags do payload, na ordem em que são emitidas
const (
	TagPayloadFormat    = "00"
	TagInitiationMethod = "01"
	TagMerchantAccount  = "26"
	TagMerchantCategory = "52"
	TagCurrency         = "53"
	TagAmount           = "54"
	TagCountry          = "58"
	TagMerchantName     = "59"
	TagMerchantCity     = "60"
	TagAdditionalData   = "62"
	TagCRC              = "63"
	TagAccountGUI       = "00" // dentro da 26
	TagAccountKey       = "01" // dentro da 26
	TagAccountInfo      = "02" // dentro da 26
	TagAdditionalTxID   = "05" // dentro da 62
)

// Valores fixos
const (
	PayloadFormatIndicator = "01"
	// InitiationDynamic é usado sempre, mesmo sem valor (o EMV pediria "11" nesse caso).
	InitiationDynamic = "12"
	PixGUI            = "br.gov.bcb.pix"
	MerchantCategory  = "0000"
	CurrencyBRL       = "986"
	CountryBR         = "BR"

	crcPrefix = TagCRC + "04"
)

// PaymentRequest são os dados de uma cobrança PIX. Amount zerado significa valor em aberto.
type PaymentRequest struct {
	PixKey       string          `json:"chave"`
	MerchantName string          `json:"nome"`
	MerchantCity string          `json:"cidade"`
	Amount       decimal.Decimal `json:"valor"`
	Description  string          `json:"descricao"`
	TxID         string          `json:"txid"`
}

// BuildPayload monta o payload completo, já com o CRC no final.
// Campos longos são cortados e campos vazios opcionais são omitidos; nunca falha.
func BuildPayload(req PaymentRequest) string {
	var b strings.Builder

	b.WriteString(TLV(TagPayloadFormat, PayloadFormatIndicator))
	b.WriteString(TLV(TagInitiationMethod, InitiationDynamic))
	b.WriteString(TLV(TagMerchantAccount, merchantAccount(req)))
	b.WriteString(TLV(TagMerchantCategory, MerchantCategory))
	b.WriteString(TLV(TagCurrency, CurrencyBRL))
	if amount, ok := FormatAmount(req.Amount); ok {
		b.WriteString(TLV(TagAmount, amount))
	}
	b.WriteString(TLV(TagCountry, CountryBR))
	b.WriteString(TLV(TagMerchantName, formatText(req.MerchantName, MaxMerchantName)))
	b.WriteString(TLV(TagMerchantCity, formatText(req.MerchantCity, MaxMerchantCity)))
	if txid := formatText(req.TxID, MaxTxID); txid != "" {
		b.WriteString(TLV(TagAdditionalData, TLV(TagAdditionalTxID, txid)))
	}
	b.WriteString(crcPrefix)

	payload := b.String()
	return payload + Checksum(payload)
}

// merchantAccount monta o template 26: GUI do arranjo, chave e descrição opcional
func merchantAccount(req PaymentRequest) string {
	s := TLV(TagAccountGUI, PixGUI) + TLV(TagAccountKey, req.PixKey)
	if desc := formatText(req.Description, MaxDescription); desc != "" {
		s += TLV(TagAccountInfo, desc)
	}
	return s
}

// Parse valida o CRC e devolve os registros do payload, com os templates 26 e 62 abertos
func Parse(payload string) ([]Field, error) {
	if err := Verify(payload); err != nil {
		return nil, err
	}
	fields, err := ParseTemplate(payload)
	if err != nil {
		return nil, err
	}
	for i, f := range fields {
		if f.Tag != TagMerchantAccount && f.Tag != TagAdditionalData {
			continue
		}
		sub, err := ParseTemplate(f.Value)
		if err != nil {
			return nil, err
		}
		fields[i].Sub = sub
	}
	return fields, nil
}
