package pix

import (
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Limites de tamanho de cada campo no payload PIX
const (
	MaxMerchantName = 25
	MaxMerchantCity = 15
	MaxDescription  = 72
	MaxTxID         = 25
)

// truncate corta s nos primeiros n caracteres. Não avisa quem chamou.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// foldASCII remove acentos ("São Paulo" -> "Sao Paulo") e descarta o que sobrar
// fora do ASCII imprimível, para que o tamanho em caracteres seja igual ao tamanho em bytes.
func foldASCII(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool {
			return r > unicode.MaxASCII || !unicode.IsPrint(r)
		})),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// formatText normaliza e corta um campo de texto livre
func formatText(s string, n int) string {
	return truncate(foldASCII(s), n)
}

// FormatAmount devolve o valor com duas casas decimais ("3.4" -> "3.40").
// Valores zerados ou negativos são tratados como ausentes.
func FormatAmount(amount decimal.Decimal) (string, bool) {
	if !amount.IsPositive() {
		return "", false
	}
	return amount.StringFixed(2), true
}
