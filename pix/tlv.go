package pix

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformedTLV indica um registro com tag ou tamanho inválido
var ErrMalformedTLV = errors.New("pix: registro TLV malformado")

// TLV monta tag + tamanho com 2 dígitos + valor.
// Quem chama garante len(value) <= 99; acima disso o tamanho sai corrompido.
func TLV(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

// Field é um registro TLV lido de um payload
type Field struct {
	Tag   string  `json:"tag"`
	Value string  `json:"valor"`
	Sub   []Field `json:"sub,omitempty"`
}

// ParseTemplate percorre uma sequência de registros TLV sem descer nos aninhados
func ParseTemplate(s string) ([]Field, error) {
	var fields []Field
	for i := 0; i < len(s); {
		if i+4 > len(s) {
			return nil, fmt.Errorf("%w: cabeçalho incompleto na posição %d", ErrMalformedTLV, i)
		}
		tag := s[i : i+2]
		size, err := strconv.Atoi(s[i+2 : i+4])
		if err != nil || size < 0 {
			return nil, fmt.Errorf("%w: tamanho inválido na tag %s", ErrMalformedTLV, tag)
		}
		start := i + 4
		end := start + size
		if end > len(s) {
			return nil, fmt.Errorf("%w: tag %s excede o payload", ErrMalformedTLV, tag)
		}
		fields = append(fields, Field{Tag: tag, Value: s[start:end]})
		i = end
	}
	return fields, nil
}
