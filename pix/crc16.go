package pix

import (
	"errors"
	"fmt"
	"strings"
)

const crcPolynomial = 0x1021

var (
	ErrPayloadTooShort = errors.New("pix: payload curto demais")
	ErrMissingCRC      = errors.New("pix: prefixo do CRC (6304) não encontrado")
	ErrCRCMismatch     = errors.New("pix: CRC não confere")
)

// CRC16 calcula o CRC-16/CCITT-FALSE (polinômio 0x1021, início 0xFFFF, sem xor final)
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Checksum devolve o CRC de payload em 4 dígitos hexadecimais maiúsculos.
// payload já deve terminar com "6304".
func Checksum(payload string) string {
	return fmt.Sprintf("%04X", CRC16([]byte(payload)))
}

// Verify recalcula o CRC sobre o payload até "6304" (inclusive) e compara com os 4 dígitos finais
func Verify(payload string) error {
	if len(payload) < len(crcPrefix)+4 {
		return ErrPayloadTooShort
	}
	body := payload[:len(payload)-4]
	if !strings.HasSuffix(body, crcPrefix) {
		return ErrMissingCRC
	}
	got := strings.ToUpper(payload[len(payload)-4:])
	if want := Checksum(body); got != want {
		return fmt.Errorf("%w: esperado %s, recebido %s", ErrCRCMismatch, want, got)
	}
	return nil
}
