package pix

import (
	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// clipboardWriteAll é variável de pacote para poder ser trocada nos testes
var clipboardWriteAll = clipboard.WriteAll

// CopyToClipboard copia o payload para a área de transferência em segundo plano.
// Falhas só vão para o log. O canal devolvido fecha quando a tentativa termina.
func CopyToClipboard(payload string, log *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := clipboardWriteAll(payload); err != nil {
			log.Warn("falha ao copiar payload PIX", zap.Error(err))
			return
		}
		log.Debug("payload PIX copiado", zap.Int("tamanho", len(payload)))
	}()
	return done
}
