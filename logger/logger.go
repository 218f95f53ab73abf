package logger

import (
	"os"

	_ "github.com/jsternberg/zap-logfmt" // registra o encoding "logfmt"
	"go.uber.org/zap"
)

// New cria o logger da aplicação em logfmt, por padrão no stdout.
// Um nível inválido cai para info.
func New(service, level string, outputs ...string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = service
	cfg.OutputPaths = []string{"stdout"}
	if len(outputs) > 0 {
		cfg.OutputPaths = outputs
	}
	return cfg.Build()
}
