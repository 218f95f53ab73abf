package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// LoadEnv carrega as variáveis de ambiente do arquivo .env
func LoadEnv() error {
	return godotenv.Load()
}

// getEnv devolve a variável ou o valor padrão quando ela estiver vazia
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// mustEnv encerra a aplicação se a variável não estiver definida
func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		zap.L().Fatal(key + " não definida nas variáveis de ambiente.")
	}
	return v
}

// GetDatabaseURL retorna a URL de conexão com o banco de dados
func GetDatabaseURL() string {
	return mustEnv("DATABASE_URL")
}

// GetPortServerStart retorna a porta do servidor HTTP
func GetPortServerStart() string {
	return mustEnv("SERVER_PORT")
}

func GetLogLevel() string {
	return getEnv("LOG_LEVEL", "info")
}

func GetCorsOrigin() string {
	return getEnv("CORS_ORIGIN", "http://localhost")
}

func GetJwtSecret() string {
	return mustEnv("JWT_SECRET")
}

// Merchant reúne os dados do recebedor usados quando a requisição não informa
type Merchant struct {
	PixKey string
	Name   string
	City   string
}

// GetMerchant retorna os dados padrão do recebedor PIX
func GetMerchant() Merchant {
	return Merchant{
		PixKey: os.Getenv("PIX_KEY"),
		Name:   getEnv("PIX_MERCHANT_NAME", "Criart"),
		City:   getEnv("PIX_MERCHANT_CITY", "Sao Paulo"),
	}
}

// GetRedis retorna endereço e senha do Redis; endereço vazio desliga o cache
func GetRedis() (string, string) {
	return os.Getenv("REDIS_URL"), os.Getenv("REDIS_PASSWORD")
}

// GetCredentials monta as credenciais no formato esperado pelo SDK da Efí
func GetCredentials() map[string]interface{} {
	// Converte SANDBOX para booleano
	sandbox, err := strconv.ParseBool(os.Getenv("SANDBOX"))
	if err != nil {
		zap.L().Warn("SANDBOX inválido, usando false", zap.Error(err))
		sandbox = false
	}

	// Converte TIMEOUT para inteiro
	timeout, err := strconv.Atoi(os.Getenv("TIMEOUT"))
	if err != nil {
		zap.L().Warn("TIMEOUT inválido, usando 30", zap.Error(err))
		timeout = 30
	}

	return map[string]interface{}{
		"client_id":     os.Getenv("CLIENT_ID"),
		"client_secret": os.Getenv("CLIENT_SECRET"),
		"sandbox":       sandbox,
		"timeout":       timeout,
		"CA":            os.Getenv("CA_PEM"),
		"Key":           os.Getenv("KEY_PEM"),
	}
}
