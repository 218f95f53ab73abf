package routes

import (
	"net/http"

	"CRIART_GO/cache"
	"CRIART_GO/config"
	"CRIART_GO/handlers"
	"CRIART_GO/middleware"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Deps reúne o que as rotas precisam
type Deps struct {
	DB         handlers.Pinger
	Cobrancas  handlers.CobrancaStore
	Users      handlers.UserStore
	Efi        handlers.EfiGateway
	Monitor    *handlers.StatusMonitor
	Images     cache.ImageCache
	Merchant   config.Merchant
	JwtSecret  []byte
	CorsOrigin string
	Log        *zap.Logger
}

// SetupRoutes monta o roteador. O CORS fica por fora para atender o pré-flight de qualquer rota.
func SetupRoutes(d Deps) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(d.Log))

	// Health Check
	router.HandleFunc("/health", handlers.HealthCheckHandler(d.DB)).Methods(http.MethodGet)

	// Rotas de usuário
	router.HandleFunc("/login", handlers.LoginHandler(d.Users, d.JwtSecret, d.Log)).Methods(http.MethodPost)
	router.HandleFunc("/users", handlers.CreateUserHandler(d.Users, d.Log)).Methods(http.MethodPost)

	// PIX sem estado: decodificação e imagem do QR são públicas
	router.HandleFunc("/pix/decode", handlers.PixDecodeHandler()).Methods(http.MethodPost)
	router.HandleFunc("/pix/qrcode.png", handlers.PixQRCodeHandler(d.Images, d.Log)).Methods(http.MethodGet)

	// Rotas autenticadas
	api := router.NewRoute().Subrouter()
	api.Use(middleware.AuthMiddleware(d.JwtSecret))
	api.HandleFunc("/pix/payload", handlers.PixPayloadHandler(d.Merchant)).Methods(http.MethodPost)
	api.HandleFunc("/cobrancas", handlers.CreateCobrancaHandler(d.Cobrancas, d.Merchant, d.Log)).Methods(http.MethodPost)
	api.HandleFunc("/cobrancas", handlers.ListCobrancasHandler(d.Cobrancas, d.Log)).Methods(http.MethodGet)
	api.HandleFunc("/cobrancas/efi", handlers.CreateEfiCobrancaHandler(d.Cobrancas, d.Efi, d.Monitor, d.Merchant, d.Log)).Methods(http.MethodPost)
	api.HandleFunc("/cobrancas/efi/monitorar", handlers.MonitorarPendentesHandler(d.Monitor)).Methods(http.MethodPost)
	api.HandleFunc("/cobrancas/efi/{txid}/status", handlers.EfiStatusHandler(d.Efi, d.Log)).Methods(http.MethodGet)
	api.HandleFunc("/cobrancas/{id}", handlers.GetCobrancaHandler(d.Cobrancas, d.Log)).Methods(http.MethodGet)
	api.HandleFunc("/cobrancas/{txid}/pago", handlers.MarcarPagoHandler(d.Cobrancas, d.Log)).Methods(http.MethodPut)

	return middleware.CorsMiddleware(d.CorsOrigin)(router)
}
