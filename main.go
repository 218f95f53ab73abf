package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CRIART_GO/cache"
	"CRIART_GO/config"
	"CRIART_GO/database"
	"CRIART_GO/handlers"
	"CRIART_GO/logger"
	"CRIART_GO/routes"

	"go.uber.org/zap"
)

func main() {
	// Carregar configuração
	envErr := config.LoadEnv()

	log, err := logger.New("criart", config.GetLogLevel())
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()
	zap.ReplaceGlobals(log)

	if envErr != nil {
		log.Info("Arquivo .env não encontrado, usando variáveis de ambiente padrão.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Conectar ao banco de dados
	db, err := database.Connect(config.GetDatabaseURL())
	if err != nil {
		log.Fatal("erro ao conectar ao banco de dados", zap.Error(err))
	}
	defer db.Close()

	// Executar migrações
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("erro ao executar migrações", zap.Error(err))
	}
	log.Info("migrações executadas com sucesso")

	// Cache das imagens de QR code, opcional
	var images cache.ImageCache = cache.NopImageCache{}
	if addr, password := config.GetRedis(); addr != "" {
		rdb, err := cache.Connect(ctx, addr, password)
		if err != nil {
			log.Warn("redis indisponível, seguindo sem cache de QR", zap.Error(err))
		} else {
			defer rdb.Close()
			images = cache.NewRedisImageCache(rdb)
		}
	}

	cobrancas := database.NewCobrancaRepository(db)
	efi := handlers.NewEfiGateway()
	monitor := handlers.NewStatusMonitor(cobrancas, efi, log, handlers.DefaultMonitorPhases)

	// Retoma o acompanhamento das cobranças que ficaram ativas
	if n, err := monitor.ResumePending(ctx); err == nil && n > 0 {
		log.Info("monitoramento retomado", zap.Int("cobrancas", n))
	}

	router := routes.SetupRoutes(routes.Deps{
		DB:         db,
		Cobrancas:  cobrancas,
		Users:      database.NewUserRepository(db),
		Efi:        efi,
		Monitor:    monitor,
		Images:     images,
		Merchant:   config.GetMerchant(),
		JwtSecret:  []byte(config.GetJwtSecret()),
		CorsOrigin: config.GetCorsOrigin(),
		Log:        log,
	})

	// Iniciar o servidor
	port := config.GetPortServerStart()
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("servidor rodando", zap.String("porta", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("erro no servidor HTTP", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("erro ao encerrar o servidor", zap.Error(err))
	}
}
