package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger é satisfeito por *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthCheckHandler lida com a verificação de saúde do sistema
func HealthCheckHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "degradado",
				"database": err.Error(),
			})
			return
		}

		// Resposta de sucesso com status "online"
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "online",
		})
	}
}
