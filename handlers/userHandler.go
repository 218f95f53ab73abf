package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"CRIART_GO/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CreateUserHandler lida com a criação de um novo usuário
func CreateUserHandler(users UserStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}

		// Decodificar o corpo da requisição JSON
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Erro ao decodificar o JSON", http.StatusBadRequest)
			return
		}

		// Validar os campos obrigatórios
		if req.Name == "" || req.Email == "" || req.Password == "" {
			http.Error(w, "Todos os campos (name, email, password) são obrigatórios", http.StatusBadRequest)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "Erro ao processar a senha", http.StatusBadRequest)
			return
		}

		now := time.Now()
		user := models.User{
			ID:         uuid.NewString(),
			Name:       req.Name,
			Email:      req.Email,
			Password:   string(hash),
			Active:     true,
			DateCreate: now,
			DateUpdate: now,
		}

		if err := users.Create(r.Context(), &user); err != nil {
			log.Error("erro ao criar o usuário", zap.Error(err))
			http.Error(w, "Erro ao criar o usuário", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{
			"message": "Usuário criado com sucesso",
			"id":      user.ID,
		})
	}
}
