package handlers

import (
	"errors"
	"net/http"
	"time"

	"CRIART_GO/database"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// LoginResponse é a resposta do login
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

// LoginHandler lida com a autenticação de usuários (grant_type=password em form-urlencoded)
func LoginHandler(users UserStore, jwtSecret []byte, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Analisar os parâmetros recebidos
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Erro ao processar os parâmetros", http.StatusBadRequest)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")
		grantType := r.FormValue("grant_type")

		if grantType != "password" || username == "" || password == "" {
			http.Error(w, "Parâmetros inválidos", http.StatusBadRequest)
			return
		}

		user, err := users.GetByEmail(r.Context(), username)
		if errors.Is(err, database.ErrNotFound) {
			http.Error(w, "Usuário ou senha inválidos", http.StatusUnauthorized)
			return
		}
		if err != nil {
			log.Error("erro ao buscar usuário", zap.Error(err))
			http.Error(w, "Erro ao buscar usuário", http.StatusInternalServerError)
			return
		}

		if !user.Active {
			http.Error(w, "Usuário inativo", http.StatusForbidden)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			http.Error(w, "Usuário ou senha inválidos", http.StatusUnauthorized)
			return
		}

		// Gerar token
		expiresAt := time.Now().Add(tokenTTL)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		})
		tokenString, err := token.SignedString(jwtSecret)
		if err != nil {
			log.Error("erro ao gerar token", zap.Error(err))
			http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
			return
		}

		response := LoginResponse{Token: tokenString, ExpiresAt: expiresAt}
		response.User.ID = user.ID
		response.User.Name = user.Name
		response.User.Email = user.Email

		log.Info("login efetuado", zap.String("user", user.ID))
		writeJSON(w, http.StatusOK, response)
	}
}
