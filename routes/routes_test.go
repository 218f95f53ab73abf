package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"CRIART_GO/cache"
	"CRIART_GO/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newRouter() http.Handler {
	return SetupRoutes(Deps{
		DB:         okPinger{},
		Images:     cache.NopImageCache{},
		Merchant:   config.Merchant{PixKey: "dsprestes7@gmail.com", Name: "Criart", City: "Sao Paulo"},
		JwtSecret:  []byte("segredo"),
		CorsOrigin: "http://localhost",
		Log:        zap.NewNop(),
	})
}

func TestSetupRoutes_Public(t *testing.T) {
	r := newRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pix/qrcode.png?payload=abc", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestSetupRoutes_PreflightOnProtectedRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/pix/payload", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupRoutes_PayloadRequiresToken(t *testing.T) {
	r := newRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pix/payload", strings.NewReader(`{"valor": 1}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("segredo"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/pix/payload", strings.NewReader(`{"valor": 1}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "5404"+"1.00")
}
