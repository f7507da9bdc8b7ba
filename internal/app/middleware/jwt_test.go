package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/domain/services"
	"github.com/Miguel-Alz/trascontrol/internal/infrastructure/config"
)

func testJWTService() services.InterfaceJWTService {
	return services.NewJWTService(&config.Config{JWTSecretKey: "clave-de-prueba"})
}

func testToken(t *testing.T, svc services.InterfaceJWTService) string {
	t.Helper()
	usuario := &models.Usuario{Username: "admin", Rol: "admin"}
	usuario.ID = 1
	token, err := svc.GenerateToken(usuario)
	require.NoError(t, err)
	return token
}

func authRouter(svc services.InterfaceJWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protegida", Authentication(svc), func(c *gin.Context) {
		username := c.GetString("username")
		c.JSON(http.StatusOK, gin.H{"username": username})
	})
	return r
}

func TestAuthenticationSinToken(t *testing.T) {
	r := authRouter(testJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticationTokenInvalido(t *testing.T) {
	r := authRouter(testJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer token-falso")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthenticationTokenDeOtraClave(t *testing.T) {
	svc := testJWTService()
	otro := services.NewJWTService(&config.Config{JWTSecretKey: "otra-clave"})
	r := authRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, otro))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthenticationTokenValido(t *testing.T) {
	svc := testJWTService()
	r := authRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, svc))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}

func TestOptionalAuthenticationNuncaRechaza(t *testing.T) {
	svc := testJWTService()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/mixta", OptionalAuthentication(svc), func(c *gin.Context) {
		_, autenticado := c.Get("claims")
		c.JSON(http.StatusOK, gin.H{"autenticado": autenticado})
	})

	// Sin token pasa como anónimo
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mixta", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "false")

	// Con token inválido también pasa, sin identidad
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/mixta", nil)
	req.Header.Set("Authorization", "Bearer basura")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "false")

	// Con token válido puebla la identidad
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/mixta", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, svc))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "true")
}
