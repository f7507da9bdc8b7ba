package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/infrastructure/config"
)

func TestGenerateTokenYExtractClaims(t *testing.T) {
	svc := NewJWTService(testConfig())

	usuario := &models.Usuario{Username: "admin", Rol: "admin"}
	usuario.ID = 7

	token, err := svc.GenerateToken(usuario)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.ID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Rol)
	assert.Equal(t, "trascontrol", claims.Issuer)
}

func TestExtractClaimsTokenAjeno(t *testing.T) {
	svc := NewJWTService(testConfig())
	otro := NewJWTService(&config.Config{JWTSecretKey: "otra-clave"})

	usuario := &models.Usuario{Username: "admin", Rol: "admin"}
	usuario.ID = 1

	token, err := otro.GenerateToken(usuario)
	require.NoError(t, err)

	// Firmado con otra clave: debe rechazarse
	_, err = svc.ExtractClaims(token)
	assert.Error(t, err)
}

func TestExtractClaimsTokenBasura(t *testing.T) {
	svc := NewJWTService(testConfig())

	_, err := svc.ExtractClaims("no-es-un-token")
	assert.Error(t, err)
}
