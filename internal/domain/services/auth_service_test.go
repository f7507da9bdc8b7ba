package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
)

func TestLoginExitoso(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	jwtSvc := NewJWTService(cfg)
	svc := NewAuthService(db, cfg, jwtSvc)

	_, err := svc.CreateAdmin("admin", "secreto123", "admin@example.com")
	require.NoError(t, err)

	usuario, token, err := svc.Login("admin", "secreto123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", usuario.Username)
	require.NotNil(t, usuario.UltimoAcceso)

	// El token emitido es verificable y lleva la identidad
	claims, err := jwtSvc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, usuario.ID, claims.ID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Rol)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg, NewJWTService(cfg))

	_, err := svc.CreateAdmin("admin", "secreto123", "")
	require.NoError(t, err)

	// Contraseña incorrecta
	_, _, err = svc.Login("admin", "otra")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Usuario inexistente: misma clase de error, sin revelar cuál falló
	_, _, err = svc.Login("nadie", "secreto123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginFallidoNoTocaUltimoAcceso(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg, NewJWTService(cfg))

	_, err := svc.CreateAdmin("admin", "secreto123", "")
	require.NoError(t, err)

	_, _, err = svc.Login("admin", "incorrecta")
	require.Error(t, err)

	var usuario models.Usuario
	require.NoError(t, db.Where("username = ?", "admin").First(&usuario).Error)
	assert.Nil(t, usuario.UltimoAcceso)
}

func TestLoginUsuarioInactivo(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg, NewJWTService(cfg))

	usuario, err := svc.CreateAdmin("admin", "secreto123", "")
	require.NoError(t, err)
	require.NoError(t, db.Model(usuario).Update("activo", false).Error)

	_, _, err = svc.Login("admin", "secreto123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateAdminDuplicado(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg, NewJWTService(cfg))

	_, err := svc.CreateAdmin("admin", "secreto123", "")
	require.NoError(t, err)

	_, err = svc.CreateAdmin("admin", "otra456", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "El usuario ya existe", err.Error())
}

func TestCreateAdminGuardaHashNoTextoPlano(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg, NewJWTService(cfg))

	usuario, err := svc.CreateAdmin("admin", "secreto123", "")
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", usuario.Password)
	assert.NotEmpty(t, usuario.Password)
}
