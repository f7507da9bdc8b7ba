package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
)

func TestCreateTipoNovedadSeveridadPorDefecto(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTipoNovedadService(db, testConfig())

	tipo := models.TipoNovedad{Nombre: "Retraso"}
	require.NoError(t, svc.CreateTipoNovedad(&tipo))
	assert.Equal(t, models.SeveridadMedia, tipo.Severidad)
}

func TestCreateTipoNovedadSeveridadInvalida(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTipoNovedadService(db, testConfig())

	tipo := models.TipoNovedad{Nombre: "Retraso", Severidad: "urgente"}
	err := svc.CreateTipoNovedad(&tipo)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateTipoNovedadNombreDuplicado(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTipoNovedadService(db, testConfig())

	require.NoError(t, svc.CreateTipoNovedad(&models.TipoNovedad{Nombre: "Varada mecánica", Severidad: models.SeveridadAlta}))

	err := svc.CreateTipoNovedad(&models.TipoNovedad{Nombre: "Varada mecánica"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateTipoNovedadSeveridadInvalida(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTipoNovedadService(db, testConfig())

	tipo := models.TipoNovedad{Nombre: "Retraso"}
	require.NoError(t, svc.CreateTipoNovedad(&tipo))

	mala := models.Severidad("extrema")
	_, err := svc.UpdateTipoNovedad(tipo.ID, TipoNovedadPatch{Severidad: &mala})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteTipoNovedadEsLogico(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTipoNovedadService(db, testConfig())

	tipo := models.TipoNovedad{Nombre: "Retraso"}
	require.NoError(t, svc.CreateTipoNovedad(&tipo))
	require.NoError(t, svc.DeleteTipoNovedad(tipo.ID))

	var fila models.TipoNovedad
	require.NoError(t, db.First(&fila, tipo.ID).Error)
	assert.False(t, fila.Activo)
}

func TestSeveridadRank(t *testing.T) {
	assert.Greater(t, models.SeveridadCritica.Rank(), models.SeveridadAlta.Rank())
	assert.Greater(t, models.SeveridadAlta.Rank(), models.SeveridadMedia.Rank())
	assert.Greater(t, models.SeveridadMedia.Rank(), models.SeveridadBaja.Rank())

	assert.True(t, models.SeveridadBaja.Valida())
	assert.False(t, models.Severidad("urgente").Valida())

	assert.Equal(t, []models.Severidad{
		models.SeveridadCritica,
		models.SeveridadAlta,
		models.SeveridadMedia,
		models.SeveridadBaja,
	}, models.SeveridadesOrdenadas())
}
