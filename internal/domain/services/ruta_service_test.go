package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
)

func TestCreateRutaQuedaActiva(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRutaService(db, testConfig())

	ruta := models.Ruta{Nombre: "Ruta 105 Centro", Numero: "105", Origen: "Portal Norte", Destino: "Plaza Central"}
	require.NoError(t, svc.CreateRuta(&ruta))
	assert.True(t, ruta.Activo)
	assert.NotZero(t, ruta.ID)
}

func TestUpdateRutaParcheParcial(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRutaService(db, testConfig())

	ruta := models.Ruta{Nombre: "Ruta 105 Centro", Numero: "105"}
	require.NoError(t, svc.CreateRuta(&ruta))

	actualizada, err := svc.UpdateRuta(ruta.ID, RutaPatch{Destino: ptr("Terminal Sur")})
	require.NoError(t, err)
	assert.Equal(t, "Terminal Sur", actualizada.Destino)
	assert.Equal(t, "Ruta 105 Centro", actualizada.Nombre)
	assert.Equal(t, "105", actualizada.Numero)
}

func TestGetAllRutasBusqueda(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRutaService(db, testConfig())

	require.NoError(t, svc.CreateRuta(&models.Ruta{Nombre: "Ruta 105 Centro", Numero: "105", Origen: "Portal Norte"}))
	require.NoError(t, svc.CreateRuta(&models.Ruta{Nombre: "Ruta 230 Expreso", Numero: "230", Destino: "Aeropuerto"}))

	// La búsqueda cubre nombre, número, origen y destino
	rutas, _, err := svc.GetAllRutas(1, 10, RutaFilter{Search: "Aeropuerto"})
	require.NoError(t, err)
	require.Len(t, rutas, 1)
	assert.Equal(t, "230", rutas[0].Numero)

	rutas, _, err = svc.GetAllRutas(1, 10, RutaFilter{Search: "105"})
	require.NoError(t, err)
	require.Len(t, rutas, 1)
	assert.Equal(t, "Ruta 105 Centro", rutas[0].Nombre)
}

func TestDeleteRutaEsLogicoYSaleDelListadoPublico(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRutaService(db, testConfig())

	ruta := models.Ruta{Nombre: "Ruta 105 Centro"}
	require.NoError(t, svc.CreateRuta(&ruta))
	require.NoError(t, svc.DeleteRuta(ruta.ID))

	var fila models.Ruta
	require.NoError(t, db.First(&fila, ruta.ID).Error)
	assert.False(t, fila.Activo)

	activas, err := svc.GetRutasActivas()
	require.NoError(t, err)
	assert.Empty(t, activas)
}
