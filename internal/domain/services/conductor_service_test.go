package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
)

func TestCreateConductorConEmpresaInexistente(t *testing.T) {
	db := setupTestDB(t)
	svc := NewConductorService(db, testConfig())

	conductor := models.Conductor{Nombre: "Carlos Pérez", EmpresaID: ptr(uint(999))}
	err := svc.CreateConductor(&conductor)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestCreateConductorSinEmpresa(t *testing.T) {
	db := setupTestDB(t)
	svc := NewConductorService(db, testConfig())

	// La empresa es opcional
	conductor := models.Conductor{Nombre: "Carlos Pérez"}
	require.NoError(t, svc.CreateConductor(&conductor))
	assert.True(t, conductor.Activo)
}

func TestGetConductorPrecargaEmpresa(t *testing.T) {
	db := setupTestDB(t)
	svc := NewConductorService(db, testConfig())
	empresa := seedEmpresa(t, db, "Transportes Andinos", "TA")

	conductor := models.Conductor{Nombre: "Carlos Pérez", EmpresaID: &empresa.ID}
	require.NoError(t, svc.CreateConductor(&conductor))

	cargado, err := svc.GetConductorByID(conductor.ID)
	require.NoError(t, err)
	require.NotNil(t, cargado.Empresa)
	assert.Equal(t, "Transportes Andinos", cargado.Empresa.Nombre)
}

func TestUpdateConductorCambioDeEmpresa(t *testing.T) {
	db := setupTestDB(t)
	svc := NewConductorService(db, testConfig())
	empresa := seedEmpresa(t, db, "Transportes Andinos", "TA")
	otra := seedEmpresa(t, db, "Transportes del Sur", "TS")

	conductor := models.Conductor{Nombre: "Carlos Pérez", EmpresaID: &empresa.ID}
	require.NoError(t, svc.CreateConductor(&conductor))

	actualizado, err := svc.UpdateConductor(conductor.ID, ConductorPatch{EmpresaID: &otra.ID})
	require.NoError(t, err)
	require.NotNil(t, actualizado.EmpresaID)
	assert.Equal(t, otra.ID, *actualizado.EmpresaID)

	// Cambiar a una empresa inexistente se rechaza
	_, err = svc.UpdateConductor(conductor.ID, ConductorPatch{EmpresaID: ptr(uint(999))})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestGetAllConductoresFiltroPorEmpresa(t *testing.T) {
	db := setupTestDB(t)
	svc := NewConductorService(db, testConfig())
	empresa := seedEmpresa(t, db, "Transportes Andinos", "TA")
	otra := seedEmpresa(t, db, "Transportes del Sur", "TS")

	require.NoError(t, svc.CreateConductor(&models.Conductor{Nombre: "Carlos Pérez", Cedula: "1032456789", EmpresaID: &empresa.ID}))
	require.NoError(t, svc.CreateConductor(&models.Conductor{Nombre: "Ana Gómez", Cedula: "52123456", EmpresaID: &otra.ID}))

	conductores, total, err := svc.GetAllConductores(1, 10, ConductorFilter{EmpresaID: &empresa.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, conductores, 1)
	assert.Equal(t, "Carlos Pérez", conductores[0].Nombre)

	// Búsqueda por cédula
	conductores, _, err = svc.GetAllConductores(1, 10, ConductorFilter{Search: "52123"})
	require.NoError(t, err)
	require.Len(t, conductores, 1)
	assert.Equal(t, "Ana Gómez", conductores[0].Nombre)
}

func TestDeleteConductorEsLogico(t *testing.T) {
	db := setupTestDB(t)
	svc := NewConductorService(db, testConfig())

	conductor := models.Conductor{Nombre: "Carlos Pérez"}
	require.NoError(t, svc.CreateConductor(&conductor))
	require.NoError(t, svc.DeleteConductor(conductor.ID))

	var fila models.Conductor
	require.NoError(t, db.First(&fila, conductor.ID).Error)
	assert.False(t, fila.Activo)
}
