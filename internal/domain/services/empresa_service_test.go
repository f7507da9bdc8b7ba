package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
)

func TestCreateEmpresaDuplicada(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmpresaService(db, testConfig())

	require.NoError(t, svc.CreateEmpresa(&models.Empresa{Nombre: "Transportes Andinos", Prefijo: "TA"}))

	// Mismo nombre
	err := svc.CreateEmpresa(&models.Empresa{Nombre: "Transportes Andinos", Prefijo: "XX"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	// Mismo prefijo
	err = svc.CreateEmpresa(&models.Empresa{Nombre: "Otra Empresa", Prefijo: "TA"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGetEmpresaByIDNoEncontrada(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmpresaService(db, testConfig())

	_, err := svc.GetEmpresaByID(999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Empresa no encontrada", err.Error())
}

func TestUpdateEmpresaParcheParcial(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmpresaService(db, testConfig())

	empresa := seedEmpresa(t, db, "Transportes Andinos", "TA")

	// Solo se cambia el nombre; el prefijo y el estado se conservan
	actualizada, err := svc.UpdateEmpresa(empresa.ID, EmpresaPatch{Nombre: ptr("Transportes del Norte")})
	require.NoError(t, err)
	assert.Equal(t, "Transportes del Norte", actualizada.Nombre)
	assert.Equal(t, "TA", actualizada.Prefijo)
	assert.True(t, actualizada.Activo)
}

func TestUpdateEmpresaVaciaRefrescaFecha(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmpresaService(db, testConfig())

	empresa := seedEmpresa(t, db, "Transportes Andinos", "TA")
	antes := empresa.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	actualizada, err := svc.UpdateEmpresa(empresa.ID, EmpresaPatch{})
	require.NoError(t, err)
	assert.True(t, actualizada.UpdatedAt.After(antes))
}

func TestUpdateEmpresaConflictoDeNombre(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmpresaService(db, testConfig())

	seedEmpresa(t, db, "Transportes Andinos", "TA")
	otra := seedEmpresa(t, db, "Transportes del Sur", "TS")

	_, err := svc.UpdateEmpresa(otra.ID, EmpresaPatch{Nombre: ptr("Transportes Andinos")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeleteEmpresaEsLogico(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmpresaService(db, testConfig())

	empresa := seedEmpresa(t, db, "Transportes Andinos", "TA")
	require.NoError(t, svc.DeleteEmpresa(empresa.ID))

	// La fila sigue existiendo, solo queda inactiva
	var fila models.Empresa
	require.NoError(t, db.First(&fila, empresa.ID).Error)
	assert.False(t, fila.Activo)

	// Y desaparece del listado público
	activas, err := svc.GetEmpresasActivas()
	require.NoError(t, err)
	assert.Empty(t, activas)
}

func TestEmpresaInsertadaInactivaQuedaInactiva(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmpresaService(db, testConfig())

	seedEmpresa(t, db, "Transportes Andinos", "TA")
	require.NoError(t, db.Create(&models.Empresa{Nombre: "Retirada", Prefijo: "RE", Activo: false}).Error)

	// El INSERT conserva el cero explícito de activo
	var fila models.Empresa
	require.NoError(t, db.Where("nombre = ?", "Retirada").First(&fila).Error)
	assert.False(t, fila.Activo)

	activas, err := svc.GetEmpresasActivas()
	require.NoError(t, err)
	require.Len(t, activas, 1)
	assert.Equal(t, "Transportes Andinos", activas[0].Nombre)
}

func TestGetAllEmpresasPaginacionYFiltro(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmpresaService(db, testConfig())

	seedEmpresa(t, db, "Alfa Transportes", "AT")
	seedEmpresa(t, db, "Beta Buses", "BB")
	inactiva := seedEmpresa(t, db, "Gamma Movilidad", "GM")
	require.NoError(t, svc.DeleteEmpresa(inactiva.ID))

	// Página de tamaño 2: el total cuenta todas las filas del filtro
	empresas, total, err := svc.GetAllEmpresas(1, 2, EmpresaFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, empresas, 2)
	assert.Equal(t, "Alfa Transportes", empresas[0].Nombre)

	// Filtro por estado
	_, total, err = svc.GetAllEmpresas(1, 10, EmpresaFilter{Activo: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Búsqueda por subcadena
	empresas, _, err = svc.GetAllEmpresas(1, 10, EmpresaFilter{Search: "Beta"})
	require.NoError(t, err)
	require.Len(t, empresas, 1)
	assert.Equal(t, "BB", empresas[0].Prefijo)
}
