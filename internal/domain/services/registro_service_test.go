package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
)

func fecha(dia string) time.Time {
	f, err := time.Parse("2006-01-02", dia)
	if err != nil {
		panic(err)
	}
	return f
}

func TestCreateRegistroCamposObligatorios(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistroService(db, testConfig())

	err := svc.CreateRegistro(&models.Registro{Vehiculo: "TA-01"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Campos obligatorios faltantes")
}

func TestCreateRegistroHorasInvalidas(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistroService(db, testConfig())
	empresa := seedEmpresa(t, db, "Transportes Andinos", "TA")

	base := models.Registro{
		Fecha:     fecha("2026-08-15"),
		EmpresaID: empresa.ID,
		Vehiculo:  "TA-01",
		Servicio:  "urbano",
	}

	// Formato inválido
	r := base
	r.HoraInicio = "5:3"
	r.HoraFin = "13:45"
	err := svc.CreateRegistro(&r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	// Fin antes del inicio
	r = base
	r.HoraInicio = "13:45"
	r.HoraFin = "05:30"
	err = svc.CreateRegistro(&r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "hora_fin")

	// Turno de duración cero es válido
	r = base
	r.HoraInicio = "08:00"
	r.HoraFin = "08:00"
	assert.NoError(t, svc.CreateRegistro(&r))
}

func TestCreateRegistroReferenciaInvalida(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistroService(db, testConfig())
	empresa := seedEmpresa(t, db, "Transportes Andinos", "TA")

	// Empresa inexistente
	err := svc.CreateRegistro(&models.Registro{
		Fecha:      fecha("2026-08-15"),
		EmpresaID:  999,
		Vehiculo:   "TA-01",
		HoraInicio: "05:30",
		HoraFin:    "13:45",
		Servicio:   "urbano",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidReference)

	// Tipo de novedad inexistente
	err = svc.CreateRegistro(&models.Registro{
		Fecha:         fecha("2026-08-15"),
		EmpresaID:     empresa.ID,
		Vehiculo:      "TA-01",
		HoraInicio:    "05:30",
		HoraFin:       "13:45",
		Servicio:      "urbano",
		TipoNovedadID: ptr(uint(999)),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestCreateRegistroValido(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistroService(db, testConfig())
	empresa := seedEmpresa(t, db, "Transportes Andinos", "TA")

	registro := models.Registro{
		Fecha:      fecha("2026-08-15"),
		EmpresaID:  empresa.ID,
		Vehiculo:   "TA-01",
		HoraInicio: "05:30",
		HoraFin:    "13:45",
		Servicio:   "urbano",
	}
	require.NoError(t, svc.CreateRegistro(&registro))
	assert.NotZero(t, registro.ID)

	cargado, err := svc.GetRegistroByID(registro.ID)
	require.NoError(t, err)
	require.NotNil(t, cargado.Empresa)
	assert.Equal(t, "Transportes Andinos", cargado.Empresa.Nombre)
}

func TestUpdateRegistroParcheYRevalidacion(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistroService(db, testConfig())
	empresa := seedEmpresa(t, db, "Transportes Andinos", "TA")
	registro := seedRegistro(t, db, empresa.ID, fecha("2026-08-15"), "TA-01", nil)

	// Cambiar solo el vehículo conserva el resto
	actualizado, err := svc.UpdateRegistro(registro.ID, RegistroPatch{Vehiculo: ptr("TA-02")})
	require.NoError(t, err)
	assert.Equal(t, "TA-02", actualizado.Vehiculo)
	assert.Equal(t, "05:30", actualizado.HoraInicio)

	// Un parche que invierte las horas se rechaza
	_, err = svc.UpdateRegistro(registro.ID, RegistroPatch{HoraFin: ptr("04:00")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	// Un parche con referencia inexistente se rechaza
	_, err = svc.UpdateRegistro(registro.ID, RegistroPatch{EmpresaID: ptr(uint(999))})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestDeleteRegistroEsFisico(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistroService(db, testConfig())
	empresa := seedEmpresa(t, db, "Transportes Andinos", "TA")
	registro := seedRegistro(t, db, empresa.ID, fecha("2026-08-15"), "TA-01", nil)

	require.NoError(t, svc.DeleteRegistro(registro.ID))

	var count int64
	db.Model(&models.Registro{}).Where("id = ?", registro.ID).Count(&count)
	assert.Zero(t, count)

	// Borrar de nuevo reporta no encontrado
	err := svc.DeleteRegistro(registro.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllRegistrosFiltros(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistroService(db, testConfig())
	empresa := seedEmpresa(t, db, "Transportes Andinos", "TA")
	otra := seedEmpresa(t, db, "Transportes del Sur", "TS")

	tipo := models.TipoNovedad{Nombre: "Retraso", Severidad: models.SeveridadMedia, Activo: true}
	require.NoError(t, db.Create(&tipo).Error)

	seedRegistro(t, db, empresa.ID, fecha("2026-08-10"), "TA-01", nil)
	seedRegistro(t, db, empresa.ID, fecha("2026-08-12"), "TA-02", &tipo.ID)
	seedRegistro(t, db, otra.ID, fecha("2026-08-14"), "TS-01", nil)

	// Por empresa
	_, total, err := svc.GetAllRegistros(1, 10, RegistroFilter{EmpresaID: &empresa.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Por rango de fechas
	desde := fecha("2026-08-11")
	_, total, err = svc.GetAllRegistros(1, 10, RegistroFilter{FechaInicio: &desde})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Solo con novedad
	registros, total, err := svc.GetAllRegistros(1, 10, RegistroFilter{ConNovedad: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, registros, 1)
	assert.Equal(t, "TA-02", registros[0].Vehiculo)

	// Orden del más reciente al más antiguo
	registros, _, err = svc.GetAllRegistros(1, 10, RegistroFilter{})
	require.NoError(t, err)
	require.Len(t, registros, 3)
	assert.Equal(t, "TS-01", registros[0].Vehiculo)
}

func TestExportRegistrosCSV(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistroService(db, testConfig())
	empresa := seedEmpresa(t, db, "Transportes Andinos", "TA")

	tipo := models.TipoNovedad{Nombre: "Varada mecánica", Severidad: models.SeveridadAlta, Activo: true}
	require.NoError(t, db.Create(&tipo).Error)
	seedRegistro(t, db, empresa.ID, fecha("2026-08-15"), "TA-01", &tipo.ID)

	contenido, err := svc.ExportRegistros(RegistroFilter{})
	require.NoError(t, err)

	lineas := strings.Split(strings.TrimSpace(string(contenido)), "\n")
	require.Len(t, lineas, 2)
	assert.Contains(t, lineas[0], "empresa")
	assert.Contains(t, lineas[0], "hora_inicio")
	assert.Contains(t, lineas[1], "Transportes Andinos")
	assert.Contains(t, lineas[1], "TA-01")
	assert.Contains(t, lineas[1], "alta")
}
