package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/infrastructure/config"
)

// setupTestDB crea una base sqlite en memoria con el esquema completo
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Usuario{},
		&models.Empresa{},
		&models.Ruta{},
		&models.Conductor{},
		&models.TipoNovedad{},
		&models.Registro{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey: "clave-de-prueba",
	}
}

// seedEmpresa inserta una empresa activa
func seedEmpresa(t *testing.T, db *gorm.DB, nombre, prefijo string) models.Empresa {
	t.Helper()
	empresa := models.Empresa{Nombre: nombre, Prefijo: prefijo, Activo: true}
	require.NoError(t, db.Create(&empresa).Error)
	return empresa
}

// seedRegistro inserta un registro mínimo válido para la empresa dada
func seedRegistro(t *testing.T, db *gorm.DB, empresaID uint, fecha time.Time, vehiculo string, tipoNovedadID *uint) models.Registro {
	t.Helper()
	registro := models.Registro{
		Fecha:         fecha,
		EmpresaID:     empresaID,
		Vehiculo:      vehiculo,
		HoraInicio:    "05:30",
		HoraFin:       "13:45",
		Servicio:      "urbano",
		TipoNovedadID: tipoNovedadID,
	}
	require.NoError(t, db.Create(&registro).Error)
	return registro
}

func ptr[T any](v T) *T {
	return &v
}
