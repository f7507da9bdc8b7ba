package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
)

// armarEscenario siembra dos empresas con registros y novedades en la ventana
func armarEscenario(t *testing.T) InterfaceStatsService {
	t.Helper()

	db := setupTestDB(t)
	svc := NewStatsService(db, testConfig(), nil)

	andinos := seedEmpresa(t, db, "Transportes Andinos", "TA")
	sur := seedEmpresa(t, db, "Transportes del Sur", "TS")

	critica := models.TipoNovedad{Nombre: "Accidente", Severidad: models.SeveridadCritica, Activo: true}
	require.NoError(t, db.Create(&critica).Error)
	media := models.TipoNovedad{Nombre: "Retraso", Severidad: models.SeveridadMedia, Activo: true}
	require.NoError(t, db.Create(&media).Error)

	conductor := models.Conductor{Nombre: "Carlos Pérez", Activo: true}
	require.NoError(t, db.Create(&conductor).Error)

	hoy := time.Now().Truncate(24 * time.Hour)

	// Andinos: tres registros, dos con novedad
	r1 := models.Registro{Fecha: hoy.AddDate(0, 0, -1), EmpresaID: andinos.ID, Vehiculo: "TA-01",
		HoraInicio: "05:30", HoraFin: "13:45", Servicio: "urbano", TipoNovedadID: &critica.ID, ConductorID: &conductor.ID}
	r2 := models.Registro{Fecha: hoy.AddDate(0, 0, -2), EmpresaID: andinos.ID, Vehiculo: "TA-02",
		HoraInicio: "05:45", HoraFin: "14:00", Servicio: "urbano", TipoNovedadID: &media.ID}
	r3 := models.Registro{Fecha: hoy.AddDate(0, 0, -2), EmpresaID: andinos.ID, Vehiculo: "TA-01",
		HoraInicio: "14:00", HoraFin: "22:00", Servicio: "urbano"}
	// Sur: un registro sin novedad
	r4 := models.Registro{Fecha: hoy.AddDate(0, 0, -3), EmpresaID: sur.ID, Vehiculo: "TS-01",
		HoraInicio: "06:00", HoraFin: "14:00", Servicio: "intermunicipal"}

	for _, r := range []*models.Registro{&r1, &r2, &r3, &r4} {
		require.NoError(t, db.Create(r).Error)
	}

	return svc
}

// cacheEnMemoria es un doble de InterfaceRedisService respaldado por un mapa
type cacheEnMemoria struct {
	datos map[string][]byte
	hits  int
}

func nuevaCacheEnMemoria() *cacheEnMemoria {
	return &cacheEnMemoria{datos: make(map[string][]byte)}
}

func (c *cacheEnMemoria) Set(key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.datos[key] = raw
	return nil
}

func (c *cacheEnMemoria) Get(key string, dest interface{}) error {
	raw, ok := c.datos[key]
	if !ok {
		return errors.New("clave no encontrada")
	}
	c.hits++
	return json.Unmarshal(raw, dest)
}

func TestGetDashboardStatsUsaLaCache(t *testing.T) {
	db := setupTestDB(t)
	cache := nuevaCacheEnMemoria()
	svc := NewStatsService(db, testConfig(), cache)

	empresa := seedEmpresa(t, db, "Transportes Andinos", "TA")
	hoy := time.Now().Truncate(24 * time.Hour)
	seedRegistro(t, db, empresa.ID, hoy.AddDate(0, 0, -1), "TA-01", nil)

	desde, hasta := VentanaPorDefecto()

	primero, err := svc.GetDashboardStats(desde, hasta)
	require.NoError(t, err)
	assert.Zero(t, cache.hits)
	assert.Len(t, cache.datos, 1)

	// La segunda consulta de la misma ventana sale de la caché, incluso si la
	// base cambió entretanto
	seedRegistro(t, db, empresa.ID, hoy.AddDate(0, 0, -2), "TA-02", nil)
	segundo, err := svc.GetDashboardStats(desde, hasta)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, primero.Counts.TotalRegistros, segundo.Counts.TotalRegistros)
}

func TestGetBasicStats(t *testing.T) {
	svc := armarEscenario(t)

	stats, err := svc.GetBasicStats()
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalRegistros)
	assert.Equal(t, int64(1), stats.TotalConductores)
	assert.Equal(t, int64(3), stats.TotalVehiculos)
	assert.Equal(t, int64(2), stats.TotalNovedades)
}

func TestGetDashboardStats(t *testing.T) {
	svc := armarEscenario(t)

	desde, hasta := VentanaPorDefecto()
	stats, err := svc.GetDashboardStats(desde, hasta)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.Counts.TotalRegistros)

	// Top de empresas ordenado por volumen
	require.NotEmpty(t, stats.TopEmpresas)
	assert.Equal(t, "Transportes Andinos", stats.TopEmpresas[0].Nombre)
	assert.Equal(t, int64(3), stats.TopEmpresas[0].Total)

	// El desglose de severidad respeta el orden del enum
	require.Len(t, stats.SeverityBreakdown, 2)
	assert.Equal(t, models.SeveridadCritica, stats.SeverityBreakdown[0].Severidad)
	assert.Equal(t, models.SeveridadMedia, stats.SeverityBreakdown[1].Severidad)

	// La serie diaria viene en orden cronológico
	require.Len(t, stats.DailySeries, 3)
	assert.LessOrEqual(t, stats.DailySeries[0].Fecha, stats.DailySeries[1].Fecha)

	// Las horas pico agrupan por la hora de inicio
	require.NotEmpty(t, stats.PeakHours)
	assert.Equal(t, 5, stats.PeakHours[0].Hora)
	assert.Equal(t, int64(2), stats.PeakHours[0].Total)

	assert.Len(t, stats.RecentRecords, 4)
}

func TestGetDashboardVentanaExcluyeFueraDeRango(t *testing.T) {
	svc := armarEscenario(t)

	// Ventana en el pasado lejano: sin registros
	desde := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)
	dashboard, err := svc.GetDashboard(desde, hasta)
	require.NoError(t, err)
	assert.Zero(t, dashboard.Counts.TotalRegistros)
	assert.Empty(t, dashboard.TopEmpresas)
}

func TestGetMonthlyComparison(t *testing.T) {
	svc := armarEscenario(t)

	meses, err := svc.GetMonthlyComparison()
	require.NoError(t, err)
	require.Len(t, meses, 12)

	// El primer mes es el actual y concentra los registros recientes
	assert.Equal(t, time.Now().Format("2006-01"), meses[0].Month)
	total := int64(0)
	for _, m := range meses {
		total += m.TotalRecords
	}
	assert.Equal(t, int64(4), total)
}

func TestGetCompanyPerformance(t *testing.T) {
	svc := armarEscenario(t)

	empresas, err := svc.GetCompanyPerformance()
	require.NoError(t, err)
	require.Len(t, empresas, 2)

	// Ordenado por volumen de registros
	assert.Equal(t, "Transportes Andinos", empresas[0].Nombre)
	assert.Equal(t, int64(3), empresas[0].TotalRecords)
	assert.Equal(t, int64(2), empresas[0].WithIncident)
	assert.InDelta(t, 66.66, empresas[0].IncidentPercentage, 0.1)

	assert.Equal(t, int64(1), empresas[1].TotalRecords)
	assert.Zero(t, empresas[1].WithIncident)
	assert.Zero(t, empresas[1].IncidentPercentage)
}

func TestGetCompanyPerformanceIncluyeEmpresasSinRegistros(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStatsService(db, testConfig(), nil)
	seedEmpresa(t, db, "Sin Movimiento", "SM")

	empresas, err := svc.GetCompanyPerformance()
	require.NoError(t, err)
	require.Len(t, empresas, 1)
	assert.Zero(t, empresas[0].TotalRecords)
	assert.Zero(t, empresas[0].IncidentPercentage)
}
