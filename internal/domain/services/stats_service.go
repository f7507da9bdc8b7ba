package services

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/infrastructure/config"
	"github.com/Miguel-Alz/trascontrol/pkg/logger"
)

// ConteoRegistros son los contadores agregados de registros
type ConteoRegistros struct {
	TotalRegistros   int64 `json:"totalRegistros"`
	TotalConductores int64 `json:"totalConductores"`
	TotalVehiculos   int64 `json:"totalVehiculos"`
	TotalNovedades   int64 `json:"totalNovedades"`
}

// TopEmpresa es una empresa con su conteo de registros
type TopEmpresa struct {
	Nombre  string `json:"nombre"`
	Prefijo string `json:"prefijo"`
	Total   int64  `json:"total"`
}

// TopNovedad es un tipo de novedad con su conteo
type TopNovedad struct {
	Nombre    string `json:"nombre"`
	Severidad string `json:"severidad"`
	Color     string `json:"color"`
	Total     int64  `json:"total"`
}

// TopItem es un conteo genérico por nombre (rutas, conductores, vehículos)
type TopItem struct {
	Nombre string `json:"nombre"`
	Total  int64  `json:"total"`
}

// PuntoDiario es un punto de la serie diaria
type PuntoDiario struct {
	Fecha string `json:"fecha"`
	Total int64  `json:"total"`
}

// HoraPico es el conteo de registros por hora de inicio
type HoraPico struct {
	Hora  int   `json:"hora"`
	Total int64 `json:"total"`
}

// SeveridadConteo es el desglose de novedades por severidad, en orden
// critica > alta > media > baja
type SeveridadConteo struct {
	Severidad models.Severidad `json:"severidad"`
	Total     int64            `json:"total"`
}

// DashboardStats es la respuesta del tablero avanzado
type DashboardStats struct {
	Desde             string            `json:"desde"`
	Hasta             string            `json:"hasta"`
	Counts            ConteoRegistros   `json:"counts"`
	TopEmpresas       []TopEmpresa      `json:"topEmpresas"`
	TopNovedades      []TopNovedad      `json:"topNovedades"`
	DailySeries       []PuntoDiario     `json:"dailySeries"`
	TopRutas          []TopItem         `json:"topRutas"`
	TopConductores    []TopItem         `json:"topConductores"`
	TopVehiculos      []TopItem         `json:"topVehiculos"`
	PeakHours         []HoraPico        `json:"peakHours"`
	SeverityBreakdown []SeveridadConteo `json:"severityBreakdown"`
	RecentRecords     []models.Registro `json:"recentRecords"`
}

// DashboardResumen es la respuesta del tablero básico
type DashboardResumen struct {
	Desde         string            `json:"desde"`
	Hasta         string            `json:"hasta"`
	Counts        ConteoRegistros   `json:"counts"`
	TopEmpresas   []TopEmpresa      `json:"topEmpresas"`
	DailySeries   []PuntoDiario     `json:"dailySeries"`
	RecentRecords []models.Registro `json:"recentRecords"`
}

// MesComparativo es un mes de la comparación mensual
type MesComparativo struct {
	Month          string `json:"month"`
	TotalRecords   int64  `json:"totalRecords"`
	WithIncident   int64  `json:"withIncident"`
	UniqueDrivers  int64  `json:"uniqueDrivers"`
	UniqueVehicles int64  `json:"uniqueVehicles"`
}

// EmpresaRendimiento es el desempeño de una empresa activa en la ventana
type EmpresaRendimiento struct {
	EmpresaID          uint    `json:"empresa_id"`
	Nombre             string  `json:"nombre"`
	Prefijo            string  `json:"prefijo"`
	TotalRecords       int64   `json:"totalRecords"`
	WithIncident       int64   `json:"withIncident"`
	IncidentPercentage float64 `json:"incidentPercentage"`
	UniqueDrivers      int64   `json:"uniqueDrivers"`
	UniqueVehicles     int64   `json:"uniqueVehicles"`
}

// InterfaceStatsService define el servicio de reportes
type InterfaceStatsService interface {
	GetBasicStats() (*ConteoRegistros, error)
	GetDashboard(desde, hasta time.Time) (*DashboardResumen, error)
	GetDashboardStats(desde, hasta time.Time) (*DashboardStats, error)
	GetMonthlyComparison() ([]MesComparativo, error)
	GetCompanyPerformance() ([]EmpresaRendimiento, error)
}

// StatsService calcula las agregaciones del tablero. Todas las consultas son
// de solo lectura; el tablero avanzado se cachea en Redis por ventana.
type StatsService struct {
	DB     *gorm.DB
	Config *config.Config
	Cache  InterfaceRedisService // nil deshabilita la caché
}

// TTL de la caché del tablero avanzado
const dashboardCacheTTL = 60 * time.Second

// NewStatsService crea un nuevo servicio de reportes
func NewStatsService(db *gorm.DB, cfg *config.Config, cache InterfaceRedisService) InterfaceStatsService {
	return &StatsService{
		DB:     db,
		Config: cfg,
		Cache:  cache,
	}
}

// VentanaPorDefecto retorna la ventana de los últimos 30 días
func VentanaPorDefecto() (time.Time, time.Time) {
	hasta := time.Now().Truncate(24 * time.Hour)
	desde := hasta.AddDate(0, 0, -30)
	return desde, hasta
}

func (s *StatsService) enVentana(desde, hasta time.Time) *gorm.DB {
	return s.DB.Model(&models.Registro{}).Where("fecha >= ? AND fecha <= ?", desde, hasta)
}

func (s *StatsService) conteos(desde, hasta time.Time) (ConteoRegistros, error) {
	var c ConteoRegistros

	if err := s.enVentana(desde, hasta).Count(&c.TotalRegistros).Error; err != nil {
		return c, err
	}
	if err := s.enVentana(desde, hasta).
		Where("conductor_id IS NOT NULL").
		Distinct("conductor_id").Count(&c.TotalConductores).Error; err != nil {
		return c, err
	}
	if err := s.enVentana(desde, hasta).
		Distinct("vehiculo").Count(&c.TotalVehiculos).Error; err != nil {
		return c, err
	}
	if err := s.enVentana(desde, hasta).
		Where("tipo_novedad_id IS NOT NULL").Count(&c.TotalNovedades).Error; err != nil {
		return c, err
	}
	return c, nil
}

// GetBasicStats retorna los contadores globales, sin ventana de fechas
func (s *StatsService) GetBasicStats() (*ConteoRegistros, error) {
	var c ConteoRegistros

	if err := s.DB.Model(&models.Registro{}).Count(&c.TotalRegistros).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Registro{}).
		Where("conductor_id IS NOT NULL").
		Distinct("conductor_id").Count(&c.TotalConductores).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Registro{}).
		Distinct("vehiculo").Count(&c.TotalVehiculos).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Registro{}).
		Where("tipo_novedad_id IS NOT NULL").Count(&c.TotalNovedades).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *StatsService) topEmpresas(desde, hasta time.Time, limit int) ([]TopEmpresa, error) {
	var out []TopEmpresa
	err := s.enVentana(desde, hasta).
		Select("empresas.nombre AS nombre, empresas.prefijo AS prefijo, COUNT(*) AS total").
		Joins("JOIN empresas ON empresas.id = registros.empresa_id").
		Group("empresas.id, empresas.nombre, empresas.prefijo").
		Order("total DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (s *StatsService) topNovedades(desde, hasta time.Time, limit int) ([]TopNovedad, error) {
	var out []TopNovedad
	err := s.enVentana(desde, hasta).
		Select("tipo_novedades.nombre AS nombre, tipo_novedades.severidad AS severidad, tipo_novedades.color AS color, COUNT(*) AS total").
		Joins("JOIN tipo_novedades ON tipo_novedades.id = registros.tipo_novedad_id").
		Group("tipo_novedades.id, tipo_novedades.nombre, tipo_novedades.severidad, tipo_novedades.color").
		Order("total DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (s *StatsService) serieDiaria(desde, hasta time.Time) ([]PuntoDiario, error) {
	var filas []struct {
		Fecha time.Time
		Total int64
	}
	err := s.enVentana(desde, hasta).
		Select("fecha, COUNT(*) AS total").
		Group("fecha").
		Order("fecha ASC").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}

	out := make([]PuntoDiario, 0, len(filas))
	for _, f := range filas {
		out = append(out, PuntoDiario{Fecha: f.Fecha.Format("2006-01-02"), Total: f.Total})
	}
	return out, nil
}

func (s *StatsService) topRutas(desde, hasta time.Time, limit int) ([]TopItem, error) {
	var out []TopItem
	err := s.enVentana(desde, hasta).
		Select("rutas.nombre AS nombre, COUNT(*) AS total").
		Joins("JOIN rutas ON rutas.id = registros.ruta_id").
		Group("rutas.id, rutas.nombre").
		Order("total DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (s *StatsService) topConductores(desde, hasta time.Time, limit int) ([]TopItem, error) {
	var out []TopItem
	err := s.enVentana(desde, hasta).
		Select("conductores.nombre AS nombre, COUNT(*) AS total").
		Joins("JOIN conductores ON conductores.id = registros.conductor_id").
		Group("conductores.id, conductores.nombre").
		Order("total DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (s *StatsService) topVehiculos(desde, hasta time.Time, limit int) ([]TopItem, error) {
	var out []TopItem
	err := s.enVentana(desde, hasta).
		Select("vehiculo AS nombre, COUNT(*) AS total").
		Group("vehiculo").
		Order("total DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// horasPico agrupa por la hora extraída de hora_inicio (formato HH:MM)
func (s *StatsService) horasPico(desde, hasta time.Time) ([]HoraPico, error) {
	var filas []struct {
		Hora  string
		Total int64
	}
	err := s.enVentana(desde, hasta).
		Select("SUBSTR(hora_inicio, 1, 2) AS hora, COUNT(*) AS total").
		Group("hora").
		Order("total DESC").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}

	out := make([]HoraPico, 0, len(filas))
	for _, f := range filas {
		hora, err := strconv.Atoi(f.Hora)
		if err != nil {
			continue
		}
		out = append(out, HoraPico{Hora: hora, Total: f.Total})
	}
	return out, nil
}

func (s *StatsService) desgloseSeveridad(desde, hasta time.Time) ([]SeveridadConteo, error) {
	var filas []SeveridadConteo
	err := s.enVentana(desde, hasta).
		Select("tipo_novedades.severidad AS severidad, COUNT(*) AS total").
		Joins("JOIN tipo_novedades ON tipo_novedades.id = registros.tipo_novedad_id").
		Group("tipo_novedades.severidad").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}

	conteos := make(map[models.Severidad]int64, len(filas))
	for _, f := range filas {
		conteos[f.Severidad] = f.Total
	}

	// El orden lo define el enum, no la consulta
	out := make([]SeveridadConteo, 0, len(filas))
	for _, sev := range models.SeveridadesOrdenadas() {
		if total, ok := conteos[sev]; ok {
			out = append(out, SeveridadConteo{Severidad: sev, Total: total})
		}
	}
	return out, nil
}

func (s *StatsService) recientes(desde, hasta time.Time, limit int) ([]models.Registro, error) {
	var registros []models.Registro
	err := s.enVentana(desde, hasta).
		Preload("Empresa").Preload("Ruta").Preload("Conductor").Preload("TipoNovedad").
		Order("fecha_creacion DESC").
		Limit(limit).
		Find(&registros).Error
	return registros, err
}

// GetDashboard retorna el tablero básico: contadores, top de empresas,
// serie diaria y registros recientes.
func (s *StatsService) GetDashboard(desde, hasta time.Time) (*DashboardResumen, error) {
	counts, err := s.conteos(desde, hasta)
	if err != nil {
		return nil, err
	}
	topEmpresas, err := s.topEmpresas(desde, hasta, 5)
	if err != nil {
		return nil, err
	}
	serie, err := s.serieDiaria(desde, hasta)
	if err != nil {
		return nil, err
	}
	recientes, err := s.recientes(desde, hasta, 10)
	if err != nil {
		return nil, err
	}

	return &DashboardResumen{
		Desde:         desde.Format("2006-01-02"),
		Hasta:         hasta.Format("2006-01-02"),
		Counts:        counts,
		TopEmpresas:   topEmpresas,
		DailySeries:   serie,
		RecentRecords: recientes,
	}, nil
}

// GetDashboardStats retorna el tablero avanzado completo. El resultado se
// cachea en Redis por ventana; si Redis no responde se consulta directo.
func (s *StatsService) GetDashboardStats(desde, hasta time.Time) (*DashboardStats, error) {
	cacheKey := fmt.Sprintf("stats:dashboard:%s:%s", desde.Format("2006-01-02"), hasta.Format("2006-01-02"))

	if s.Cache != nil {
		var cached DashboardStats
		if err := s.Cache.Get(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	counts, err := s.conteos(desde, hasta)
	if err != nil {
		return nil, err
	}
	topEmpresas, err := s.topEmpresas(desde, hasta, 5)
	if err != nil {
		return nil, err
	}
	topNovedades, err := s.topNovedades(desde, hasta, 5)
	if err != nil {
		return nil, err
	}
	serie, err := s.serieDiaria(desde, hasta)
	if err != nil {
		return nil, err
	}
	topRutas, err := s.topRutas(desde, hasta, 5)
	if err != nil {
		return nil, err
	}
	topConductores, err := s.topConductores(desde, hasta, 5)
	if err != nil {
		return nil, err
	}
	topVehiculos, err := s.topVehiculos(desde, hasta, 5)
	if err != nil {
		return nil, err
	}
	horas, err := s.horasPico(desde, hasta)
	if err != nil {
		return nil, err
	}
	severidades, err := s.desgloseSeveridad(desde, hasta)
	if err != nil {
		return nil, err
	}
	recientes, err := s.recientes(desde, hasta, 10)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Desde:             desde.Format("2006-01-02"),
		Hasta:             hasta.Format("2006-01-02"),
		Counts:            counts,
		TopEmpresas:       topEmpresas,
		TopNovedades:      topNovedades,
		DailySeries:       serie,
		TopRutas:          topRutas,
		TopConductores:    topConductores,
		TopVehiculos:      topVehiculos,
		PeakHours:         horas,
		SeverityBreakdown: severidades,
		RecentRecords:     recientes,
	}

	if s.Cache != nil {
		if err := s.Cache.Set(cacheKey, stats, dashboardCacheTTL); err != nil {
			logger.Warning("no se pudo cachear el tablero: %v", err)
		}
	}

	return stats, nil
}

// GetMonthlyComparison retorna los últimos 12 meses, del más reciente al más
// antiguo.
func (s *StatsService) GetMonthlyComparison() ([]MesComparativo, error) {
	ahora := time.Now()
	inicioMes := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location())

	out := make([]MesComparativo, 0, 12)
	for i := 0; i < 12; i++ {
		desde := inicioMes.AddDate(0, -i, 0)
		hasta := desde.AddDate(0, 1, 0).AddDate(0, 0, -1)

		var fila struct {
			Total       int64
			ConNovedad  int64
			Conductores int64
			Vehiculos   int64
		}
		err := s.DB.Model(&models.Registro{}).
			Select("COUNT(*) AS total, " +
				"COALESCE(SUM(CASE WHEN tipo_novedad_id IS NOT NULL THEN 1 ELSE 0 END), 0) AS con_novedad, " +
				"COUNT(DISTINCT conductor_id) AS conductores, " +
				"COUNT(DISTINCT vehiculo) AS vehiculos").
			Where("fecha >= ? AND fecha <= ?", desde, hasta).
			Scan(&fila).Error
		if err != nil {
			return nil, err
		}

		out = append(out, MesComparativo{
			Month:          desde.Format("2006-01"),
			TotalRecords:   fila.Total,
			WithIncident:   fila.ConNovedad,
			UniqueDrivers:  fila.Conductores,
			UniqueVehicles: fila.Vehiculos,
		})
	}
	return out, nil
}

// GetCompanyPerformance retorna el desempeño de las empresas activas en los
// últimos 30 días.
func (s *StatsService) GetCompanyPerformance() ([]EmpresaRendimiento, error) {
	desde, hasta := VentanaPorDefecto()

	var filas []struct {
		EmpresaID   uint
		Nombre      string
		Prefijo     string
		Total       int64
		ConNovedad  int64
		Conductores int64
		Vehiculos   int64
	}
	err := s.DB.Table("empresas").
		Select("empresas.id AS empresa_id, empresas.nombre AS nombre, empresas.prefijo AS prefijo, "+
			"COUNT(registros.id) AS total, "+
			"COALESCE(SUM(CASE WHEN registros.tipo_novedad_id IS NOT NULL THEN 1 ELSE 0 END), 0) AS con_novedad, "+
			"COUNT(DISTINCT registros.conductor_id) AS conductores, "+
			"COUNT(DISTINCT registros.vehiculo) AS vehiculos").
		Joins("LEFT JOIN registros ON registros.empresa_id = empresas.id AND registros.fecha >= ? AND registros.fecha <= ?", desde, hasta).
		Where("empresas.activo = ?", true).
		Group("empresas.id, empresas.nombre, empresas.prefijo").
		Order("total DESC").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}

	out := make([]EmpresaRendimiento, 0, len(filas))
	for _, f := range filas {
		porcentaje := 0.0
		if f.Total > 0 {
			porcentaje = float64(f.ConNovedad) / float64(f.Total) * 100
		}
		out = append(out, EmpresaRendimiento{
			EmpresaID:          f.EmpresaID,
			Nombre:             f.Nombre,
			Prefijo:            f.Prefijo,
			TotalRecords:       f.Total,
			WithIncident:       f.ConNovedad,
			IncidentPercentage: porcentaje,
			UniqueDrivers:      f.Conductores,
			UniqueVehicles:     f.Vehiculos,
		})
	}
	return out, nil
}
