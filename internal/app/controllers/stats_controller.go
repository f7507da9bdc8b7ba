package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Miguel-Alz/trascontrol/internal/domain/services"
	"github.com/Miguel-Alz/trascontrol/internal/domain/services/container"
	"github.com/Miguel-Alz/trascontrol/internal/error/code"
	"github.com/Miguel-Alz/trascontrol/internal/error/response"
)

// InterfaceStatsController define el controlador de reportes
type InterfaceStatsController interface {
	GetBasicStats()
	GetDashboard()
	GetDashboardStats()
	GetMonthlyComparison()
	GetCompanyPerformance()
}

// StatsController expone los tableros y comparativos de solo lectura
type StatsController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewStatsController crea un nuevo controlador de reportes
func NewStatsController(ctx *gin.Context, container *container.ServiceContainer) *StatsController {
	return &StatsController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleStatsFunc retorna el manejador Gin para el método indicado
func HandleStatsFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewStatsController(ctx, container)

		switch method {
		case "getBasicStats":
			controller.GetBasicStats()
		case "getDashboard":
			controller.GetDashboard()
		case "getDashboardStats":
			controller.GetDashboardStats()
		case "getMonthlyComparison":
			controller.GetMonthlyComparison()
		case "getCompanyPerformance":
			controller.GetCompanyPerformance()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido")
		}
	}
}

// ventana lee fecha_inicio y fecha_fin de la query, con los últimos 30 días
// por defecto
func (c *StatsController) ventana() (time.Time, time.Time, bool) {
	desde, err := parseDateQuery(c.Ctx, "fecha_inicio")
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return time.Time{}, time.Time{}, false
	}
	hasta, err := parseDateQuery(c.Ctx, "fecha_fin")
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return time.Time{}, time.Time{}, false
	}

	defDesde, defHasta := services.VentanaPorDefecto()
	if desde == nil {
		desde = &defDesde
	}
	if hasta == nil {
		hasta = &defHasta
	}
	if hasta.Before(*desde) {
		response.ParamError(c.Ctx, "la ventana es inválida: fecha_fin debe ser mayor o igual a fecha_inicio")
		return time.Time{}, time.Time{}, false
	}
	return *desde, *hasta, true
}

// GetBasicStats retorna los contadores globales
// @Summary      Estadísticas básicas
// @Description  Contadores globales de registros, conductores, vehículos y novedades
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /stats [get]
// @Security     BearerAuth
func (c *StatsController) GetBasicStats() {
	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	stats, err := statsService.GetBasicStats()
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}
	response.Success(c.Ctx, stats)
}

// GetDashboard retorna el tablero básico
// @Summary      Tablero básico
// @Description  Contadores, top de empresas, serie diaria y registros recientes de la ventana
// @Tags         Stats
// @Produce      json
// @Param        fecha_inicio query string false "Desde, formato YYYY-MM-DD; por defecto hace 30 días"
// @Param        fecha_fin query string false "Hasta, formato YYYY-MM-DD; por defecto hoy"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /stats/dashboard [get]
// @Security     BearerAuth
func (c *StatsController) GetDashboard() {
	desde, hasta, ok := c.ventana()
	if !ok {
		return
	}

	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	dashboard, err := statsService.GetDashboard(desde, hasta)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}
	response.Success(c.Ctx, dashboard)
}

// GetDashboardStats retorna el tablero avanzado
// @Summary      Tablero avanzado
// @Description  Tablero completo con tops, horas pico, desglose por severidad y serie diaria; se cachea por ventana
// @Tags         Stats
// @Produce      json
// @Param        fecha_inicio query string false "Desde, formato YYYY-MM-DD; por defecto hace 30 días"
// @Param        fecha_fin query string false "Hasta, formato YYYY-MM-DD; por defecto hoy"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /stats/dashboard-advanced [get]
// @Security     BearerAuth
func (c *StatsController) GetDashboardStats() {
	desde, hasta, ok := c.ventana()
	if !ok {
		return
	}

	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	stats, err := statsService.GetDashboardStats(desde, hasta)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}
	response.Success(c.Ctx, stats)
}

// GetMonthlyComparison retorna la comparación de los últimos 12 meses
// @Summary      Comparativo mensual
// @Description  Totales, novedades y conteos únicos de conductores y vehículos por mes, del más reciente al más antiguo
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /stats/monthly-comparison [get]
// @Security     BearerAuth
func (c *StatsController) GetMonthlyComparison() {
	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	meses, err := statsService.GetMonthlyComparison()
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}
	response.Success(c.Ctx, meses)
}

// GetCompanyPerformance retorna el desempeño por empresa
// @Summary      Desempeño por empresa
// @Description  Totales, porcentaje de novedades y conteos únicos de los últimos 30 días para cada empresa activa
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /stats/company-performance [get]
// @Security     BearerAuth
func (c *StatsController) GetCompanyPerformance() {
	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	empresas, err := statsService.GetCompanyPerformance()
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}
	response.Success(c.Ctx, empresas)
}
