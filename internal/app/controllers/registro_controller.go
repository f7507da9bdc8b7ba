package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/domain/services"
	"github.com/Miguel-Alz/trascontrol/internal/domain/services/container"
	"github.com/Miguel-Alz/trascontrol/internal/error/code"
	"github.com/Miguel-Alz/trascontrol/internal/error/response"
)

// InterfaceRegistroController define el controlador de registros
type InterfaceRegistroController interface {
	GetRegistros()
	GetRegistro()
	CreateRegistro()
	UpdateRegistro()
	DeleteRegistro()
	ExportRegistros()
}

// RegistroController maneja la tabla de hechos: la captura pública y la
// gestión autenticada de los registros de turno.
type RegistroController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRegistroController crea un nuevo controlador de registros
func NewRegistroController(ctx *gin.Context, container *container.ServiceContainer) *RegistroController {
	return &RegistroController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateRegistroRequest es la petición de captura de un registro
type CreateRegistroRequest struct {
	Fecha         string `json:"fecha" binding:"required" example:"2026-08-15"`
	EmpresaID     uint   `json:"empresa_id" binding:"required" example:"1"`
	RutaID        *uint  `json:"ruta_id" example:"3"`
	ConductorID   *uint  `json:"conductor_id" example:"7"`
	Vehiculo      string `json:"vehiculo" binding:"required" example:"TLS-042"`
	Tabla         string `json:"tabla" example:"T1"`
	HoraInicio    string `json:"hora_inicio" binding:"required" example:"05:30"`
	HoraFin       string `json:"hora_fin" binding:"required" example:"13:45"`
	Servicio      string `json:"servicio" binding:"required" example:"urbano"`
	TipoNovedadID *uint  `json:"tipo_novedad_id" example:"2"`
	Observaciones string `json:"observaciones" example:"Retraso por cierre vial"`
}

// UpdateRegistroRequest es la petición de actualización parcial de un registro
type UpdateRegistroRequest struct {
	Fecha         *string `json:"fecha"`
	EmpresaID     *uint   `json:"empresa_id"`
	RutaID        *uint   `json:"ruta_id"`
	ConductorID   *uint   `json:"conductor_id"`
	Vehiculo      *string `json:"vehiculo"`
	Tabla         *string `json:"tabla"`
	HoraInicio    *string `json:"hora_inicio"`
	HoraFin       *string `json:"hora_fin"`
	Servicio      *string `json:"servicio"`
	TipoNovedadID *uint   `json:"tipo_novedad_id"`
	Observaciones *string `json:"observaciones"`
}

// HandleRegistroFunc retorna el manejador Gin para el método indicado
func HandleRegistroFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRegistroController(ctx, container)

		switch method {
		case "getRegistros":
			controller.GetRegistros()
		case "getRegistro":
			controller.GetRegistro()
		case "createRegistro":
			controller.CreateRegistro()
		case "updateRegistro":
			controller.UpdateRegistro()
		case "deleteRegistro":
			controller.DeleteRegistro()
		case "exportRegistros":
			controller.ExportRegistros()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido")
		}
	}
}

// parseRegistroFilter arma el filtro del listado desde la query
func (c *RegistroController) parseRegistroFilter() (services.RegistroFilter, bool) {
	var filter services.RegistroFilter

	fechaInicio, err := parseDateQuery(c.Ctx, "fecha_inicio")
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return filter, false
	}
	fechaFin, err := parseDateQuery(c.Ctx, "fecha_fin")
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return filter, false
	}

	filter.FechaInicio = fechaInicio
	filter.FechaFin = fechaFin
	filter.EmpresaID = parseUintQuery(c.Ctx, "empresa_id")
	filter.RutaID = parseUintQuery(c.Ctx, "ruta_id")
	filter.ConductorID = parseUintQuery(c.Ctx, "conductor_id")
	filter.TipoNovedadID = parseUintQuery(c.Ctx, "tipo_novedad_id")
	filter.Vehiculo = c.Ctx.Query("vehiculo")
	filter.ConNovedad = parseBoolQuery(c.Ctx, "con_novedad")
	return filter, true
}

// GetRegistros lista registros
// @Summary      Listar registros
// @Description  Lista registros de turno con filtros por fecha, empresa, ruta, conductor, tipo de novedad y vehículo
// @Tags         Registros
// @Produce      json
// @Param        page query int false "Página, por defecto 1"
// @Param        limit query int false "Tamaño de página, por defecto 10"
// @Param        fecha_inicio query string false "Desde, formato YYYY-MM-DD"
// @Param        fecha_fin query string false "Hasta, formato YYYY-MM-DD"
// @Param        empresa_id query int false "Filtrar por empresa"
// @Param        ruta_id query int false "Filtrar por ruta"
// @Param        conductor_id query int false "Filtrar por conductor"
// @Param        tipo_novedad_id query int false "Filtrar por tipo de novedad"
// @Param        vehiculo query string false "Subcadena del identificador del vehículo"
// @Param        con_novedad query bool false "true solo con novedad, false solo sin novedad"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /registros [get]
// @Security     BearerAuth
func (c *RegistroController) GetRegistros() {
	filter, ok := c.parseRegistroFilter()
	if !ok {
		return
	}
	page, limit := parsePagination(c.Ctx)

	registroService := c.Container.GetService("registro").(services.InterfaceRegistroService)
	registros, total, err := registroService.GetAllRegistros(page, limit, filter)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}

	response.SuccessWithPagination(c.Ctx, registros, models.NewPagination(total, page, limit))
}

// GetRegistro retorna un registro por ID
// @Summary      Obtener registro
// @Tags         Registros
// @Produce      json
// @Param        id path int true "ID del registro"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /registros/{id} [get]
// @Security     BearerAuth
func (c *RegistroController) GetRegistro() {
	id, ok := parseID(c.Ctx)
	if !ok {
		return
	}

	registroService := c.Container.GetService("registro").(services.InterfaceRegistroService)
	registro, err := registroService.GetRegistroByID(id)
	if err != nil {
		failDomain(c.Ctx, err, code.ErrRegistroNoEncontrado, code.ErrValidation)
		return
	}

	response.Success(c.Ctx, registro)
}

// CreateRegistro captura un registro de turno
// @Summary      Crear registro
// @Description  Endpoint público del formulario de captura. Valida campos obligatorios, formato de horas y existencia de las referencias
// @Tags         Registros
// @Accept       json
// @Produce      json
// @Param        request body CreateRegistroRequest true "Datos del registro"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /registros [post]
func (c *RegistroController) CreateRegistro() {
	var req CreateRegistroRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation,
			"Campos obligatorios faltantes: fecha, empresa_id, vehiculo, hora_inicio, hora_fin y servicio son requeridos")
		return
	}

	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		response.ParamError(c.Ctx, "fecha inválida: se espera formato YYYY-MM-DD")
		return
	}

	registro := models.Registro{
		Fecha:         fecha,
		EmpresaID:     req.EmpresaID,
		RutaID:        req.RutaID,
		ConductorID:   req.ConductorID,
		Vehiculo:      req.Vehiculo,
		Tabla:         req.Tabla,
		HoraInicio:    req.HoraInicio,
		HoraFin:       req.HoraFin,
		Servicio:      req.Servicio,
		TipoNovedadID: req.TipoNovedadID,
		Observaciones: req.Observaciones,
	}

	// Si la captura viene de una sesión autenticada se registra el autor
	if userID, exists := c.Ctx.Get("userID"); exists {
		if id, ok := userID.(uint); ok {
			registro.CreadoPor = &id
		}
	}

	registroService := c.Container.GetService("registro").(services.InterfaceRegistroService)
	if err := registroService.CreateRegistro(&registro); err != nil {
		failDomain(c.Ctx, err, code.ErrRegistroNoEncontrado, code.ErrValidation)
		return
	}

	response.Created(c.Ctx, registro, "Registro creado correctamente")
}

// UpdateRegistro actualiza un registro
// @Summary      Actualizar registro
// @Description  Actualización parcial: los campos omitidos conservan su valor; horas y referencias se revalidan
// @Tags         Registros
// @Accept       json
// @Produce      json
// @Param        id path int true "ID del registro"
// @Param        request body UpdateRegistroRequest true "Campos a actualizar"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /registros/{id} [put]
// @Security     BearerAuth
func (c *RegistroController) UpdateRegistro() {
	id, ok := parseID(c.Ctx)
	if !ok {
		return
	}

	var req UpdateRegistroRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Cuerpo de la petición inválido")
		return
	}

	patch := services.RegistroPatch{
		EmpresaID:     req.EmpresaID,
		RutaID:        req.RutaID,
		ConductorID:   req.ConductorID,
		Vehiculo:      req.Vehiculo,
		Tabla:         req.Tabla,
		HoraInicio:    req.HoraInicio,
		HoraFin:       req.HoraFin,
		Servicio:      req.Servicio,
		TipoNovedadID: req.TipoNovedadID,
		Observaciones: req.Observaciones,
	}
	if req.Fecha != nil {
		fecha, err := time.Parse("2006-01-02", *req.Fecha)
		if err != nil {
			response.ParamError(c.Ctx, "fecha inválida: se espera formato YYYY-MM-DD")
			return
		}
		patch.Fecha = &fecha
	}

	registroService := c.Container.GetService("registro").(services.InterfaceRegistroService)
	registro, err := registroService.UpdateRegistro(id, patch)
	if err != nil {
		failDomain(c.Ctx, err, code.ErrRegistroNoEncontrado, code.ErrValidation)
		return
	}

	response.SuccessWithMessage(c.Ctx, registro, "Registro actualizado correctamente")
}

// DeleteRegistro elimina un registro
// @Summary      Eliminar registro
// @Description  Borrado físico del registro
// @Tags         Registros
// @Produce      json
// @Param        id path int true "ID del registro"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /registros/{id} [delete]
// @Security     BearerAuth
func (c *RegistroController) DeleteRegistro() {
	id, ok := parseID(c.Ctx)
	if !ok {
		return
	}

	registroService := c.Container.GetService("registro").(services.InterfaceRegistroService)
	if err := registroService.DeleteRegistro(id); err != nil {
		failDomain(c.Ctx, err, code.ErrRegistroNoEncontrado, code.ErrValidation)
		return
	}

	response.SuccessWithMessage(c.Ctx, nil, "Registro eliminado correctamente")
}

// ExportRegistros descarga el CSV del conjunto filtrado
// @Summary      Exportar registros a CSV
// @Description  Genera el CSV desnormalizado del conjunto filtrado, sin paginar, con los mismos filtros del listado
// @Tags         Registros
// @Produce      text/csv
// @Param        fecha_inicio query string false "Desde, formato YYYY-MM-DD"
// @Param        fecha_fin query string false "Hasta, formato YYYY-MM-DD"
// @Param        empresa_id query int false "Filtrar por empresa"
// @Param        con_novedad query bool false "true solo con novedad, false solo sin novedad"
// @Success      200  {string}  string  "Contenido CSV"
// @Failure      500  {object}  ErrorResponse
// @Router       /registros/export [get]
// @Security     BearerAuth
func (c *RegistroController) ExportRegistros() {
	filter, ok := c.parseRegistroFilter()
	if !ok {
		return
	}

	registroService := c.Container.GetService("registro").(services.InterfaceRegistroService)
	contenido, err := registroService.ExportRegistros(filter)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}

	nombre := fmt.Sprintf("registros_%s.csv", time.Now().Format("20060102_150405"))
	c.Ctx.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Ctx.Data(code.StatusOK, "text/csv; charset=utf-8", contenido)
}
