package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/domain/services"
	"github.com/Miguel-Alz/trascontrol/internal/domain/services/container"
	"github.com/Miguel-Alz/trascontrol/internal/error/code"
	"github.com/Miguel-Alz/trascontrol/internal/error/response"
)

// InterfaceRutaController define el controlador de rutas
type InterfaceRutaController interface {
	GetRutas()
	GetRuta()
	CreateRuta()
	UpdateRuta()
	DeleteRuta()
}

// RutaController maneja el CRUD de rutas
type RutaController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRutaController crea un nuevo controlador de rutas
func NewRutaController(ctx *gin.Context, container *container.ServiceContainer) *RutaController {
	return &RutaController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateRutaRequest es la petición de alta de ruta
type CreateRutaRequest struct {
	Nombre      string `json:"nombre" binding:"required" example:"Ruta 105 Centro"`
	Numero      string `json:"numero" example:"105"`
	Descripcion string `json:"descripcion" example:"Corredor del centro"`
	Origen      string `json:"origen" example:"Portal Norte"`
	Destino     string `json:"destino" example:"Plaza Central"`
}

// UpdateRutaRequest es la petición de actualización parcial de ruta
type UpdateRutaRequest struct {
	Nombre      *string `json:"nombre"`
	Numero      *string `json:"numero"`
	Descripcion *string `json:"descripcion"`
	Origen      *string `json:"origen"`
	Destino     *string `json:"destino"`
	Activo      *bool   `json:"activo"`
}

// HandleRutaFunc retorna el manejador Gin para el método indicado
func HandleRutaFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRutaController(ctx, container)

		switch method {
		case "getRutas":
			controller.GetRutas()
		case "getRuta":
			controller.GetRuta()
		case "createRuta":
			controller.CreateRuta()
		case "updateRuta":
			controller.UpdateRuta()
		case "deleteRuta":
			controller.DeleteRuta()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido")
		}
	}
}

// GetRutas lista rutas
// @Summary      Listar rutas
// @Description  Lista rutas con búsqueda, filtro por estado y paginación. Sin token solo retorna las activas
// @Tags         Rutas
// @Produce      json
// @Param        page query int false "Página, por defecto 1"
// @Param        limit query int false "Tamaño de página, por defecto 10"
// @Param        search query string false "Subcadena sobre nombre, número, origen o destino"
// @Param        activo query bool false "Filtrar por estado"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /rutas [get]
func (c *RutaController) GetRutas() {
	rutaService := c.Container.GetService("ruta").(services.InterfaceRutaService)

	if _, authenticated := c.Ctx.Get("claims"); !authenticated {
		rutas, err := rutaService.GetRutasActivas()
		if err != nil {
			response.Fail(c.Ctx, code.ErrDatabase)
			return
		}
		response.Success(c.Ctx, rutas)
		return
	}

	page, limit := parsePagination(c.Ctx)
	filter := services.RutaFilter{
		Search: c.Ctx.Query("search"),
		Activo: parseBoolQuery(c.Ctx, "activo"),
	}

	rutas, total, err := rutaService.GetAllRutas(page, limit, filter)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}

	response.SuccessWithPagination(c.Ctx, rutas, models.NewPagination(total, page, limit))
}

// GetRuta retorna una ruta por ID
// @Summary      Obtener ruta
// @Tags         Rutas
// @Produce      json
// @Param        id path int true "ID de la ruta"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /rutas/{id} [get]
// @Security     BearerAuth
func (c *RutaController) GetRuta() {
	id, ok := parseID(c.Ctx)
	if !ok {
		return
	}

	rutaService := c.Container.GetService("ruta").(services.InterfaceRutaService)
	ruta, err := rutaService.GetRutaByID(id)
	if err != nil {
		failDomain(c.Ctx, err, code.ErrRutaNoEncontrada, code.ErrValidation)
		return
	}

	response.Success(c.Ctx, ruta)
}

// CreateRuta crea una ruta
// @Summary      Crear ruta
// @Tags         Rutas
// @Accept       json
// @Produce      json
// @Param        request body CreateRutaRequest true "Datos de la ruta"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /rutas [post]
// @Security     BearerAuth
func (c *RutaController) CreateRuta() {
	var req CreateRutaRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "nombre es requerido")
		return
	}

	ruta := models.Ruta{
		Nombre:      req.Nombre,
		Numero:      req.Numero,
		Descripcion: req.Descripcion,
		Origen:      req.Origen,
		Destino:     req.Destino,
	}

	rutaService := c.Container.GetService("ruta").(services.InterfaceRutaService)
	if err := rutaService.CreateRuta(&ruta); err != nil {
		failDomain(c.Ctx, err, code.ErrRutaNoEncontrada, code.ErrValidation)
		return
	}

	response.Created(c.Ctx, ruta, "Ruta creada correctamente")
}

// UpdateRuta actualiza una ruta
// @Summary      Actualizar ruta
// @Description  Actualización parcial: los campos omitidos conservan su valor
// @Tags         Rutas
// @Accept       json
// @Produce      json
// @Param        id path int true "ID de la ruta"
// @Param        request body UpdateRutaRequest true "Campos a actualizar"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /rutas/{id} [put]
// @Security     BearerAuth
func (c *RutaController) UpdateRuta() {
	id, ok := parseID(c.Ctx)
	if !ok {
		return
	}

	var req UpdateRutaRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Cuerpo de la petición inválido")
		return
	}

	patch := services.RutaPatch{
		Nombre:      req.Nombre,
		Numero:      req.Numero,
		Descripcion: req.Descripcion,
		Origen:      req.Origen,
		Destino:     req.Destino,
		Activo:      req.Activo,
	}

	rutaService := c.Container.GetService("ruta").(services.InterfaceRutaService)
	ruta, err := rutaService.UpdateRuta(id, patch)
	if err != nil {
		failDomain(c.Ctx, err, code.ErrRutaNoEncontrada, code.ErrValidation)
		return
	}

	response.SuccessWithMessage(c.Ctx, ruta, "Ruta actualizada correctamente")
}

// DeleteRuta desactiva una ruta
// @Summary      Eliminar ruta
// @Description  Borrado lógico: la ruta queda inactiva
// @Tags         Rutas
// @Produce      json
// @Param        id path int true "ID de la ruta"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /rutas/{id} [delete]
// @Security     BearerAuth
func (c *RutaController) DeleteRuta() {
	id, ok := parseID(c.Ctx)
	if !ok {
		return
	}

	rutaService := c.Container.GetService("ruta").(services.InterfaceRutaService)
	if err := rutaService.DeleteRuta(id); err != nil {
		failDomain(c.Ctx, err, code.ErrRutaNoEncontrada, code.ErrValidation)
		return
	}

	response.SuccessWithMessage(c.Ctx, nil, "Ruta desactivada correctamente")
}
