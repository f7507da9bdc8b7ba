package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/domain/services"
	"github.com/Miguel-Alz/trascontrol/internal/domain/services/container"
	"github.com/Miguel-Alz/trascontrol/internal/error/code"
	"github.com/Miguel-Alz/trascontrol/internal/error/response"
)

// InterfaceTipoNovedadController define el controlador de tipos de novedad
type InterfaceTipoNovedadController interface {
	GetTiposNovedad()
	GetTipoNovedad()
	CreateTipoNovedad()
	UpdateTipoNovedad()
	DeleteTipoNovedad()
}

// TipoNovedadController maneja el CRUD de la taxonomía de novedades
type TipoNovedadController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTipoNovedadController crea un nuevo controlador de tipos de novedad
func NewTipoNovedadController(ctx *gin.Context, container *container.ServiceContainer) *TipoNovedadController {
	return &TipoNovedadController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateTipoNovedadRequest es la petición de alta de tipo de novedad
type CreateTipoNovedadRequest struct {
	Nombre      string `json:"nombre" binding:"required" example:"Varada mecánica"`
	Descripcion string `json:"descripcion" example:"El vehículo no pudo continuar el recorrido"`
	Severidad   string `json:"severidad" example:"alta"`
	Color       string `json:"color" example:"#dc2626"`
}

// UpdateTipoNovedadRequest es la petición de actualización parcial
type UpdateTipoNovedadRequest struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Severidad   *string `json:"severidad"`
	Color       *string `json:"color"`
	Activo      *bool   `json:"activo"`
}

// HandleTipoNovedadFunc retorna el manejador Gin para el método indicado
func HandleTipoNovedadFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTipoNovedadController(ctx, container)

		switch method {
		case "getTiposNovedad":
			controller.GetTiposNovedad()
		case "getTipoNovedad":
			controller.GetTipoNovedad()
		case "createTipoNovedad":
			controller.CreateTipoNovedad()
		case "updateTipoNovedad":
			controller.UpdateTipoNovedad()
		case "deleteTipoNovedad":
			controller.DeleteTipoNovedad()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido")
		}
	}
}

// GetTiposNovedad lista tipos de novedad
// @Summary      Listar tipos de novedad
// @Description  Lista la taxonomía con búsqueda, filtro por severidad y estado, y paginación. Sin token solo retorna los activos
// @Tags         TiposNovedad
// @Produce      json
// @Param        page query int false "Página, por defecto 1"
// @Param        limit query int false "Tamaño de página, por defecto 10"
// @Param        search query string false "Subcadena sobre el nombre"
// @Param        severidad query string false "baja, media, alta o critica"
// @Param        activo query bool false "Filtrar por estado"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /tipo-novedades [get]
func (c *TipoNovedadController) GetTiposNovedad() {
	tipoService := c.Container.GetService("tipo_novedad").(services.InterfaceTipoNovedadService)

	if _, authenticated := c.Ctx.Get("claims"); !authenticated {
		tipos, err := tipoService.GetTiposNovedadActivos()
		if err != nil {
			response.Fail(c.Ctx, code.ErrDatabase)
			return
		}
		response.Success(c.Ctx, tipos)
		return
	}

	page, limit := parsePagination(c.Ctx)
	filter := services.TipoNovedadFilter{
		Search: c.Ctx.Query("search"),
		Activo: parseBoolQuery(c.Ctx, "activo"),
	}
	if raw := c.Ctx.Query("severidad"); raw != "" {
		severidad := models.Severidad(raw)
		if !severidad.Valida() {
			response.ParamError(c.Ctx, "Severidad inválida: debe ser baja, media, alta o critica")
			return
		}
		filter.Severidad = &severidad
	}

	tipos, total, err := tipoService.GetAllTiposNovedad(page, limit, filter)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}

	response.SuccessWithPagination(c.Ctx, tipos, models.NewPagination(total, page, limit))
}

// GetTipoNovedad retorna un tipo de novedad por ID
// @Summary      Obtener tipo de novedad
// @Tags         TiposNovedad
// @Produce      json
// @Param        id path int true "ID del tipo de novedad"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /tipo-novedades/{id} [get]
// @Security     BearerAuth
func (c *TipoNovedadController) GetTipoNovedad() {
	id, ok := parseID(c.Ctx)
	if !ok {
		return
	}

	tipoService := c.Container.GetService("tipo_novedad").(services.InterfaceTipoNovedadService)
	tipo, err := tipoService.GetTipoNovedadByID(id)
	if err != nil {
		failDomain(c.Ctx, err, code.ErrTipoNovedadNoEncontrado, code.ErrValidation)
		return
	}

	response.Success(c.Ctx, tipo)
}

// CreateTipoNovedad crea un tipo de novedad
// @Summary      Crear tipo de novedad
// @Description  Registra un tipo nuevo; el nombre debe ser único y la severidad pertenecer al enum
// @Tags         TiposNovedad
// @Accept       json
// @Produce      json
// @Param        request body CreateTipoNovedadRequest true "Datos del tipo de novedad"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /tipo-novedades [post]
// @Security     BearerAuth
func (c *TipoNovedadController) CreateTipoNovedad() {
	var req CreateTipoNovedadRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "nombre es requerido")
		return
	}

	tipo := models.TipoNovedad{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Severidad:   models.Severidad(req.Severidad),
		Color:       req.Color,
	}

	tipoService := c.Container.GetService("tipo_novedad").(services.InterfaceTipoNovedadService)
	if err := tipoService.CreateTipoNovedad(&tipo); err != nil {
		failDomain(c.Ctx, err, code.ErrTipoNovedadNoEncontrado, code.ErrValidation)
		return
	}

	response.Created(c.Ctx, tipo, "Tipo de novedad creado correctamente")
}

// UpdateTipoNovedad actualiza un tipo de novedad
// @Summary      Actualizar tipo de novedad
// @Description  Actualización parcial: los campos omitidos conservan su valor
// @Tags         TiposNovedad
// @Accept       json
// @Produce      json
// @Param        id path int true "ID del tipo de novedad"
// @Param        request body UpdateTipoNovedadRequest true "Campos a actualizar"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /tipo-novedades/{id} [put]
// @Security     BearerAuth
func (c *TipoNovedadController) UpdateTipoNovedad() {
	id, ok := parseID(c.Ctx)
	if !ok {
		return
	}

	var req UpdateTipoNovedadRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Cuerpo de la petición inválido")
		return
	}

	patch := services.TipoNovedadPatch{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Color:       req.Color,
		Activo:      req.Activo,
	}
	if req.Severidad != nil {
		severidad := models.Severidad(*req.Severidad)
		patch.Severidad = &severidad
	}

	tipoService := c.Container.GetService("tipo_novedad").(services.InterfaceTipoNovedadService)
	tipo, err := tipoService.UpdateTipoNovedad(id, patch)
	if err != nil {
		failDomain(c.Ctx, err, code.ErrTipoNovedadNoEncontrado, code.ErrValidation)
		return
	}

	response.SuccessWithMessage(c.Ctx, tipo, "Tipo de novedad actualizado correctamente")
}

// DeleteTipoNovedad desactiva un tipo de novedad
// @Summary      Eliminar tipo de novedad
// @Description  Borrado lógico: el tipo queda inactivo y los registros históricos lo conservan
// @Tags         TiposNovedad
// @Produce      json
// @Param        id path int true "ID del tipo de novedad"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /tipo-novedades/{id} [delete]
// @Security     BearerAuth
func (c *TipoNovedadController) DeleteTipoNovedad() {
	id, ok := parseID(c.Ctx)
	if !ok {
		return
	}

	tipoService := c.Container.GetService("tipo_novedad").(services.InterfaceTipoNovedadService)
	if err := tipoService.DeleteTipoNovedad(id); err != nil {
		failDomain(c.Ctx, err, code.ErrTipoNovedadNoEncontrado, code.ErrValidation)
		return
	}

	response.SuccessWithMessage(c.Ctx, nil, "Tipo de novedad desactivado correctamente")
}
