package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/domain/services"
	"github.com/Miguel-Alz/trascontrol/internal/domain/services/container"
	"github.com/Miguel-Alz/trascontrol/internal/error/code"
	"github.com/Miguel-Alz/trascontrol/internal/error/response"
)

// InterfaceConductorController define el controlador de conductores
type InterfaceConductorController interface {
	GetConductores()
	GetConductor()
	CreateConductor()
	UpdateConductor()
	DeleteConductor()
}

// ConductorController maneja el CRUD de conductores
type ConductorController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewConductorController crea un nuevo controlador de conductores
func NewConductorController(ctx *gin.Context, container *container.ServiceContainer) *ConductorController {
	return &ConductorController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateConductorRequest es la petición de alta de conductor
type CreateConductorRequest struct {
	Nombre    string `json:"nombre" binding:"required" example:"Carlos Pérez"`
	Cedula    string `json:"cedula" example:"1032456789"`
	Telefono  string `json:"telefono" example:"3001234567"`
	Email     string `json:"email" binding:"omitempty,email" example:"carlos.perez@example.com"`
	EmpresaID *uint  `json:"empresa_id" example:"1"`
}

// UpdateConductorRequest es la petición de actualización parcial de conductor
type UpdateConductorRequest struct {
	Nombre    *string `json:"nombre"`
	Cedula    *string `json:"cedula"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email" binding:"omitempty,email"`
	EmpresaID *uint   `json:"empresa_id"`
	Activo    *bool   `json:"activo"`
}

// HandleConductorFunc retorna el manejador Gin para el método indicado
func HandleConductorFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewConductorController(ctx, container)

		switch method {
		case "getConductores":
			controller.GetConductores()
		case "getConductor":
			controller.GetConductor()
		case "createConductor":
			controller.CreateConductor()
		case "updateConductor":
			controller.UpdateConductor()
		case "deleteConductor":
			controller.DeleteConductor()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido")
		}
	}
}

// GetConductores lista conductores
// @Summary      Listar conductores
// @Description  Lista conductores con búsqueda, filtro por empresa y estado, y paginación. Sin token solo retorna los activos
// @Tags         Conductores
// @Produce      json
// @Param        page query int false "Página, por defecto 1"
// @Param        limit query int false "Tamaño de página, por defecto 10"
// @Param        search query string false "Subcadena sobre nombre o cédula"
// @Param        empresa_id query int false "Filtrar por empresa"
// @Param        activo query bool false "Filtrar por estado"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /conductores [get]
func (c *ConductorController) GetConductores() {
	conductorService := c.Container.GetService("conductor").(services.InterfaceConductorService)

	if _, authenticated := c.Ctx.Get("claims"); !authenticated {
		conductores, err := conductorService.GetConductoresActivos()
		if err != nil {
			response.Fail(c.Ctx, code.ErrDatabase)
			return
		}
		response.Success(c.Ctx, conductores)
		return
	}

	page, limit := parsePagination(c.Ctx)
	filter := services.ConductorFilter{
		Search:    c.Ctx.Query("search"),
		EmpresaID: parseUintQuery(c.Ctx, "empresa_id"),
		Activo:    parseBoolQuery(c.Ctx, "activo"),
	}

	conductores, total, err := conductorService.GetAllConductores(page, limit, filter)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}

	response.SuccessWithPagination(c.Ctx, conductores, models.NewPagination(total, page, limit))
}

// GetConductor retorna un conductor por ID
// @Summary      Obtener conductor
// @Tags         Conductores
// @Produce      json
// @Param        id path int true "ID del conductor"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /conductores/{id} [get]
// @Security     BearerAuth
func (c *ConductorController) GetConductor() {
	id, ok := parseID(c.Ctx)
	if !ok {
		return
	}

	conductorService := c.Container.GetService("conductor").(services.InterfaceConductorService)
	conductor, err := conductorService.GetConductorByID(id)
	if err != nil {
		failDomain(c.Ctx, err, code.ErrConductorNoEncontrado, code.ErrValidation)
		return
	}

	response.Success(c.Ctx, conductor)
}

// CreateConductor crea un conductor
// @Summary      Crear conductor
// @Description  Registra un conductor; si trae empresa_id la empresa debe existir
// @Tags         Conductores
// @Accept       json
// @Produce      json
// @Param        request body CreateConductorRequest true "Datos del conductor"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /conductores [post]
// @Security     BearerAuth
func (c *ConductorController) CreateConductor() {
	var req CreateConductorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "nombre es requerido")
		return
	}

	conductor := models.Conductor{
		Nombre:    req.Nombre,
		Cedula:    req.Cedula,
		Telefono:  req.Telefono,
		Email:     req.Email,
		EmpresaID: req.EmpresaID,
	}

	conductorService := c.Container.GetService("conductor").(services.InterfaceConductorService)
	if err := conductorService.CreateConductor(&conductor); err != nil {
		failDomain(c.Ctx, err, code.ErrConductorNoEncontrado, code.ErrValidation)
		return
	}

	response.Created(c.Ctx, conductor, "Conductor creado correctamente")
}

// UpdateConductor actualiza un conductor
// @Summary      Actualizar conductor
// @Description  Actualización parcial: los campos omitidos conservan su valor
// @Tags         Conductores
// @Accept       json
// @Produce      json
// @Param        id path int true "ID del conductor"
// @Param        request body UpdateConductorRequest true "Campos a actualizar"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /conductores/{id} [put]
// @Security     BearerAuth
func (c *ConductorController) UpdateConductor() {
	id, ok := parseID(c.Ctx)
	if !ok {
		return
	}

	var req UpdateConductorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Cuerpo de la petición inválido")
		return
	}

	patch := services.ConductorPatch{
		Nombre:    req.Nombre,
		Cedula:    req.Cedula,
		Telefono:  req.Telefono,
		Email:     req.Email,
		EmpresaID: req.EmpresaID,
		Activo:    req.Activo,
	}

	conductorService := c.Container.GetService("conductor").(services.InterfaceConductorService)
	conductor, err := conductorService.UpdateConductor(id, patch)
	if err != nil {
		failDomain(c.Ctx, err, code.ErrConductorNoEncontrado, code.ErrValidation)
		return
	}

	response.SuccessWithMessage(c.Ctx, conductor, "Conductor actualizado correctamente")
}

// DeleteConductor desactiva un conductor
// @Summary      Eliminar conductor
// @Description  Borrado lógico: el conductor queda inactivo
// @Tags         Conductores
// @Produce      json
// @Param        id path int true "ID del conductor"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /conductores/{id} [delete]
// @Security     BearerAuth
func (c *ConductorController) DeleteConductor() {
	id, ok := parseID(c.Ctx)
	if !ok {
		return
	}

	conductorService := c.Container.GetService("conductor").(services.InterfaceConductorService)
	if err := conductorService.DeleteConductor(id); err != nil {
		failDomain(c.Ctx, err, code.ErrConductorNoEncontrado, code.ErrValidation)
		return
	}

	response.SuccessWithMessage(c.Ctx, nil, "Conductor desactivado correctamente")
}
