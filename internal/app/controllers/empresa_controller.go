package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/domain/services"
	"github.com/Miguel-Alz/trascontrol/internal/domain/services/container"
	"github.com/Miguel-Alz/trascontrol/internal/error/code"
	"github.com/Miguel-Alz/trascontrol/internal/error/response"
)

// InterfaceEmpresaController define el controlador de empresas
type InterfaceEmpresaController interface {
	GetEmpresas()
	GetEmpresa()
	CreateEmpresa()
	UpdateEmpresa()
	DeleteEmpresa()
}

// EmpresaController maneja el CRUD de empresas
type EmpresaController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewEmpresaController crea un nuevo controlador de empresas
func NewEmpresaController(ctx *gin.Context, container *container.ServiceContainer) *EmpresaController {
	return &EmpresaController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateEmpresaRequest es la petición de alta de empresa
type CreateEmpresaRequest struct {
	Nombre  string `json:"nombre" binding:"required" example:"Transportes La Sabana"`
	Prefijo string `json:"prefijo" binding:"required,max=10" example:"TLS"`
}

// UpdateEmpresaRequest es la petición de actualización parcial de empresa
type UpdateEmpresaRequest struct {
	Nombre  *string `json:"nombre" example:"Transportes La Sabana"`
	Prefijo *string `json:"prefijo" binding:"omitempty,max=10" example:"TLS"`
	Activo  *bool   `json:"activo" example:"true"`
}

// HandleEmpresaFunc retorna el manejador Gin para el método indicado
func HandleEmpresaFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewEmpresaController(ctx, container)

		switch method {
		case "getEmpresas":
			controller.GetEmpresas()
		case "getEmpresa":
			controller.GetEmpresa()
		case "createEmpresa":
			controller.CreateEmpresa()
		case "updateEmpresa":
			controller.UpdateEmpresa()
		case "deleteEmpresa":
			controller.DeleteEmpresa()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido")
		}
	}
}

// GetEmpresas lista empresas
// @Summary      Listar empresas
// @Description  Lista empresas con búsqueda, filtro por estado y paginación. Sin token solo retorna las activas
// @Tags         Empresas
// @Produce      json
// @Param        page query int false "Página, por defecto 1"
// @Param        limit query int false "Tamaño de página, por defecto 10"
// @Param        search query string false "Subcadena sobre nombre o prefijo"
// @Param        activo query bool false "Filtrar por estado"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  ErrorResponse
// @Router       /empresas [get]
func (c *EmpresaController) GetEmpresas() {
	empresaService := c.Container.GetService("empresa").(services.InterfaceEmpresaService)

	// Sin autenticación el listado sirve al formulario público: solo activas,
	// sin paginar.
	if _, authenticated := c.Ctx.Get("claims"); !authenticated {
		empresas, err := empresaService.GetEmpresasActivas()
		if err != nil {
			response.Fail(c.Ctx, code.ErrDatabase)
			return
		}
		response.Success(c.Ctx, empresas)
		return
	}

	page, limit := parsePagination(c.Ctx)
	filter := services.EmpresaFilter{
		Search: c.Ctx.Query("search"),
		Activo: parseBoolQuery(c.Ctx, "activo"),
	}

	empresas, total, err := empresaService.GetAllEmpresas(page, limit, filter)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}

	response.SuccessWithPagination(c.Ctx, empresas, models.NewPagination(total, page, limit))
}

// GetEmpresa retorna una empresa por ID
// @Summary      Obtener empresa
// @Tags         Empresas
// @Produce      json
// @Param        id path int true "ID de la empresa"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /empresas/{id} [get]
// @Security     BearerAuth
func (c *EmpresaController) GetEmpresa() {
	id, ok := parseID(c.Ctx)
	if !ok {
		return
	}

	empresaService := c.Container.GetService("empresa").(services.InterfaceEmpresaService)
	empresa, err := empresaService.GetEmpresaByID(id)
	if err != nil {
		failDomain(c.Ctx, err, code.ErrEmpresaNoEncontrada, code.ErrEmpresaDuplicada)
		return
	}

	response.Success(c.Ctx, empresa)
}

// CreateEmpresa crea una empresa
// @Summary      Crear empresa
// @Description  Registra una empresa nueva; nombre y prefijo deben ser únicos
// @Tags         Empresas
// @Accept       json
// @Produce      json
// @Param        request body CreateEmpresaRequest true "Datos de la empresa"
// @Success      201  {object}  response.Response
// @Failure      409  {object}  ErrorResponse
// @Router       /empresas [post]
// @Security     BearerAuth
func (c *EmpresaController) CreateEmpresa() {
	var req CreateEmpresaRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "nombre y prefijo son requeridos")
		return
	}

	empresa := models.Empresa{
		Nombre:  req.Nombre,
		Prefijo: req.Prefijo,
	}

	empresaService := c.Container.GetService("empresa").(services.InterfaceEmpresaService)
	if err := empresaService.CreateEmpresa(&empresa); err != nil {
		failDomain(c.Ctx, err, code.ErrEmpresaNoEncontrada, code.ErrEmpresaDuplicada)
		return
	}

	response.Created(c.Ctx, empresa, "Empresa creada correctamente")
}

// UpdateEmpresa actualiza una empresa
// @Summary      Actualizar empresa
// @Description  Actualización parcial: los campos omitidos conservan su valor
// @Tags         Empresas
// @Accept       json
// @Produce      json
// @Param        id path int true "ID de la empresa"
// @Param        request body UpdateEmpresaRequest true "Campos a actualizar"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /empresas/{id} [put]
// @Security     BearerAuth
func (c *EmpresaController) UpdateEmpresa() {
	id, ok := parseID(c.Ctx)
	if !ok {
		return
	}

	var req UpdateEmpresaRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Cuerpo de la petición inválido")
		return
	}

	patch := services.EmpresaPatch{
		Nombre:  req.Nombre,
		Prefijo: req.Prefijo,
		Activo:  req.Activo,
	}

	empresaService := c.Container.GetService("empresa").(services.InterfaceEmpresaService)
	empresa, err := empresaService.UpdateEmpresa(id, patch)
	if err != nil {
		failDomain(c.Ctx, err, code.ErrEmpresaNoEncontrada, code.ErrEmpresaDuplicada)
		return
	}

	response.SuccessWithMessage(c.Ctx, empresa, "Empresa actualizada correctamente")
}

// DeleteEmpresa desactiva una empresa
// @Summary      Eliminar empresa
// @Description  Borrado lógico: la empresa queda inactiva y sus registros históricos se conservan
// @Tags         Empresas
// @Produce      json
// @Param        id path int true "ID de la empresa"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /empresas/{id} [delete]
// @Security     BearerAuth
func (c *EmpresaController) DeleteEmpresa() {
	id, ok := parseID(c.Ctx)
	if !ok {
		return
	}

	empresaService := c.Container.GetService("empresa").(services.InterfaceEmpresaService)
	if err := empresaService.DeleteEmpresa(id); err != nil {
		failDomain(c.Ctx, err, code.ErrEmpresaNoEncontrada, code.ErrEmpresaDuplicada)
		return
	}

	response.SuccessWithMessage(c.Ctx, nil, "Empresa desactivada correctamente")
}
