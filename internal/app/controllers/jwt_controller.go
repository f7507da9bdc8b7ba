package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Miguel-Alz/trascontrol/internal/domain/services"
	"github.com/Miguel-Alz/trascontrol/internal/domain/services/container"
	"github.com/Miguel-Alz/trascontrol/internal/error/code"
	"github.com/Miguel-Alz/trascontrol/internal/error/response"
)

// InterfaceAuthController define el controlador de autenticación
type InterfaceAuthController interface {
	Login()
	Verify()
	SetupAdmin()
}

// AuthController maneja login, verificación de token y el alta inicial
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController crea un nuevo controlador de autenticación
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest es la petición de inicio de sesión
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"Admin@123"`
}

// SetupAdminRequest es la petición del alta inicial del administrador
type SetupAdminRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required,min=6" example:"Admin@123"`
	Email    string `json:"email" binding:"omitempty,email" example:"admin@trascontrol.co"`
}

// HandleAuthFunc retorna el manejador Gin para el método indicado
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "verify":
			controller.Verify()
		case "setupAdmin":
			controller.SetupAdmin()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido")
		}
	}
}

// Login autentica al usuario y emite el token
// @Summary      Iniciar sesión
// @Description  Verifica credenciales y retorna un token bearer con vigencia de 24 horas
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credenciales"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "username y password son requeridos")
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	usuario, token, err := authService.Login(req.Username, req.Password)
	if err != nil {
		failDomain(c.Ctx, err, code.ErrCredencialesInvalidas, code.ErrUsuarioExiste)
		return
	}

	response.Success(c.Ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":       usuario.ID,
			"username": usuario.Username,
			"email":    usuario.Email,
			"rol":      usuario.Rol,
		},
	})
}

// Verify confirma que el token de la petición sigue vigente
// @Summary      Verificar token
// @Description  Retorna la identidad asociada al token bearer de la petición
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /auth/verify [get]
// @Security     BearerAuth
func (c *AuthController) Verify() {
	claims, exists := c.Ctx.Get("claims")
	if !exists {
		response.Fail(c.Ctx, code.ErrTokenMissing)
		return
	}

	jwtClaims := claims.(*services.JWTClaims)
	response.Success(c.Ctx, gin.H{
		"valid": true,
		"user": gin.H{
			"id":       jwtClaims.ID,
			"username": jwtClaims.Username,
			"rol":      jwtClaims.Rol,
		},
	})
}

// SetupAdmin crea la cuenta de administrador inicial
// @Summary      Crear administrador inicial
// @Description  Registra la cuenta de administrador; falla con 409 si el username ya existe
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body SetupAdminRequest true "Datos del administrador"
// @Success      201  {object}  response.Response
// @Failure      409  {object}  ErrorResponse
// @Router       /setup/admin [post]
func (c *AuthController) SetupAdmin() {
	var req SetupAdminRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "username y password son requeridos; el password debe tener al menos 6 caracteres")
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	usuario, err := authService.CreateAdmin(req.Username, req.Password, req.Email)
	if err != nil {
		failDomain(c.Ctx, err, code.ErrUsuarioExiste, code.ErrUsuarioExiste)
		return
	}

	response.Created(c.Ctx, gin.H{
		"id":       usuario.ID,
		"username": usuario.Username,
		"email":    usuario.Email,
		"rol":      usuario.Rol,
	}, "Administrador creado correctamente")
}
