package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Miguel-Alz/trascontrol/internal/domain/services/container"
	"github.com/Miguel-Alz/trascontrol/internal/error/response"
)

// HealthController reporta el estado del servicio y sus dependencias
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController crea un nuevo controlador de salud
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc retorna el manejador del chequeo de salud
func HandleHealthFunc(container *container.ServiceContainer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		NewHealthController(ctx, container).Check()
	}
}

// Check verifica la conexión a la base de datos
// @Summary      Estado del servicio
// @Description  Retorna ok si la base de datos responde
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health [get]
func (c *HealthController) Check() {
	estado := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	sqlDB, err := c.Container.GetDB().DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		estado["status"] = "degraded"
		estado["database"] = "sin conexión"
	} else {
		estado["database"] = "ok"
	}

	response.Success(c.Ctx, estado)
}
