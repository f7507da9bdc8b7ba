package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Miguel-Alz/trascontrol/internal/domain/services"
	"github.com/Miguel-Alz/trascontrol/internal/error/code"
	"github.com/Miguel-Alz/trascontrol/internal/error/response"
)

// ErrorResponse documenta el sobre de error para swagger
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Empresa no encontrada"`
}

// parsePagination lee page y limit de la query con sus valores por defecto
func parsePagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// parseID lee el parámetro :id de la ruta
func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ParamError(ctx, "ID inválido")
		return 0, false
	}
	return uint(id), true
}

// parseBoolQuery interpreta un parámetro booleano opcional de la query
func parseBoolQuery(ctx *gin.Context, name string) *bool {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

// parseUintQuery interpreta un parámetro numérico opcional de la query
func parseUintQuery(ctx *gin.Context, name string) *uint {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(value)
	return &id
}

// parseDateQuery interpreta una fecha YYYY-MM-DD opcional de la query
func parseDateQuery(ctx *gin.Context, name string) (*time.Time, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	fecha, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errors.New("fecha inválida en " + name + ": se espera formato YYYY-MM-DD")
	}
	return &fecha, nil
}

// failDomain mapea un error del dominio al código de respuesta. Los errores
// de clase conocida llevan su propio mensaje; el resto se reporta como error
// de base de datos sin filtrar detalles internos.
func failDomain(ctx *gin.Context, err error, notFoundCode, conflictCode int) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.FailWithMessage(ctx, notFoundCode, err.Error())
	case errors.Is(err, services.ErrConflict):
		response.FailWithMessage(ctx, conflictCode, err.Error())
	case errors.Is(err, services.ErrValidation):
		response.FailWithMessage(ctx, code.ErrValidation, err.Error())
	case errors.Is(err, services.ErrInvalidReference):
		response.FailWithMessage(ctx, code.ErrReferenciaInvalida, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		response.FailWithMessage(ctx, code.ErrCredencialesInvalidas, err.Error())
	default:
		response.Fail(ctx, code.ErrDatabase)
	}
}
