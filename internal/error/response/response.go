package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/error/code"
)

// Response es el sobre de respuesta uniforme del API:
// {success, data?, error?, message?, pagination?}
type Response struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data,omitempty"`
	Error      string             `json:"error,omitempty"`
	Message    string             `json:"message,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// Success responde 200 con datos
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMessage responde 200 con datos y mensaje
func SuccessWithMessage(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SuccessWithPagination responde 200 con una página de resultados
func SuccessWithPagination(c *gin.Context, data interface{}, pagination models.Pagination) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Data:       data,
		Pagination: &pagination,
	})
}

// Created responde 201 con la fila creada
func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// Fail responde con el estado y mensaje asociados al código de error
func Fail(c *gin.Context, errorCode int) {
	c.JSON(code.GetStatus(errorCode), Response{
		Success: false,
		Error:   code.GetMessage(errorCode),
	})
}

// FailWithMessage responde con el estado del código y un mensaje propio
func FailWithMessage(c *gin.Context, errorCode int, message string) {
	c.JSON(code.GetStatus(errorCode), Response{
		Success: false,
		Error:   message,
	})
}

// ParamError responde 400 por parámetros inválidos
func ParamError(c *gin.Context, message string) {
	FailWithMessage(c, code.ErrValidation, message)
}

// ServerError responde 500 con el mensaje genérico
func ServerError(c *gin.Context) {
	Fail(c, code.ErrUnknown)
}
