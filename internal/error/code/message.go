package code

// Mensajes por código de error. Se exponen tal cual al cliente; los errores
// de persistencia nunca filtran el detalle del driver.
var codeMessageMap = map[int]string{
	ErrSuccess:         "Operación exitosa",
	ErrUnknown:         "Error del servidor",
	ErrBind:            "Cuerpo de la petición inválido",
	ErrValidation:      "Campos obligatorios faltantes",
	ErrTokenMissing:    "Token no proporcionado",
	ErrTokenInvalid:    "Token inválido",
	ErrTooManyRequests: "Demasiadas peticiones, intente más tarde",

	ErrCredencialesInvalidas: "Credenciales inválidas",
	ErrUsuarioExiste:         "El usuario ya existe",

	ErrEmpresaNoEncontrada:     "Empresa no encontrada",
	ErrEmpresaDuplicada:        "La empresa o prefijo ya existe",
	ErrRutaNoEncontrada:        "Ruta no encontrada",
	ErrConductorNoEncontrado:   "Conductor no encontrado",
	ErrTipoNovedadNoEncontrado: "Tipo de novedad no encontrado",
	ErrRegistroNoEncontrado:    "Registro no encontrado",
	ErrReferenciaInvalida:      "Referencia a una entidad inexistente",

	ErrDatabase: "Error del servidor",
}

// Estado HTTP por código de error.
var codeStatusMap = map[int]int{
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenMissing:    StatusUnauthorized,
	ErrTokenInvalid:    StatusForbidden,
	ErrTooManyRequests: StatusTooManyRequests,

	ErrCredencialesInvalidas: StatusUnauthorized,
	ErrUsuarioExiste:         StatusConflict,

	ErrEmpresaNoEncontrada:     StatusNotFound,
	ErrEmpresaDuplicada:        StatusConflict,
	ErrRutaNoEncontrada:        StatusNotFound,
	ErrConductorNoEncontrado:   StatusNotFound,
	ErrTipoNovedadNoEncontrado: StatusNotFound,
	ErrRegistroNoEncontrado:    StatusNotFound,
	ErrReferenciaInvalida:      StatusBadRequest,

	ErrDatabase: StatusInternalServerError,
}

// GetMessage retorna el mensaje asociado a un código de error
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Error del servidor"
}

// GetStatus retorna el estado HTTP asociado a un código de error
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
