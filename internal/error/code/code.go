package code

// Códigos de estado HTTP.
const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
)

// Códigos de error generales (100xxx).
const (
	// ErrSuccess - 200: operación exitosa.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: error del servidor.
	ErrUnknown
	// ErrBind - 400: error al interpretar el cuerpo de la petición.
	ErrBind
	// ErrValidation - 400: campos obligatorios faltantes o inválidos.
	ErrValidation
	// ErrTokenMissing - 401: token no proporcionado.
	ErrTokenMissing
	// ErrTokenInvalid - 403: token inválido o expirado.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: demasiadas peticiones.
	ErrTooManyRequests
)

// Códigos de autenticación (101xxx).
const (
	// ErrCredencialesInvalidas - 401: usuario o contraseña incorrectos.
	ErrCredencialesInvalidas int = iota + 101000
	// ErrUsuarioExiste - 409: el usuario ya existe.
	ErrUsuarioExiste
)

// Códigos de entidades (102xxx).
const (
	// ErrEmpresaNoEncontrada - 404.
	ErrEmpresaNoEncontrada int = iota + 102000
	// ErrEmpresaDuplicada - 409: nombre o prefijo ya registrado.
	ErrEmpresaDuplicada
	// ErrRutaNoEncontrada - 404.
	ErrRutaNoEncontrada
	// ErrConductorNoEncontrado - 404.
	ErrConductorNoEncontrado
	// ErrTipoNovedadNoEncontrado - 404.
	ErrTipoNovedadNoEncontrado
	// ErrRegistroNoEncontrado - 404.
	ErrRegistroNoEncontrado
	// ErrReferenciaInvalida - 400: clave foránea a una fila inexistente.
	ErrReferenciaInvalida
)

// Códigos de base de datos (105xxx).
const (
	// ErrDatabase - 500: error de persistencia.
	ErrDatabase int = iota + 105000
)
