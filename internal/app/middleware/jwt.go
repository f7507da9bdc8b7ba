package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Miguel-Alz/trascontrol/internal/domain/services"
	"github.com/Miguel-Alz/trascontrol/internal/error/code"
	"github.com/Miguel-Alz/trascontrol/internal/error/response"
)

// extractToken quita el prefijo "Bearer " del encabezado de autorización
func extractToken(authHeader string) string {
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return strings.TrimSpace(authHeader)
}

// OptionalAuthentication puebla la identidad si la petición trae un token
// válido, pero nunca la rechaza. Sirve a los listados que atienden tanto al
// formulario público como al panel autenticado.
func OptionalAuthentication(jwtService services.InterfaceJWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := extractToken(authHeader)
		if tokenString == "" {
			c.Next()
			return
		}

		if claims, err := jwtService.ExtractClaims(tokenString); err == nil {
			c.Set("userID", claims.ID)
			c.Set("username", claims.Username)
			c.Set("rol", claims.Rol)
			c.Set("claims", claims)
		}
		c.Next()
	}
}

// Authentication exige un token bearer válido. Sin token responde 401; con
// token inválido o expirado responde 403. No distingue roles: cualquier
// token válido habilita todas las rutas protegidas.
func Authentication(jwtService services.InterfaceJWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, code.ErrTokenMissing)
			c.Abort()
			return
		}

		tokenString := extractToken(authHeader)
		if tokenString == "" {
			response.Fail(c, code.ErrTokenMissing)
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil {
			response.Fail(c, code.ErrTokenInvalid)
			c.Abort()
			return
		}

		c.Set("userID", claims.ID)
		c.Set("username", claims.Username)
		c.Set("rol", claims.Rol)
		c.Set("claims", claims)
		c.Next()
	}
}
