package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config almacena toda la configuración de la aplicación. Se construye una
// sola vez en el arranque y se inyecta a través del contenedor de servicios.
type Config struct {
	// Tipo de entorno
	EnvType string

	// Base de datos
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBMigrationMode string // modo de migración: "auto" (default), "alter", "drop"

	// Servidor
	ServerPort string
	StaticDir  string // directorio de archivos estáticos del panel (opcional)

	// Redis
	RedisHost string
	RedisPort string
	RedisDB   int

	// Autenticación JWT
	JWTSecretKey string

	// Administrador inicial
	DefaultAdminUsername string
	DefaultAdminPassword string
}

// LoadConfig carga la configuración desde variables de entorno según ENV_TYPE
func LoadConfig() *Config {
	// Tipo de entorno (LOCAL por defecto)
	envType := getEnv("ENV_TYPE", "LOCAL")
	prefix := ""

	if strings.ToUpper(envType) == "LOCAL" {
		prefix = "LOCAL_"
	} else if strings.ToUpper(envType) == "SERVER" {
		prefix = "SERVER_"
	} else {
		fmt.Printf("Advertencia: ENV_TYPE '%s' desconocido, se usa entorno LOCAL\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	return &Config{
		EnvType: envType,

		// Base de datos - las variables con prefijo de entorno tienen prioridad
		DBHost:          getEnv(prefix+"DB_HOST", getEnv("DB_HOST", "localhost")),
		DBUser:          getEnv(prefix+"DB_USER", getEnv("DB_USER", "root")),
		DBPassword:      getEnv(prefix+"DB_PASSWORD", getEnv("DB_PASSWORD", "")),
		DBName:          getEnv(prefix+"DB_NAME", getEnv("DB_NAME", "conductores_db")),
		DBPort:          getEnv(prefix+"DB_PORT", getEnv("DB_PORT", "3306")),
		DBMigrationMode: getEnv(prefix+"DB_MIGRATION_MODE", getEnv("DB_MIGRATION_MODE", "auto")),

		// Servidor
		ServerPort: getEnv(prefix+"SERVER_PORT", getEnv("SERVER_PORT", "3000")),
		StaticDir:  getEnv("STATIC_DIR", ""),

		// Redis
		RedisHost: getEnv(prefix+"REDIS_HOST", getEnv("REDIS_HOST", "localhost")),
		RedisPort: getEnv(prefix+"REDIS_PORT", getEnv("REDIS_PORT", "6379")),
		RedisDB:   getEnvAsInt("REDIS_DB", 0),

		// JWT
		JWTSecretKey: getEnv("JWT_SECRET", "tu_clave_secreta_aqui_cambiar_en_produccion"),

		// Administrador inicial (solo para el bootstrap)
		DefaultAdminUsername: getEnv("DEFAULT_ADMIN_USERNAME", "admin"),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "admin123"),
	}
}

// GetDSN retorna la cadena de conexión de MySQL
func (c *Config) GetDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local"
}

// GetRedisAddr retorna la dirección de Redis
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// Helper para leer una variable de entorno con valor por defecto
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper para leer una variable de entorno como entero
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
