package container

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/Miguel-Alz/trascontrol/internal/domain/services"
	"github.com/Miguel-Alz/trascontrol/internal/infrastructure/config"
	"github.com/Miguel-Alz/trascontrol/pkg/logger"
)

// ServiceContainer construye y expone todos los servicios. Se crea una sola
// vez en el arranque y se inyecta a los controladores; no hay singletons
// ambientales.
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// Servicios base
	jwtService  services.InterfaceJWTService
	authService services.InterfaceAuthService

	// Caché
	redisService services.InterfaceRedisService

	// Servicios de negocio
	empresaService     services.InterfaceEmpresaService
	rutaService        services.InterfaceRutaService
	conductorService   services.InterfaceConductorService
	tipoNovedadService services.InterfaceTipoNovedadService
	registroService    services.InterfaceRegistroService
	statsService       services.InterfaceStatsService

	mu sync.RWMutex
}

// NewServiceContainer crea el contenedor de servicios
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("la conexión a la base de datos es nil")
	}
	if cfg == nil {
		panic("la configuración es nil")
	}

	// Redis es opcional: si no responde, los servicios operan sin caché
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warning("Redis no responde: %v; se continúa sin caché", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices inicializa todos los servicios
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jwtService = services.NewJWTService(c.config)
	c.authService = services.NewAuthService(c.db, c.config, c.jwtService)

	if c.redis != nil {
		c.redisService = services.NewRedisServiceWithClient(c.redis)
	}

	c.empresaService = services.NewEmpresaService(c.db, c.config)
	c.rutaService = services.NewRutaService(c.db, c.config)
	c.conductorService = services.NewConductorService(c.db, c.config)
	c.tipoNovedadService = services.NewTipoNovedadService(c.db, c.config)
	c.registroService = services.NewRegistroService(c.db, c.config)
	c.statsService = services.NewStatsService(c.db, c.config, c.redisService)
}

// GetDB retorna la conexión a la base de datos
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig retorna la configuración
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// GetService retorna un servicio por nombre
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "jwt":
		return c.jwtService
	case "auth":
		return c.authService
	case "redis":
		return c.redisService
	case "empresa":
		return c.empresaService
	case "ruta":
		return c.rutaService
	case "conductor":
		return c.conductorService
	case "tipo_novedad":
		return c.tipoNovedadService
	case "registro":
		return c.registroService
	case "stats":
		return c.statsService
	default:
		return nil
	}
}
