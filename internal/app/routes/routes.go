package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/Miguel-Alz/trascontrol/docs"
	"github.com/Miguel-Alz/trascontrol/internal/app/controllers"
	"github.com/Miguel-Alz/trascontrol/internal/app/middleware"
	"github.com/Miguel-Alz/trascontrol/internal/domain/services"
	"github.com/Miguel-Alz/trascontrol/internal/domain/services/container"
	"github.com/Miguel-Alz/trascontrol/internal/infrastructure/config"
)

// SetupRouter inicializa y retorna el router configurado
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	r := gin.Default()

	// CORS: el formulario público y el panel se sirven desde otros orígenes
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})
	r.Use(middleware.RequestID())

	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)

	// Documentación Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Frontend estático del formulario y del panel
	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
		r.StaticFile("/", cfg.StaticDir+"/index.html")
	}

	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes configura todas las rutas del API
func registerRoutes(r *gin.Engine, container *container.ServiceContainer) {
	api := r.Group("/api")

	registerPublicRoutes(api, container)
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes registra las rutas sin autenticación
func registerPublicRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	jwtService := container.GetService("jwt").(services.InterfaceJWTService)

	// Limitación general por IP: 10 peticiones por segundo, ráfaga de 20
	api.Use(middleware.IPRateLimiter(10, 20))

	// Chequeo de salud
	api.GET("/health", controllers.HandleHealthFunc(container))

	// Autenticación y alta inicial
	api.POST("/auth/login", middleware.PathRateLimiter(5, 10), controllers.HandleAuthFunc(container, "login"))
	api.POST("/setup/admin", middleware.PathRateLimiter(2, 5), controllers.HandleAuthFunc(container, "setupAdmin"))

	// Listados de referencia del formulario público. Con token retornan la
	// vista administrativa completa; sin token solo las filas activas. La
	// caché distingue ambos estados para no mezclar las vistas.
	lookupCache := middleware.Cache(middleware.CacheConfig{
		Expiration: 10 * time.Second,
		KeyFunc:    middleware.KeyWithAuthState,
	})
	api.GET("/empresas", middleware.OptionalAuthentication(jwtService), lookupCache, controllers.HandleEmpresaFunc(container, "getEmpresas"))
	api.GET("/rutas", middleware.OptionalAuthentication(jwtService), lookupCache, controllers.HandleRutaFunc(container, "getRutas"))
	api.GET("/conductores", middleware.OptionalAuthentication(jwtService), lookupCache, controllers.HandleConductorFunc(container, "getConductores"))
	api.GET("/tipo-novedades", middleware.OptionalAuthentication(jwtService), lookupCache, controllers.HandleTipoNovedadFunc(container, "getTiposNovedad"))

	// Captura pública de registros de turno
	api.POST("/registros", middleware.PathRateLimiter(5, 10), middleware.OptionalAuthentication(jwtService), controllers.HandleRegistroFunc(container, "createRegistro"))
}

// registerAuthenticatedRoutes registra las rutas que exigen token
func registerAuthenticatedRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	jwtService := container.GetService("jwt").(services.InterfaceJWTService)

	auth := api.Group("/")
	auth.Use(middleware.Authentication(jwtService))
	auth.Use(middleware.IPRateLimiter(30, 50))

	auth.GET("/auth/verify", controllers.HandleAuthFunc(container, "verify"))

	// Empresas
	empresasGroup := auth.Group("/empresas")
	{
		empresasGroup.GET("/:id", controllers.HandleEmpresaFunc(container, "getEmpresa"))
		empresasGroup.POST("", controllers.HandleEmpresaFunc(container, "createEmpresa"))
		empresasGroup.PUT("/:id", controllers.HandleEmpresaFunc(container, "updateEmpresa"))
		empresasGroup.DELETE("/:id", controllers.HandleEmpresaFunc(container, "deleteEmpresa"))
	}

	// Rutas de transporte
	rutasGroup := auth.Group("/rutas")
	{
		rutasGroup.GET("/:id", controllers.HandleRutaFunc(container, "getRuta"))
		rutasGroup.POST("", controllers.HandleRutaFunc(container, "createRuta"))
		rutasGroup.PUT("/:id", controllers.HandleRutaFunc(container, "updateRuta"))
		rutasGroup.DELETE("/:id", controllers.HandleRutaFunc(container, "deleteRuta"))
	}

	// Conductores
	conductoresGroup := auth.Group("/conductores")
	{
		conductoresGroup.GET("/:id", controllers.HandleConductorFunc(container, "getConductor"))
		conductoresGroup.POST("", controllers.HandleConductorFunc(container, "createConductor"))
		conductoresGroup.PUT("/:id", controllers.HandleConductorFunc(container, "updateConductor"))
		conductoresGroup.DELETE("/:id", controllers.HandleConductorFunc(container, "deleteConductor"))
	}

	// Tipos de novedad
	tiposGroup := auth.Group("/tipo-novedades")
	{
		tiposGroup.GET("/:id", controllers.HandleTipoNovedadFunc(container, "getTipoNovedad"))
		tiposGroup.POST("", controllers.HandleTipoNovedadFunc(container, "createTipoNovedad"))
		tiposGroup.PUT("/:id", controllers.HandleTipoNovedadFunc(container, "updateTipoNovedad"))
		tiposGroup.DELETE("/:id", controllers.HandleTipoNovedadFunc(container, "deleteTipoNovedad"))
	}

	// Registros de turno
	registrosGroup := auth.Group("/registros")
	{
		registrosGroup.GET("", controllers.HandleRegistroFunc(container, "getRegistros"))
		registrosGroup.GET("/export", controllers.HandleRegistroFunc(container, "exportRegistros"))
		registrosGroup.GET("/:id", controllers.HandleRegistroFunc(container, "getRegistro"))
		registrosGroup.PUT("/:id", controllers.HandleRegistroFunc(container, "updateRegistro"))
		registrosGroup.DELETE("/:id", controllers.HandleRegistroFunc(container, "deleteRegistro"))
	}

	// Reportes
	statsGroup := auth.Group("/stats")
	{
		statsGroup.GET("", controllers.HandleStatsFunc(container, "getBasicStats"))
		statsGroup.GET("/dashboard", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleStatsFunc(container, "getDashboard"))
		statsGroup.GET("/dashboard-advanced", controllers.HandleStatsFunc(container, "getDashboardStats"))
		statsGroup.GET("/monthly-comparison", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleStatsFunc(container, "getMonthlyComparison"))
		statsGroup.GET("/company-performance", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleStatsFunc(container, "getCompanyPerformance"))
	}
}
