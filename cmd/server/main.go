// @title           TransControl API
// @version         1.0
// @description     API de control de flota y registro de novedades de turnos de transporte

// @host      localhost:3000
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Ingrese el token con el prefijo `Bearer `
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"gorm.io/gorm"

	"github.com/Miguel-Alz/trascontrol/internal/app/routes"
	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/infrastructure/config"
	"github.com/Miguel-Alz/trascontrol/internal/infrastructure/database"
	"github.com/Miguel-Alz/trascontrol/pkg/logger"
	"github.com/Miguel-Alz/trascontrol/pkg/utils"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	if err := logger.SetupLogger(); err != nil {
		fmt.Printf("No se pudo inicializar el log: %v\n", err)
		os.Exit(1)
	}

	// Cargar .env; si no existe se usan las variables del entorno
	if err := godotenv.Load(); err != nil {
		logger.Warning("No se pudo cargar el archivo .env: %v", err)
	} else {
		logger.Info("Archivo .env cargado")
	}

	cfg := config.LoadConfig()

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		log.Fatalf("No se pudo crear el pool de conexiones: %v", err)
	}
	db := pool.GetDB()

	switch cfg.DBMigrationMode {
	case "drop":
		log.Println("Advertencia: modo drop, se eliminarán y recrearán todas las tablas")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("Falló la recreación de tablas: %v", err)
		}
	case "alter":
		log.Println("Modo alter: se ajustará el esquema al modelo")
		if err := db.AutoMigrate(allModels()...); err != nil {
			log.Fatalf("Falló la migración: %v", err)
		}
	default:
		log.Println("Modo estándar: solo se agregan tablas y columnas nuevas")
		if err := autoMigrate(db); err != nil {
			log.Fatalf("Falló la migración automática: %v", err)
		}
	}

	ensureAdminExists(db, cfg)

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})

	r := routes.SetupRouter(db, cfg, redisClient)

	printSystemInfo(pool)

	port := cfg.ServerPort
	logger.Info("Servidor escuchando en http://0.0.0.0:%s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		logger.Error("No se pudo iniciar el servidor: %v", err)
		os.Exit(1)
	}
}

// allModels retorna todos los modelos del esquema
func allModels() []interface{} {
	return []interface{}{
		&models.Usuario{},
		&models.Empresa{},
		&models.Ruta{},
		&models.Conductor{},
		&models.TipoNovedad{},
		&models.Registro{},
	}
}

// autoMigrate agrega tablas y columnas nuevas sin tocar las existentes
func autoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return err
	}
	log.Println("Migración de base de datos completada")
	return nil
}

// dropAndRecreateTables elimina todas las tablas y las vuelve a crear
func dropAndRecreateTables(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("no se pudo obtener la conexión SQL: %w", err)
	}

	if _, err := sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		log.Printf("No se pudo desactivar la verificación de claves foráneas: %v", err)
	}
	defer sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 1")

	tables := []string{
		"registros", "conductores", "tipo_novedades", "rutas", "empresas", "usuarios",
	}
	for _, table := range tables {
		log.Printf("Eliminando tabla: %s", table)
		if _, err := sqlDB.Exec("DROP TABLE IF EXISTS " + table); err != nil {
			log.Printf("No se pudo eliminar la tabla %s: %v", table, err)
		}
	}

	return autoMigrate(db)
}

// ensureAdminExists crea la cuenta de administrador si no hay usuarios
func ensureAdminExists(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.Usuario{}).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := utils.HashPassword(cfg.DefaultAdminPassword)
	if err != nil {
		log.Fatalf("No se pudo generar el hash de la contraseña: %v", err)
	}

	admin := models.Usuario{
		Username: cfg.DefaultAdminUsername,
		Password: hashed,
		Rol:      "admin",
		Activo:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("No se pudo crear el administrador inicial: %v", err)
	}
	log.Println("Cuenta de administrador inicial creada")
}

// printSystemInfo imprime el estado del pool y los recursos del sistema
func printSystemInfo(pool *database.ConnectionPool) {
	if err := pool.HealthCheck(); err != nil {
		logger.Warning("La base de datos no responde: %v", err)
	}
	if stats, err := pool.Stats(); err == nil {
		log.Printf("Estado del pool de conexiones: %+v", stats)
	}

	log.Printf("Núcleos de CPU: %d", runtime.NumCPU())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Printf("Memoria: Alloc=%v MiB, Sys=%v MiB", m.Alloc/1024/1024, m.Sys/1024/1024)
}
