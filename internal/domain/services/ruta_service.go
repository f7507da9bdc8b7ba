package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/infrastructure/config"
)

// RutaFilter son los filtros del listado de rutas
type RutaFilter struct {
	Search string // subcadena sobre nombre, número, origen o destino
	Activo *bool
}

// RutaPatch es la actualización parcial de una ruta
type RutaPatch struct {
	Nombre      *string
	Numero      *string
	Descripcion *string
	Origen      *string
	Destino     *string
	Activo      *bool
}

// InterfaceRutaService define el servicio de rutas
type InterfaceRutaService interface {
	GetAllRutas(page, limit int, filter RutaFilter) ([]models.Ruta, int64, error)
	GetRutasActivas() ([]models.Ruta, error)
	GetRutaByID(id uint) (*models.Ruta, error)
	CreateRuta(ruta *models.Ruta) error
	UpdateRuta(id uint, patch RutaPatch) (*models.Ruta, error)
	DeleteRuta(id uint) error
}

// RutaService provee las operaciones sobre rutas
type RutaService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewRutaService crea un nuevo servicio de rutas
func NewRutaService(db *gorm.DB, cfg *config.Config) InterfaceRutaService {
	return &RutaService{
		DB:     db,
		Config: cfg,
	}
}

func (s *RutaService) applyFilter(filter RutaFilter) *gorm.DB {
	query := s.DB.Model(&models.Ruta{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("nombre LIKE ? OR numero LIKE ? OR origen LIKE ? OR destino LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if filter.Activo != nil {
		query = query.Where("activo = ?", *filter.Activo)
	}
	return query
}

// GetAllRutas lista rutas con filtros y paginación, ordenadas por nombre
func (s *RutaService) GetAllRutas(page, limit int, filter RutaFilter) ([]models.Ruta, int64, error) {
	var rutas []models.Ruta
	var total int64

	if err := s.applyFilter(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := s.applyFilter(filter).
		Order("nombre ASC").
		Limit(limit).Offset(offset).
		Find(&rutas).Error; err != nil {
		return nil, 0, err
	}

	return rutas, total, nil
}

// GetRutasActivas lista las rutas activas para el formulario público
func (s *RutaService) GetRutasActivas() ([]models.Ruta, error) {
	var rutas []models.Ruta
	if err := s.DB.Where("activo = ?", true).Order("nombre ASC").Find(&rutas).Error; err != nil {
		return nil, err
	}
	return rutas, nil
}

// GetRutaByID retorna una ruta por su ID
func (s *RutaService) GetRutaByID(id uint) (*models.Ruta, error) {
	var ruta models.Ruta
	if err := s.DB.First(&ruta, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Ruta no encontrada")
		}
		return nil, err
	}
	return &ruta, nil
}

// CreateRuta inserta una ruta nueva
func (s *RutaService) CreateRuta(ruta *models.Ruta) error {
	ruta.Activo = true
	return s.DB.Create(ruta).Error
}

// UpdateRuta aplica el parche campo a campo y refresca fecha_actualizacion
func (s *RutaService) UpdateRuta(id uint, patch RutaPatch) (*models.Ruta, error) {
	ruta, err := s.GetRutaByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Nombre != nil {
		ruta.Nombre = *patch.Nombre
	}
	if patch.Numero != nil {
		ruta.Numero = *patch.Numero
	}
	if patch.Descripcion != nil {
		ruta.Descripcion = *patch.Descripcion
	}
	if patch.Origen != nil {
		ruta.Origen = *patch.Origen
	}
	if patch.Destino != nil {
		ruta.Destino = *patch.Destino
	}
	if patch.Activo != nil {
		ruta.Activo = *patch.Activo
	}

	if err := s.DB.Save(ruta).Error; err != nil {
		return nil, err
	}
	return ruta, nil
}

// DeleteRuta desactiva la ruta (borrado lógico)
func (s *RutaService) DeleteRuta(id uint) error {
	ruta, err := s.GetRutaByID(id)
	if err != nil {
		return err
	}

	ruta.Activo = false
	return s.DB.Save(ruta).Error
}
