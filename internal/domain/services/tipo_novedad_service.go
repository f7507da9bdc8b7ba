package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/infrastructure/config"
)

// TipoNovedadFilter son los filtros del listado de tipos de novedad
type TipoNovedadFilter struct {
	Search    string // subcadena sobre el nombre
	Severidad *models.Severidad
	Activo    *bool
}

// TipoNovedadPatch es la actualización parcial de un tipo de novedad
type TipoNovedadPatch struct {
	Nombre      *string
	Descripcion *string
	Severidad   *models.Severidad
	Color       *string
	Activo      *bool
}

// InterfaceTipoNovedadService define el servicio de tipos de novedad
type InterfaceTipoNovedadService interface {
	GetAllTiposNovedad(page, limit int, filter TipoNovedadFilter) ([]models.TipoNovedad, int64, error)
	GetTiposNovedadActivos() ([]models.TipoNovedad, error)
	GetTipoNovedadByID(id uint) (*models.TipoNovedad, error)
	CreateTipoNovedad(tipo *models.TipoNovedad) error
	UpdateTipoNovedad(id uint, patch TipoNovedadPatch) (*models.TipoNovedad, error)
	DeleteTipoNovedad(id uint) error
}

// TipoNovedadService provee las operaciones sobre la taxonomía de novedades
type TipoNovedadService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewTipoNovedadService crea un nuevo servicio de tipos de novedad
func NewTipoNovedadService(db *gorm.DB, cfg *config.Config) InterfaceTipoNovedadService {
	return &TipoNovedadService{
		DB:     db,
		Config: cfg,
	}
}

func (s *TipoNovedadService) applyFilter(filter TipoNovedadFilter) *gorm.DB {
	query := s.DB.Model(&models.TipoNovedad{})
	if filter.Search != "" {
		query = query.Where("nombre LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Severidad != nil {
		query = query.Where("severidad = ?", *filter.Severidad)
	}
	if filter.Activo != nil {
		query = query.Where("activo = ?", *filter.Activo)
	}
	return query
}

// GetAllTiposNovedad lista tipos de novedad con filtros y paginación
func (s *TipoNovedadService) GetAllTiposNovedad(page, limit int, filter TipoNovedadFilter) ([]models.TipoNovedad, int64, error) {
	var tipos []models.TipoNovedad
	var total int64

	if err := s.applyFilter(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := s.applyFilter(filter).
		Order("nombre ASC").
		Limit(limit).Offset(offset).
		Find(&tipos).Error; err != nil {
		return nil, 0, err
	}

	return tipos, total, nil
}

// GetTiposNovedadActivos lista los tipos activos para el formulario público
func (s *TipoNovedadService) GetTiposNovedadActivos() ([]models.TipoNovedad, error) {
	var tipos []models.TipoNovedad
	if err := s.DB.Where("activo = ?", true).Order("nombre ASC").Find(&tipos).Error; err != nil {
		return nil, err
	}
	return tipos, nil
}

// GetTipoNovedadByID retorna un tipo de novedad por su ID
func (s *TipoNovedadService) GetTipoNovedadByID(id uint) (*models.TipoNovedad, error) {
	var tipo models.TipoNovedad
	if err := s.DB.First(&tipo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Tipo de novedad no encontrado")
		}
		return nil, err
	}
	return &tipo, nil
}

// CreateTipoNovedad inserta un tipo nuevo validando la severidad
func (s *TipoNovedadService) CreateTipoNovedad(tipo *models.TipoNovedad) error {
	if tipo.Severidad == "" {
		tipo.Severidad = models.SeveridadMedia
	}
	if !tipo.Severidad.Valida() {
		return validation("Severidad inválida: debe ser baja, media, alta o critica")
	}

	var count int64
	if err := s.DB.Model(&models.TipoNovedad{}).Where("nombre = ?", tipo.Nombre).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return conflict("El tipo de novedad ya existe")
	}

	tipo.Activo = true
	if err := s.DB.Create(tipo).Error; err != nil {
		if isDuplicateKey(err) {
			return conflict("El tipo de novedad ya existe")
		}
		return err
	}
	return nil
}

// UpdateTipoNovedad aplica el parche campo a campo y refresca fecha_actualizacion
func (s *TipoNovedadService) UpdateTipoNovedad(id uint, patch TipoNovedadPatch) (*models.TipoNovedad, error) {
	tipo, err := s.GetTipoNovedadByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Nombre != nil && *patch.Nombre != tipo.Nombre {
		var count int64
		if err := s.DB.Model(&models.TipoNovedad{}).
			Where("nombre = ? AND id != ?", *patch.Nombre, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, conflict("El tipo de novedad ya existe")
		}
		tipo.Nombre = *patch.Nombre
	}
	if patch.Descripcion != nil {
		tipo.Descripcion = *patch.Descripcion
	}
	if patch.Severidad != nil {
		if !patch.Severidad.Valida() {
			return nil, validation("Severidad inválida: debe ser baja, media, alta o critica")
		}
		tipo.Severidad = *patch.Severidad
	}
	if patch.Color != nil {
		tipo.Color = *patch.Color
	}
	if patch.Activo != nil {
		tipo.Activo = *patch.Activo
	}

	if err := s.DB.Save(tipo).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, conflict("El tipo de novedad ya existe")
		}
		return nil, err
	}
	return tipo, nil
}

// DeleteTipoNovedad desactiva el tipo (borrado lógico)
func (s *TipoNovedadService) DeleteTipoNovedad(id uint) error {
	tipo, err := s.GetTipoNovedadByID(id)
	if err != nil {
		return err
	}

	tipo.Activo = false
	return s.DB.Save(tipo).Error
}
