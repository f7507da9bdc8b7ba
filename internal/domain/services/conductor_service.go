package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/infrastructure/config"
)

// ConductorFilter son los filtros del listado de conductores
type ConductorFilter struct {
	Search    string // subcadena sobre nombre o cédula
	EmpresaID *uint
	Activo    *bool
}

// ConductorPatch es la actualización parcial de un conductor
type ConductorPatch struct {
	Nombre    *string
	Cedula    *string
	Telefono  *string
	Email     *string
	EmpresaID *uint
	Activo    *bool
}

// InterfaceConductorService define el servicio de conductores
type InterfaceConductorService interface {
	GetAllConductores(page, limit int, filter ConductorFilter) ([]models.Conductor, int64, error)
	GetConductoresActivos() ([]models.Conductor, error)
	GetConductorByID(id uint) (*models.Conductor, error)
	CreateConductor(conductor *models.Conductor) error
	UpdateConductor(id uint, patch ConductorPatch) (*models.Conductor, error)
	DeleteConductor(id uint) error
}

// ConductorService provee las operaciones sobre conductores
type ConductorService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewConductorService crea un nuevo servicio de conductores
func NewConductorService(db *gorm.DB, cfg *config.Config) InterfaceConductorService {
	return &ConductorService{
		DB:     db,
		Config: cfg,
	}
}

func (s *ConductorService) applyFilter(filter ConductorFilter) *gorm.DB {
	query := s.DB.Model(&models.Conductor{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("nombre LIKE ? OR cedula LIKE ?", pattern, pattern)
	}
	if filter.EmpresaID != nil {
		query = query.Where("empresa_id = ?", *filter.EmpresaID)
	}
	if filter.Activo != nil {
		query = query.Where("activo = ?", *filter.Activo)
	}
	return query
}

// GetAllConductores lista conductores con filtros y paginación
func (s *ConductorService) GetAllConductores(page, limit int, filter ConductorFilter) ([]models.Conductor, int64, error) {
	var conductores []models.Conductor
	var total int64

	if err := s.applyFilter(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := s.applyFilter(filter).
		Preload("Empresa").
		Order("nombre ASC").
		Limit(limit).Offset(offset).
		Find(&conductores).Error; err != nil {
		return nil, 0, err
	}

	return conductores, total, nil
}

// GetConductoresActivos lista los conductores activos para el formulario público
func (s *ConductorService) GetConductoresActivos() ([]models.Conductor, error) {
	var conductores []models.Conductor
	if err := s.DB.Where("activo = ?", true).Order("nombre ASC").Find(&conductores).Error; err != nil {
		return nil, err
	}
	return conductores, nil
}

// GetConductorByID retorna un conductor por su ID
func (s *ConductorService) GetConductorByID(id uint) (*models.Conductor, error) {
	var conductor models.Conductor
	if err := s.DB.Preload("Empresa").First(&conductor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Conductor no encontrado")
		}
		return nil, err
	}
	return &conductor, nil
}

// checkEmpresa verifica que la empresa referenciada exista
func (s *ConductorService) checkEmpresa(empresaID uint) error {
	var count int64
	if err := s.DB.Model(&models.Empresa{}).Where("id = ?", empresaID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return invalidReference("La empresa referenciada no existe")
	}
	return nil
}

// CreateConductor inserta un conductor nuevo
func (s *ConductorService) CreateConductor(conductor *models.Conductor) error {
	if conductor.EmpresaID != nil {
		if err := s.checkEmpresa(*conductor.EmpresaID); err != nil {
			return err
		}
	}

	conductor.Activo = true
	return s.DB.Create(conductor).Error
}

// UpdateConductor aplica el parche campo a campo y refresca fecha_actualizacion
func (s *ConductorService) UpdateConductor(id uint, patch ConductorPatch) (*models.Conductor, error) {
	conductor, err := s.GetConductorByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Nombre != nil {
		conductor.Nombre = *patch.Nombre
	}
	if patch.Cedula != nil {
		conductor.Cedula = *patch.Cedula
	}
	if patch.Telefono != nil {
		conductor.Telefono = *patch.Telefono
	}
	if patch.Email != nil {
		conductor.Email = *patch.Email
	}
	if patch.EmpresaID != nil {
		if err := s.checkEmpresa(*patch.EmpresaID); err != nil {
			return nil, err
		}
		conductor.EmpresaID = patch.EmpresaID
	}
	if patch.Activo != nil {
		conductor.Activo = *patch.Activo
	}

	// Evita que Save reinserte la asociación precargada
	conductor.Empresa = nil
	if err := s.DB.Save(conductor).Error; err != nil {
		return nil, err
	}
	return s.GetConductorByID(id)
}

// DeleteConductor desactiva el conductor (borrado lógico)
func (s *ConductorService) DeleteConductor(id uint) error {
	conductor, err := s.GetConductorByID(id)
	if err != nil {
		return err
	}

	conductor.Empresa = nil
	conductor.Activo = false
	return s.DB.Save(conductor).Error
}
