package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/infrastructure/config"
)

// EmpresaFilter son los filtros del listado de empresas
type EmpresaFilter struct {
	Search string // subcadena sobre nombre o prefijo
	Activo *bool
}

// EmpresaPatch es la actualización parcial: los campos nil conservan el valor
// actual de la fila.
type EmpresaPatch struct {
	Nombre  *string
	Prefijo *string
	Activo  *bool
}

// InterfaceEmpresaService define el servicio de empresas
type InterfaceEmpresaService interface {
	GetAllEmpresas(page, limit int, filter EmpresaFilter) ([]models.Empresa, int64, error)
	GetEmpresasActivas() ([]models.Empresa, error)
	GetEmpresaByID(id uint) (*models.Empresa, error)
	CreateEmpresa(empresa *models.Empresa) error
	UpdateEmpresa(id uint, patch EmpresaPatch) (*models.Empresa, error)
	DeleteEmpresa(id uint) error
}

// EmpresaService provee las operaciones sobre empresas
type EmpresaService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewEmpresaService crea un nuevo servicio de empresas
func NewEmpresaService(db *gorm.DB, cfg *config.Config) InterfaceEmpresaService {
	return &EmpresaService{
		DB:     db,
		Config: cfg,
	}
}

func (s *EmpresaService) applyFilter(filter EmpresaFilter) *gorm.DB {
	query := s.DB.Model(&models.Empresa{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("nombre LIKE ? OR prefijo LIKE ?", pattern, pattern)
	}
	if filter.Activo != nil {
		query = query.Where("activo = ?", *filter.Activo)
	}
	return query
}

// GetAllEmpresas lista empresas con filtros y paginación, ordenadas por nombre
func (s *EmpresaService) GetAllEmpresas(page, limit int, filter EmpresaFilter) ([]models.Empresa, int64, error) {
	var empresas []models.Empresa
	var total int64

	if err := s.applyFilter(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := s.applyFilter(filter).
		Order("nombre ASC").
		Limit(limit).Offset(offset).
		Find(&empresas).Error; err != nil {
		return nil, 0, err
	}

	return empresas, total, nil
}

// GetEmpresasActivas lista las empresas activas para el formulario público
func (s *EmpresaService) GetEmpresasActivas() ([]models.Empresa, error) {
	var empresas []models.Empresa
	if err := s.DB.Where("activo = ?", true).Order("nombre ASC").Find(&empresas).Error; err != nil {
		return nil, err
	}
	return empresas, nil
}

// GetEmpresaByID retorna una empresa por su ID
func (s *EmpresaService) GetEmpresaByID(id uint) (*models.Empresa, error) {
	var empresa models.Empresa
	if err := s.DB.First(&empresa, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Empresa no encontrada")
		}
		return nil, err
	}
	return &empresa, nil
}

// CreateEmpresa inserta una empresa nueva. Nombre y prefijo deben ser únicos.
func (s *EmpresaService) CreateEmpresa(empresa *models.Empresa) error {
	var count int64
	if err := s.DB.Model(&models.Empresa{}).
		Where("nombre = ? OR prefijo = ?", empresa.Nombre, empresa.Prefijo).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return conflict("La empresa o prefijo ya existe")
	}

	empresa.Activo = true
	if err := s.DB.Create(empresa).Error; err != nil {
		if isDuplicateKey(err) {
			return conflict("La empresa o prefijo ya existe")
		}
		return err
	}
	return nil
}

// UpdateEmpresa aplica el parche campo a campo sobre la fila actual y
// refresca fecha_actualizacion aunque el parche venga vacío.
func (s *EmpresaService) UpdateEmpresa(id uint, patch EmpresaPatch) (*models.Empresa, error) {
	empresa, err := s.GetEmpresaByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Nombre != nil && *patch.Nombre != empresa.Nombre {
		var count int64
		if err := s.DB.Model(&models.Empresa{}).
			Where("nombre = ? AND id != ?", *patch.Nombre, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, conflict("La empresa o prefijo ya existe")
		}
		empresa.Nombre = *patch.Nombre
	}
	if patch.Prefijo != nil && *patch.Prefijo != empresa.Prefijo {
		var count int64
		if err := s.DB.Model(&models.Empresa{}).
			Where("prefijo = ? AND id != ?", *patch.Prefijo, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, conflict("La empresa o prefijo ya existe")
		}
		empresa.Prefijo = *patch.Prefijo
	}
	if patch.Activo != nil {
		empresa.Activo = *patch.Activo
	}

	if err := s.DB.Save(empresa).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, conflict("La empresa o prefijo ya existe")
		}
		return nil, err
	}
	return empresa, nil
}

// DeleteEmpresa desactiva la empresa (borrado lógico). Los registros
// históricos conservan su clave foránea.
func (s *EmpresaService) DeleteEmpresa(id uint) error {
	empresa, err := s.GetEmpresaByID(id)
	if err != nil {
		return err
	}

	empresa.Activo = false
	return s.DB.Save(empresa).Error
}
