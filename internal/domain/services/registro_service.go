package services

import (
	"errors"
	"time"

	"github.com/jszwec/csvutil"
	"gorm.io/gorm"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/infrastructure/config"
)

// RegistroFilter son los filtros del listado de registros
type RegistroFilter struct {
	FechaInicio   *time.Time
	FechaFin      *time.Time
	EmpresaID     *uint
	RutaID        *uint
	ConductorID   *uint
	TipoNovedadID *uint
	Vehiculo      string // subcadena
	ConNovedad    *bool  // true: solo con novedad; false: solo sin novedad
}

// RegistroPatch es la actualización parcial de un registro
type RegistroPatch struct {
	Fecha         *time.Time
	EmpresaID     *uint
	RutaID        *uint
	ConductorID   *uint
	Vehiculo      *string
	Tabla         *string
	HoraInicio    *string
	HoraFin       *string
	Servicio      *string
	TipoNovedadID *uint
	Observaciones *string
}

// registroCSV es la fila desnormalizada del export
type registroCSV struct {
	ID            uint   `csv:"id"`
	Fecha         string `csv:"fecha"`
	Empresa       string `csv:"empresa"`
	Prefijo       string `csv:"prefijo"`
	Ruta          string `csv:"ruta"`
	Conductor     string `csv:"conductor"`
	Vehiculo      string `csv:"vehiculo"`
	Tabla         string `csv:"tabla"`
	HoraInicio    string `csv:"hora_inicio"`
	HoraFin       string `csv:"hora_fin"`
	Servicio      string `csv:"servicio"`
	Novedad       string `csv:"novedad"`
	Severidad     string `csv:"severidad"`
	Observaciones string `csv:"observaciones"`
}

// InterfaceRegistroService define el servicio de registros
type InterfaceRegistroService interface {
	GetAllRegistros(page, limit int, filter RegistroFilter) ([]models.Registro, int64, error)
	GetRegistroByID(id uint) (*models.Registro, error)
	CreateRegistro(registro *models.Registro) error
	UpdateRegistro(id uint, patch RegistroPatch) (*models.Registro, error)
	DeleteRegistro(id uint) error
	ExportRegistros(filter RegistroFilter) ([]byte, error)
}

// RegistroService provee las operaciones sobre la tabla de hechos
type RegistroService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewRegistroService crea un nuevo servicio de registros
func NewRegistroService(db *gorm.DB, cfg *config.Config) InterfaceRegistroService {
	return &RegistroService{
		DB:     db,
		Config: cfg,
	}
}

func (s *RegistroService) applyFilter(filter RegistroFilter) *gorm.DB {
	query := s.DB.Model(&models.Registro{})
	if filter.FechaInicio != nil {
		query = query.Where("fecha >= ?", *filter.FechaInicio)
	}
	if filter.FechaFin != nil {
		query = query.Where("fecha <= ?", *filter.FechaFin)
	}
	if filter.EmpresaID != nil {
		query = query.Where("empresa_id = ?", *filter.EmpresaID)
	}
	if filter.RutaID != nil {
		query = query.Where("ruta_id = ?", *filter.RutaID)
	}
	if filter.ConductorID != nil {
		query = query.Where("conductor_id = ?", *filter.ConductorID)
	}
	if filter.TipoNovedadID != nil {
		query = query.Where("tipo_novedad_id = ?", *filter.TipoNovedadID)
	}
	if filter.Vehiculo != "" {
		query = query.Where("vehiculo LIKE ?", "%"+filter.Vehiculo+"%")
	}
	if filter.ConNovedad != nil {
		if *filter.ConNovedad {
			query = query.Where("tipo_novedad_id IS NOT NULL")
		} else {
			query = query.Where("tipo_novedad_id IS NULL")
		}
	}
	return query
}

// GetAllRegistros lista registros con filtros y paginación, del más reciente
// al más antiguo, con las asociaciones precargadas para el panel.
func (s *RegistroService) GetAllRegistros(page, limit int, filter RegistroFilter) ([]models.Registro, int64, error) {
	var registros []models.Registro
	var total int64

	if err := s.applyFilter(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := s.applyFilter(filter).
		Preload("Empresa").Preload("Ruta").Preload("Conductor").Preload("TipoNovedad").
		Order("fecha DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&registros).Error; err != nil {
		return nil, 0, err
	}

	return registros, total, nil
}

// GetRegistroByID retorna un registro por su ID con sus asociaciones
func (s *RegistroService) GetRegistroByID(id uint) (*models.Registro, error) {
	var registro models.Registro
	if err := s.DB.
		Preload("Empresa").Preload("Ruta").Preload("Conductor").Preload("TipoNovedad").
		First(&registro, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Registro no encontrado")
		}
		return nil, err
	}
	return &registro, nil
}

// validarHoras exige formato HH:MM y hora_fin >= hora_inicio
func validarHoras(horaInicio, horaFin string) error {
	inicio, err := time.Parse("15:04", horaInicio)
	if err != nil {
		return validation("hora_inicio inválida: se espera formato HH:MM")
	}
	fin, err := time.Parse("15:04", horaFin)
	if err != nil {
		return validation("hora_fin inválida: se espera formato HH:MM")
	}
	if fin.Before(inicio) {
		return validation("hora_fin debe ser mayor o igual a hora_inicio")
	}
	return nil
}

// checkReferencias verifica la existencia de cada clave foránea provista.
// El endpoint público de creación es una frontera de confianza: nunca se
// acepta un id anónimo sin comprobarlo.
func (s *RegistroService) checkReferencias(empresaID uint, rutaID, conductorID, tipoNovedadID *uint) error {
	var count int64
	if err := s.DB.Model(&models.Empresa{}).Where("id = ?", empresaID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return invalidReference("La empresa referenciada no existe")
	}

	if rutaID != nil {
		if err := s.DB.Model(&models.Ruta{}).Where("id = ?", *rutaID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return invalidReference("La ruta referenciada no existe")
		}
	}
	if conductorID != nil {
		if err := s.DB.Model(&models.Conductor{}).Where("id = ?", *conductorID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return invalidReference("El conductor referenciado no existe")
		}
	}
	if tipoNovedadID != nil {
		if err := s.DB.Model(&models.TipoNovedad{}).Where("id = ?", *tipoNovedadID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return invalidReference("El tipo de novedad referenciado no existe")
		}
	}
	return nil
}

// CreateRegistro valida e inserta un registro nuevo
func (s *RegistroService) CreateRegistro(registro *models.Registro) error {
	if registro.Fecha.IsZero() || registro.EmpresaID == 0 || registro.Vehiculo == "" ||
		registro.HoraInicio == "" || registro.HoraFin == "" || registro.Servicio == "" {
		return validation("Campos obligatorios faltantes: fecha, empresa_id, vehiculo, hora_inicio, hora_fin y servicio son requeridos")
	}
	if err := validarHoras(registro.HoraInicio, registro.HoraFin); err != nil {
		return err
	}
	if err := s.checkReferencias(registro.EmpresaID, registro.RutaID, registro.ConductorID, registro.TipoNovedadID); err != nil {
		return err
	}

	registro.Empresa = nil
	registro.Ruta = nil
	registro.Conductor = nil
	registro.TipoNovedad = nil
	return s.DB.Create(registro).Error
}

// UpdateRegistro aplica el parche campo a campo sobre la fila actual,
// revalidando horas y referencias, y refresca fecha_actualizacion.
func (s *RegistroService) UpdateRegistro(id uint, patch RegistroPatch) (*models.Registro, error) {
	registro, err := s.GetRegistroByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Fecha != nil {
		registro.Fecha = *patch.Fecha
	}
	if patch.EmpresaID != nil {
		registro.EmpresaID = *patch.EmpresaID
	}
	if patch.RutaID != nil {
		registro.RutaID = patch.RutaID
	}
	if patch.ConductorID != nil {
		registro.ConductorID = patch.ConductorID
	}
	if patch.Vehiculo != nil {
		registro.Vehiculo = *patch.Vehiculo
	}
	if patch.Tabla != nil {
		registro.Tabla = *patch.Tabla
	}
	if patch.HoraInicio != nil {
		registro.HoraInicio = *patch.HoraInicio
	}
	if patch.HoraFin != nil {
		registro.HoraFin = *patch.HoraFin
	}
	if patch.Servicio != nil {
		registro.Servicio = *patch.Servicio
	}
	if patch.TipoNovedadID != nil {
		registro.TipoNovedadID = patch.TipoNovedadID
	}
	if patch.Observaciones != nil {
		registro.Observaciones = *patch.Observaciones
	}

	if err := validarHoras(registro.HoraInicio, registro.HoraFin); err != nil {
		return nil, err
	}
	if err := s.checkReferencias(registro.EmpresaID, registro.RutaID, registro.ConductorID, registro.TipoNovedadID); err != nil {
		return nil, err
	}

	registro.Empresa = nil
	registro.Ruta = nil
	registro.Conductor = nil
	registro.TipoNovedad = nil
	if err := s.DB.Save(registro).Error; err != nil {
		return nil, err
	}
	return s.GetRegistroByID(id)
}

// DeleteRegistro elimina el registro físicamente. A diferencia de las
// entidades de referencia, los registros no se borran en forma lógica.
func (s *RegistroService) DeleteRegistro(id uint) error {
	result := s.DB.Delete(&models.Registro{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("Registro no encontrado")
	}
	return nil
}

// ExportRegistros genera el CSV desnormalizado del conjunto filtrado,
// sin paginar, en el mismo orden del listado.
func (s *RegistroService) ExportRegistros(filter RegistroFilter) ([]byte, error) {
	var registros []models.Registro
	if err := s.applyFilter(filter).
		Preload("Empresa").Preload("Ruta").Preload("Conductor").Preload("TipoNovedad").
		Order("fecha DESC, id DESC").
		Find(&registros).Error; err != nil {
		return nil, err
	}

	filas := make([]registroCSV, 0, len(registros))
	for _, r := range registros {
		fila := registroCSV{
			ID:            r.ID,
			Fecha:         r.Fecha.Format("2006-01-02"),
			Vehiculo:      r.Vehiculo,
			Tabla:         r.Tabla,
			HoraInicio:    r.HoraInicio,
			HoraFin:       r.HoraFin,
			Servicio:      r.Servicio,
			Observaciones: r.Observaciones,
		}
		if r.Empresa != nil {
			fila.Empresa = r.Empresa.Nombre
			fila.Prefijo = r.Empresa.Prefijo
		}
		if r.Ruta != nil {
			fila.Ruta = r.Ruta.Nombre
		}
		if r.Conductor != nil {
			fila.Conductor = r.Conductor.Nombre
		}
		if r.TipoNovedad != nil {
			fila.Novedad = r.TipoNovedad.Nombre
			fila.Severidad = string(r.TipoNovedad.Severidad)
		}
		filas = append(filas, fila)
	}

	return csvutil.Marshal(filas)
}
