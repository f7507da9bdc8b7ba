package models

import "time"

// Registro es la tabla de hechos del sistema: una fila por turno de vehículo,
// opcionalmente marcada con una novedad. Lo crea el formulario público sin
// autenticación o el panel de administración.
type Registro struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Fecha         time.Time    `gorm:"type:date;not null;index" json:"fecha"`
	EmpresaID     uint         `gorm:"not null;index" json:"empresa_id"`
	Empresa       *Empresa     `gorm:"foreignKey:EmpresaID" json:"empresa,omitempty"`
	RutaID        *uint        `gorm:"index" json:"ruta_id"`
	Ruta          *Ruta        `gorm:"foreignKey:RutaID" json:"ruta,omitempty"`
	ConductorID   *uint        `gorm:"index" json:"conductor_id"`
	Conductor     *Conductor   `gorm:"foreignKey:ConductorID" json:"conductor,omitempty"`
	Vehiculo      string       `gorm:"type:varchar(20);not null" json:"vehiculo"`
	Tabla         string       `gorm:"type:varchar(20)" json:"tabla"` // código de asignación, no es el vehículo
	HoraInicio    string       `gorm:"type:varchar(5);not null" json:"hora_inicio"`
	HoraFin       string       `gorm:"type:varchar(5);not null" json:"hora_fin"`
	Servicio      string       `gorm:"type:varchar(20);not null" json:"servicio"`
	TipoNovedadID *uint        `gorm:"index" json:"tipo_novedad_id"`
	TipoNovedad   *TipoNovedad `gorm:"foreignKey:TipoNovedadID" json:"tipo_novedad,omitempty"`
	Observaciones string       `gorm:"type:text" json:"observaciones"`
	CreadoPor     *uint        `json:"creado_por"` // null cuando entra por el formulario público
	CreatedAt     time.Time    `gorm:"column:fecha_creacion" json:"fecha_creacion"`
	UpdatedAt     time.Time    `gorm:"column:fecha_actualizacion" json:"fecha_actualizacion"`
}

// TableName fija el nombre de la tabla
func (Registro) TableName() string {
	return "registros"
}
