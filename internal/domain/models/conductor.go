package models

import "time"

// Conductor es un conductor de la flota, opcionalmente asociado a una empresa
type Conductor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"type:varchar(100);not null" json:"nombre"`
	Cedula    string    `gorm:"type:varchar(20);index" json:"cedula"`
	Telefono  string    `gorm:"type:varchar(20)" json:"telefono"`
	Email     string    `gorm:"type:varchar(100)" json:"email"`
	EmpresaID *uint     `gorm:"index" json:"empresa_id"`
	Empresa   *Empresa  `gorm:"foreignKey:EmpresaID" json:"empresa,omitempty"`
	Activo    bool      `gorm:"not null" json:"activo"`
	CreatedAt time.Time `gorm:"column:fecha_creacion" json:"fecha_creacion"`
	UpdatedAt time.Time `gorm:"column:fecha_actualizacion" json:"fecha_actualizacion"`
}

// TableName fija el nombre de la tabla
func (Conductor) TableName() string {
	return "conductores"
}
