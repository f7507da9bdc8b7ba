package models

import "time"

// Empresa es una compañía de transporte. El prefijo es el código corto que
// identifica a la empresa en las tablas de reportes.
type Empresa struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"nombre"`
	Prefijo   string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"prefijo"`
	Activo    bool      `gorm:"not null" json:"activo"`
	CreatedAt time.Time `gorm:"column:fecha_creacion" json:"fecha_creacion"`
	UpdatedAt time.Time `gorm:"column:fecha_actualizacion" json:"fecha_actualizacion"`
}

// TableName fija el nombre de la tabla
func (Empresa) TableName() string {
	return "empresas"
}
