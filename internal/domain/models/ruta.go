package models

import "time"

// Ruta es un recorrido de servicio entre un origen y un destino
type Ruta struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Nombre      string    `gorm:"type:varchar(100);not null" json:"nombre"`
	Numero      string    `gorm:"type:varchar(20)" json:"numero"`
	Descripcion string    `gorm:"type:text" json:"descripcion"`
	Origen      string    `gorm:"type:varchar(100)" json:"origen"`
	Destino     string    `gorm:"type:varchar(100)" json:"destino"`
	Activo      bool      `gorm:"not null" json:"activo"`
	CreatedAt   time.Time `gorm:"column:fecha_creacion" json:"fecha_creacion"`
	UpdatedAt   time.Time `gorm:"column:fecha_actualizacion" json:"fecha_actualizacion"`
}

// TableName fija el nombre de la tabla
func (Ruta) TableName() string {
	return "rutas"
}
