package models

import "time"

// Usuario representa una cuenta del panel de administración. Se crea por el
// endpoint de bootstrap y solo muta en el login (ultimo_acceso).
type Usuario struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password     string     `gorm:"type:varchar(100);not null" json:"-"` // hash bcrypt, nunca se expone
	Email        string     `gorm:"type:varchar(100)" json:"email"`
	Rol          string     `gorm:"type:varchar(20);not null;default:admin" json:"rol"`
	Activo       bool       `gorm:"not null" json:"activo"`
	UltimoAcceso *time.Time `json:"ultimo_acceso"`
	CreatedAt    time.Time  `gorm:"column:fecha_creacion" json:"fecha_creacion"`
	UpdatedAt    time.Time  `gorm:"column:fecha_actualizacion" json:"fecha_actualizacion"`
}

// TableName fija el nombre de la tabla
func (Usuario) TableName() string {
	return "usuarios"
}
