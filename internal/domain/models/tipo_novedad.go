package models

import "time"

// Severidad es el nivel de una novedad. El orden total es
// critica > alta > media > baja.
type Severidad string

const (
	SeveridadBaja    Severidad = "baja"
	SeveridadMedia   Severidad = "media"
	SeveridadAlta    Severidad = "alta"
	SeveridadCritica Severidad = "critica"
)

var severidadRank = map[Severidad]int{
	SeveridadBaja:    1,
	SeveridadMedia:   2,
	SeveridadAlta:    3,
	SeveridadCritica: 4,
}

// Rank retorna la posición de la severidad en el orden total (baja=1 ... critica=4).
// Una severidad desconocida retorna 0.
func (s Severidad) Rank() int {
	return severidadRank[s]
}

// Valida indica si el valor pertenece al conjunto de severidades
func (s Severidad) Valida() bool {
	_, ok := severidadRank[s]
	return ok
}

// SeveridadesOrdenadas retorna las severidades de mayor a menor
func SeveridadesOrdenadas() []Severidad {
	return []Severidad{SeveridadCritica, SeveridadAlta, SeveridadMedia, SeveridadBaja}
}

// TipoNovedad es la taxonomía de incidentes reportables en un registro
type TipoNovedad struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Nombre      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"nombre"`
	Descripcion string    `gorm:"type:text" json:"descripcion"`
	Severidad   Severidad `gorm:"type:varchar(10);not null;default:media" json:"severidad"`
	Color       string    `gorm:"type:varchar(7);default:#6b7280" json:"color"` // hex para el panel
	Activo      bool      `gorm:"not null" json:"activo"`
	CreatedAt   time.Time `gorm:"column:fecha_creacion" json:"fecha_creacion"`
	UpdatedAt   time.Time `gorm:"column:fecha_actualizacion" json:"fecha_actualizacion"`
}

// TableName fija el nombre de la tabla
func (TipoNovedad) TableName() string {
	return "tipo_novedades"
}
