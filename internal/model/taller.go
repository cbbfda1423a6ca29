package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Taller is a bookable workshop.
type Taller struct {
	Base
	Nombre         string          `json:"nombre" gorm:"size:200;not null"`
	Descripcion    string          `json:"descripcion,omitempty" gorm:"type:text"`
	FechaInicio    time.Time       `json:"fecha_inicio" gorm:"not null;index"`
	FechaFin       time.Time       `json:"fecha_fin" gorm:"not null"`
	Horario        string          `json:"horario" gorm:"size:100;not null"`
	Modalidad      Modalidad       `json:"modalidad" gorm:"type:varchar(20);not null"`
	Duracion       int             `json:"duracion" gorm:"not null"`
	Precio         decimal.Decimal `json:"precio" gorm:"type:decimal(12,2);not null"`
	CupoTotal      int             `json:"cupo_total" gorm:"not null"`
	CupoDisponible int             `json:"cupo_disponible" gorm:"not null"`
	IDSubcategoria string          `json:"id_subcategoria" gorm:"type:char(24);not null;index"`
	Estado         Estado          `json:"estado" gorm:"type:varchar(20);not null;default:'activo';index"`
	ImagenURL      string          `json:"imagen_url,omitempty" gorm:"size:500"`

	Subcategoria *Subcategoria `json:"subcategoria,omitempty" gorm:"foreignKey:IDSubcategoria"`
}

func (Taller) TableName() string { return "talleres" }

// Bloque is a time block inside a workshop with its own seat count.
type Bloque struct {
	Base
	Nombre         string    `json:"nombre" gorm:"size:200;not null"`
	Descripcion    string    `json:"descripcion,omitempty" gorm:"type:text"`
	FechaInicio    time.Time `json:"fecha_inicio" gorm:"not null"`
	FechaFin       time.Time `json:"fecha_fin" gorm:"not null"`
	Horario        string    `json:"horario" gorm:"size:100;not null"`
	IDTaller       string    `json:"id_taller" gorm:"type:char(24);not null;index"`
	CupoTotal      int       `json:"cupo_total" gorm:"not null"`
	CupoDisponible int       `json:"cupo_disponible" gorm:"not null"`
	Estado         Estado    `json:"estado" gorm:"type:varchar(20);not null;default:'activo'"`

	Taller *Taller `json:"taller,omitempty" gorm:"foreignKey:IDTaller"`
}

func (Bloque) TableName() string { return "bloques" }
