package model

import "time"

// Categoria is the top level of the catalog.
type Categoria struct {
	Base
	Nombre      string `json:"nombre" gorm:"uniqueIndex;size:150;not null"`
	Tipo        string `json:"tipo" gorm:"size:100;not null;index"`
	Descripcion string `json:"descripcion,omitempty" gorm:"type:text"`
	Estado      Estado `json:"estado" gorm:"type:varchar(20);not null;default:'activo';index"`
}

func (Categoria) TableName() string { return "categorias" }

type Subcategoria struct {
	Base
	Nombre      string `json:"nombre" gorm:"size:150;not null"`
	Descripcion string `json:"descripcion,omitempty" gorm:"type:text"`
	IDCategoria string `json:"id_categoria" gorm:"type:char(24);not null;index"`
	Estado      Estado `json:"estado" gorm:"type:varchar(20);not null;default:'activo'"`

	Categoria *Categoria `json:"categoria,omitempty" gorm:"foreignKey:IDCategoria"`
}

func (Subcategoria) TableName() string { return "subcategorias" }

type Servicio struct {
	Base
	Titulo         string `json:"titulo" gorm:"size:200;not null"`
	Descripcion    string `json:"descripcion,omitempty" gorm:"type:text"`
	IDSubcategoria string `json:"id_subcategoria" gorm:"type:char(24);not null;index"`
	Estado         Estado `json:"estado" gorm:"type:varchar(20);not null;default:'activo'"`
	ImagenURL      string `json:"imagen_url,omitempty" gorm:"size:500"`

	Subcategoria *Subcategoria `json:"subcategoria,omitempty" gorm:"foreignKey:IDSubcategoria"`
}

func (Servicio) TableName() string { return "servicios" }

// Festival is a one day event or award ceremony.
type Festival struct {
	Base
	Titulo      string    `json:"titulo" gorm:"size:200;not null"`
	Descripcion string    `json:"descripcion,omitempty" gorm:"type:text"`
	FechaEvento time.Time `json:"fecha_evento" gorm:"not null;index"`
	Lugar       string    `json:"lugar" gorm:"size:200;not null"`
	Organizador string    `json:"organizador" gorm:"size:200;not null"`
	Tipo        string    `json:"tipo" gorm:"size:100;not null"`
	IDCategoria string    `json:"id_categoria" gorm:"type:char(24);not null;index"`
	Estado      Estado    `json:"estado" gorm:"type:varchar(20);not null;default:'activo'"`
	ImagenURL   string    `json:"imagen_url,omitempty" gorm:"size:500"`

	Categoria *Categoria `json:"categoria,omitempty" gorm:"foreignKey:IDCategoria"`
}

func (Festival) TableName() string { return "festivales" }
