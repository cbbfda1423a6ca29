package model

import (
	"time"

	"gorm.io/gorm"
)

// Rol groups permissions. The admin and user roles are looked up by name
// during registration.
type Rol struct {
	Base
	Nombre      string   `json:"nombre" gorm:"uniqueIndex;size:100;not null"`
	Descripcion string   `json:"descripcion,omitempty" gorm:"size:255"`
	Permisos    []string `json:"permisos" gorm:"serializer:json;type:json"`
	Estado      bool     `json:"estado" gorm:"default:true"`
}

func (Rol) TableName() string { return "roles" }

const (
	RolAdmin = "admin"
	RolUser  = "user"
)

// Usuario is an authenticated person. DNI and email are unique among
// non-deleted users. Soft deleted rows keep their values, so the unique
// indexes sit on generated columns that are NULL once deleted_at is set.
type Usuario struct {
	Base
	Nombre        string         `json:"nombre" gorm:"size:120;not null"`
	Apellido      string         `json:"apellido" gorm:"size:120;not null"`
	DNI           string         `json:"dni" gorm:"size:20;not null;index"`
	Email         string         `json:"email" gorm:"size:255;not null;index"`
	Telefono      string         `json:"telefono,omitempty" gorm:"size:30"`
	Direccion     string         `json:"direccion,omitempty" gorm:"size:255"`
	Contrasena    string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Estado        Estado         `json:"estado" gorm:"type:varchar(20);not null;default:'activo'"`
	FechaRegistro time.Time      `json:"fecha_registro"`
	IDRol         string         `json:"id_rol" gorm:"type:char(24);not null;index"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	EmailActivo *string `json:"-" gorm:"->;size:255;type:varchar(255) GENERATED ALWAYS AS (IF(deleted_at IS NULL, email, NULL)) STORED;uniqueIndex:ux_usuarios_email_activo"`
	DNIActivo   *string `json:"-" gorm:"->;size:20;type:varchar(20) GENERATED ALWAYS AS (IF(deleted_at IS NULL, dni, NULL)) STORED;uniqueIndex:ux_usuarios_dni_activo"`

	Rol *Rol `json:"rol,omitempty" gorm:"foreignKey:IDRol"`
}

func (Usuario) TableName() string { return "usuarios" }

// RolNombre returns the populated role name, or an empty string.
func (u *Usuario) RolNombre() string {
	if u.Rol == nil {
		return ""
	}
	return u.Rol.Nombre
}
