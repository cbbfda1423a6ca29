package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inscripcion ties a user to one or more line items.
type Inscripcion struct {
	Base
	IDUsuario        string            `json:"id_usuario" gorm:"type:char(24);not null;index"`
	FechaInscripcion time.Time         `json:"fecha_inscripcion"`
	Total            decimal.Decimal   `json:"total" gorm:"type:decimal(12,2);not null"`
	Moneda           Moneda            `json:"moneda" gorm:"type:varchar(3);not null;default:'PEN'"`
	Estado           InscripcionEstado `json:"estado" gorm:"type:varchar(20);not null;default:'pendiente';index"`

	Usuario *Usuario `json:"usuario,omitempty" gorm:"foreignKey:IDUsuario"`
}

func (Inscripcion) TableName() string { return "inscripciones" }

// DetalleInscripcion is a line item of a registration. It references a
// taller, a bloque or both.
type DetalleInscripcion struct {
	Base
	IDInscripcion     string          `json:"id_inscripcion" gorm:"type:char(24);not null;index"`
	IDTaller          *string         `json:"id_taller,omitempty" gorm:"type:char(24);index"`
	IDBloque          *string         `json:"id_bloque,omitempty" gorm:"type:char(24);index"`
	Cantidad          int             `json:"cantidad" gorm:"not null;default:1"`
	PrecioUnitario    decimal.Decimal `json:"precio_unitario" gorm:"type:decimal(12,2);not null"`
	PrecioTotal       decimal.Decimal `json:"precio_total" gorm:"type:decimal(12,2);not null"`
	IdentificadorPago string          `json:"identificador_pago,omitempty" gorm:"size:100"`
	Observaciones     string          `json:"observaciones,omitempty" gorm:"type:text"`
	Estado            DetalleEstado   `json:"estado" gorm:"type:varchar(20);not null;default:'pendiente';index"`

	Inscripcion *Inscripcion `json:"inscripcion,omitempty" gorm:"foreignKey:IDInscripcion"`
	Taller      *Taller      `json:"taller,omitempty" gorm:"foreignKey:IDTaller"`
	Bloque      *Bloque      `json:"bloque,omitempty" gorm:"foreignKey:IDBloque"`
}

func (DetalleInscripcion) TableName() string { return "detalle_inscripciones" }

// Pago is a payment against a single line item.
type Pago struct {
	Base
	IDDetalle      string     `json:"id_detalle" gorm:"type:char(24);not null;index"`
	IDUsuarioPago  string     `json:"id_usuario_pago" gorm:"type:char(24);not null;index"`
	Moneda         Moneda     `json:"moneda" gorm:"type:varchar(3);not null;default:'PEN'"`
	MetodoPago     string     `json:"metodo_pago" gorm:"size:50;not null"`
	TransactionID  string     `json:"transaction_id,omitempty" gorm:"size:120"`
	FechaPago      time.Time  `json:"fecha_pago"`
	ComprobanteURL string     `json:"comprobante_url,omitempty" gorm:"size:500"`
	Estado         PagoEstado `json:"estado" gorm:"type:varchar(20);not null;default:'pendiente';index"`

	Detalle     *DetalleInscripcion `json:"detalle,omitempty" gorm:"foreignKey:IDDetalle"`
	UsuarioPago *Usuario            `json:"usuario_pago,omitempty" gorm:"foreignKey:IDUsuarioPago"`
}

func (Pago) TableName() string { return "pagos" }

// Historial is an audit entry about a line item or payment.
type Historial struct {
	Base
	IDUsuario   string    `json:"id_usuario" gorm:"type:char(24);not null;index"`
	IDDetalle   *string   `json:"id_detalle,omitempty" gorm:"type:char(24);index"`
	FechaAccion time.Time `json:"fecha_accion"`
	TipoAccion  string    `json:"tipo_accion" gorm:"size:50;not null"`
	Observacion string    `json:"observacion,omitempty" gorm:"type:text"`
	Origen      string    `json:"origen,omitempty" gorm:"size:50"`
}

func (Historial) TableName() string { return "historial" }

const (
	AccionDetalleCreado    = "detalle_creado"
	AccionDetalleEstado    = "detalle_cambio_estado"
	AccionDetalleEliminado = "detalle_eliminado"
	AccionPagoRegistrado   = "pago_registrado"
	AccionPagoEstado       = "pago_cambio_estado"
)

// All returns every persisted model, parents first.
func All() []interface{} {
	return []interface{}{
		&Rol{},
		&Usuario{},
		&Categoria{},
		&Subcategoria{},
		&Servicio{},
		&Festival{},
		&Taller{},
		&Bloque{},
		&Inscripcion{},
		&DetalleInscripcion{},
		&Pago{},
		&Historial{},
	}
}
