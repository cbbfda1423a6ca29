package model

// Estado is the soft state of catalog records and users.
type Estado string

const (
	EstadoActivo   Estado = "activo"
	EstadoInactivo Estado = "inactivo"
)

// Valid reports whether e is activo or inactivo.
func (e Estado) Valid() bool {
	return e == EstadoActivo || e == EstadoInactivo
}

// InscripcionEstado is the lifecycle state of a registration.
type InscripcionEstado string

const (
	InscripcionPendiente  InscripcionEstado = "pendiente"
	InscripcionPagado     InscripcionEstado = "pagado"
	InscripcionCancelado  InscripcionEstado = "cancelado"
	InscripcionCompletado InscripcionEstado = "completado"
)

// InscripcionEstados lists the accepted registration states.
var InscripcionEstados = []InscripcionEstado{
	InscripcionPendiente, InscripcionPagado, InscripcionCancelado, InscripcionCompletado,
}

func (e InscripcionEstado) Valid() bool {
	for _, v := range InscripcionEstados {
		if v == e {
			return true
		}
	}
	return false
}

// DetalleEstado is the lifecycle state of a registration line item.
type DetalleEstado string

const (
	DetallePendiente  DetalleEstado = "pendiente"
	DetalleConfirmado DetalleEstado = "confirmado"
	DetalleCancelado  DetalleEstado = "cancelado"
)

func (e DetalleEstado) Valid() bool {
	switch e {
	case DetallePendiente, DetalleConfirmado, DetalleCancelado:
		return true
	}
	return false
}

// HoldsSeats reports whether a line item in this state keeps its seats reserved.
func (e DetalleEstado) HoldsSeats() bool {
	return e != DetalleCancelado
}

// PagoEstado is the lifecycle state of a payment.
type PagoEstado string

const (
	PagoPendiente   PagoEstado = "pendiente"
	PagoCompletado  PagoEstado = "completado"
	PagoFallido     PagoEstado = "fallido"
	PagoReembolsado PagoEstado = "reembolsado"
)

func (e PagoEstado) Valid() bool {
	switch e {
	case PagoPendiente, PagoCompletado, PagoFallido, PagoReembolsado:
		return true
	}
	return false
}

// Moneda is the currency of a registration or payment.
type Moneda string

const (
	MonedaPEN Moneda = "PEN"
	MonedaUSD Moneda = "USD"
)

func (m Moneda) Valid() bool {
	return m == MonedaPEN || m == MonedaUSD
}

// Modalidad is how a workshop is delivered.
type Modalidad string

const (
	ModalidadPresencial Modalidad = "presencial"
	ModalidadVirtual    Modalidad = "virtual"
	ModalidadHibrido    Modalidad = "hibrido"
)

func (m Modalidad) Valid() bool {
	switch m {
	case ModalidadPresencial, ModalidadVirtual, ModalidadHibrido:
		return true
	}
	return false
}
