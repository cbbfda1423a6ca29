package model

import "github.com/shopspring/decimal"

// EstadoCount is a count of records in one state.
type EstadoCount struct {
	Estado   string `json:"estado"`
	Cantidad int64  `json:"cantidad"`
}

// InscripcionStats summarizes registrations.
type InscripcionStats struct {
	Total           int64           `json:"total"`
	PorEstado       []EstadoCount   `json:"por_estado"`
	IngresosTotales decimal.Decimal `json:"ingresos_totales"`
}

// DetalleEstadoStat groups line items of a workshop by state.
type DetalleEstadoStat struct {
	Estado    string          `json:"estado"`
	Registros int64           `json:"registros"`
	Cantidad  int64           `json:"cantidad"`
	Total     decimal.Decimal `json:"total"`
}

// DetalleStats is the per-workshop rollup with a grand total.
type DetalleStats struct {
	IDTaller       string              `json:"id_taller"`
	PorEstado      []DetalleEstadoStat `json:"por_estado"`
	TotalRegistros int64               `json:"total_registros"`
	TotalCantidad  int64               `json:"total_cantidad"`
	TotalMonto     decimal.Decimal     `json:"total_monto"`
}

// PagoEstadoStat groups payments by state with the amount of their line items.
type PagoEstadoStat struct {
	Estado   string          `json:"estado"`
	Cantidad int64           `json:"cantidad"`
	Monto    decimal.Decimal `json:"monto"`
}

// PagoStats summarizes payments.
type PagoStats struct {
	Total      int64            `json:"total"`
	PorEstado  []PagoEstadoStat `json:"por_estado"`
	MontoTotal decimal.Decimal  `json:"monto_total"`
}
