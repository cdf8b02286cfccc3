package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/albaran-pro/internal/domain/entity"
)

// LineaDTO línea de albarán en peticiones y respuestas.
type LineaDTO struct {
	Codigo         string          `json:"codigo"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Unidad         string          `json:"unidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	ImporteLinea   decimal.Decimal `json:"importe_linea"`
}

// CreateAlbaranRequest body para POST /api/albaranes.
// cantidad y precio_unitario de cada línea llegan como texto libre del
// formulario; importe_linea e importe_total se recalculan siempre en servidor.
type CreateAlbaranRequest struct {
	NumeroAlbaran      string             `json:"numero_albaran"`
	FechaEmision       string             `json:"fecha_emision"`
	ProveedorNombre    string             `json:"proveedor_nombre"`
	ProveedorCIF       string             `json:"proveedor_cif_nif"`
	ProveedorDireccion string             `json:"proveedor_direccion"`
	ClienteNombre      string             `json:"cliente_nombre"`
	ClienteCIF         string             `json:"cliente_cif_nif"`
	ClienteDireccion   string             `json:"cliente_direccion"`
	Lineas             []LineaEditRequest `json:"productos"`
	Firma              string             `json:"firma,omitempty"`
	Observaciones      string             `json:"observaciones,omitempty"`
}

// LineaEditRequest línea tal y como la envía el formulario: los valores
// numéricos viajan como texto y se coaccionan en el motor de formulario.
type LineaEditRequest struct {
	Codigo         string `json:"codigo"`
	Descripcion    string `json:"descripcion"`
	Cantidad       string `json:"cantidad"`
	Unidad         string `json:"unidad"`
	PrecioUnitario string `json:"precio_unitario"`
}

// UpdateAlbaranRequest body para PUT /api/albaranes/:id (parcial; los campos
// ausentes no se tocan).
type UpdateAlbaranRequest struct {
	NumeroAlbaran      *string             `json:"numero_albaran,omitempty"`
	FechaEmision       *string             `json:"fecha_emision,omitempty"`
	ProveedorNombre    *string             `json:"proveedor_nombre,omitempty"`
	ProveedorCIF       *string             `json:"proveedor_cif_nif,omitempty"`
	ProveedorDireccion *string             `json:"proveedor_direccion,omitempty"`
	ClienteNombre      *string             `json:"cliente_nombre,omitempty"`
	ClienteCIF         *string             `json:"cliente_cif_nif,omitempty"`
	ClienteDireccion   *string             `json:"cliente_direccion,omitempty"`
	Lineas             *[]LineaEditRequest `json:"productos,omitempty"`
	Firma              *string             `json:"firma,omitempty"`
	Observaciones      *string             `json:"observaciones,omitempty"`
}

// AlbaranResponse albarán completo en respuestas.
type AlbaranResponse struct {
	ID                 string          `json:"id"`
	NumeroAlbaran      string          `json:"numero_albaran"`
	FechaEmision       string          `json:"fecha_emision"`
	ProveedorNombre    string          `json:"proveedor_nombre"`
	ProveedorCIF       string          `json:"proveedor_cif_nif"`
	ProveedorDireccion string          `json:"proveedor_direccion"`
	ClienteNombre      string          `json:"cliente_nombre"`
	ClienteCIF         string          `json:"cliente_cif_nif"`
	ClienteDireccion   string          `json:"cliente_direccion"`
	Lineas             []LineaDTO      `json:"productos"`
	ImporteTotal       decimal.Decimal `json:"importe_total"`
	Firma              string          `json:"firma"`
	Observaciones      string          `json:"observaciones"`
}

// AlbaranListResponse listado filtrado con el conteo mostrado en pie de tabla.
type AlbaranListResponse struct {
	Items []*AlbaranResponse `json:"items"`
	Total int                `json:"total"`
}

// ToAlbaranResponse convierte la entidad a su representación de API.
func ToAlbaranResponse(a *entity.Albaran) *AlbaranResponse {
	lineas := make([]LineaDTO, 0, len(a.Lineas))
	for _, l := range a.Lineas {
		lineas = append(lineas, LineaDTO{
			Codigo:         l.Codigo,
			Descripcion:    l.Descripcion,
			Cantidad:       l.Cantidad,
			Unidad:         l.Unidad,
			PrecioUnitario: l.PrecioUnitario,
			ImporteLinea:   l.ImporteLinea,
		})
	}
	return &AlbaranResponse{
		ID:                 a.ID,
		NumeroAlbaran:      a.NumeroAlbaran,
		FechaEmision:       a.FechaEmision,
		ProveedorNombre:    a.ProveedorNombre,
		ProveedorCIF:       a.ProveedorCIF,
		ProveedorDireccion: a.ProveedorDireccion,
		ClienteNombre:      a.ClienteNombre,
		ClienteCIF:         a.ClienteCIF,
		ClienteDireccion:   a.ClienteDireccion,
		Lineas:             lineas,
		ImporteTotal:       a.ImporteTotal,
		Firma:              a.Firma,
		Observaciones:      a.Observaciones,
	}
}
