package entity

import "github.com/shopspring/decimal"

// LineaAlbaran representa una línea de producto o servicio dentro de un albarán.
// Los tags JSON coinciden con el formato serializado en el campo de almacenamiento
// (el puerto de persistencia guarda las líneas como JSON embebido).
type LineaAlbaran struct {
	Codigo         string          `json:"codigo"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Unidad         string          `json:"unidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	ImporteLinea   decimal.Decimal `json:"importe_linea"`
}

// Albaran representa una nota de entrega (bienes o servicios entregados,
// no necesariamente facturados todavía).
//
// Invariantes (mantenidos por el motor de formulario, no por la entidad):
//   - ImporteLinea == Cantidad × PrecioUnitario en cada línea fuera de edición.
//   - ImporteTotal == Σ ImporteLinea.
type Albaran struct {
	ID                 string // opaco, inmutable tras la creación
	NumeroAlbaran      string
	FechaEmision       string // fecha ISO YYYY-MM-DD
	ProveedorNombre    string
	ProveedorCIF       string
	ProveedorDireccion string
	ClienteNombre      string
	ClienteCIF         string
	ClienteDireccion   string
	Lineas             []LineaAlbaran // orden de inserción = orden de presentación
	ImporteTotal       decimal.Decimal
	Firma              string
	Observaciones      string
}

// Clone devuelve una copia profunda del albarán (las líneas se copian).
func (a *Albaran) Clone() *Albaran {
	c := *a
	c.Lineas = append([]LineaAlbaran(nil), a.Lineas...)
	return &c
}

// AlbaranPatch actualización parcial para el puerto de persistencia.
// Los campos nil se dejan sin modificar.
type AlbaranPatch struct {
	NumeroAlbaran      *string
	FechaEmision       *string
	ProveedorNombre    *string
	ProveedorCIF       *string
	ProveedorDireccion *string
	ClienteNombre      *string
	ClienteCIF         *string
	ClienteDireccion   *string
	Lineas             *[]LineaAlbaran
	ImporteTotal       *decimal.Decimal
	Firma              *string
	Observaciones      *string
}

// Apply aplica el patch sobre el albarán destino.
func (p AlbaranPatch) Apply(a *Albaran) {
	if p.NumeroAlbaran != nil {
		a.NumeroAlbaran = *p.NumeroAlbaran
	}
	if p.FechaEmision != nil {
		a.FechaEmision = *p.FechaEmision
	}
	if p.ProveedorNombre != nil {
		a.ProveedorNombre = *p.ProveedorNombre
	}
	if p.ProveedorCIF != nil {
		a.ProveedorCIF = *p.ProveedorCIF
	}
	if p.ProveedorDireccion != nil {
		a.ProveedorDireccion = *p.ProveedorDireccion
	}
	if p.ClienteNombre != nil {
		a.ClienteNombre = *p.ClienteNombre
	}
	if p.ClienteCIF != nil {
		a.ClienteCIF = *p.ClienteCIF
	}
	if p.ClienteDireccion != nil {
		a.ClienteDireccion = *p.ClienteDireccion
	}
	if p.Lineas != nil {
		a.Lineas = append([]LineaAlbaran(nil), (*p.Lineas)...)
	}
	if p.ImporteTotal != nil {
		a.ImporteTotal = *p.ImporteTotal
	}
	if p.Firma != nil {
		a.Firma = *p.Firma
	}
	if p.Observaciones != nil {
		a.Observaciones = *p.Observaciones
	}
}
