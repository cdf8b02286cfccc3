// Package listquery implementa el motor de búsqueda, filtrado y ordenación del
// listado de albaranes. Es una función pura sobre la colección en memoria: no
// muta la entrada y con los mismos argumentos produce siempre el mismo orden.
package listquery

import (
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/albaran-pro/internal/domain/entity"
)

// CampoOrden claves de ordenación admitidas.
type CampoOrden string

const (
	OrdenNumero  CampoOrden = "numero_albaran"
	OrdenFecha   CampoOrden = "fecha_emision"
	OrdenCliente CampoOrden = "cliente_nombre"
	OrdenImporte CampoOrden = "importe_total"
)

// Direccion sentido de la ordenación.
type Direccion string

const (
	Ascendente  Direccion = "asc"
	Descendente Direccion = "desc"
)

// Query consulta del listado. Todos los campos son opcionales: la cadena vacía
// significa "sin restricción", nunca "coincidir con vacío". Las restricciones
// activas se combinan con AND; cada filtro estructurado es un OR sobre sus
// subcampos.
type Query struct {
	// Texto busca por subcadena (sin distinguir mayúsculas ni acentos) en
	// numero_albaran, cliente_nombre o proveedor_nombre.
	Texto string

	// FechaDesde y FechaHasta acotan fecha_emision, ambos inclusive. Al ser
	// fechas ISO de ancho fijo (YYYY-MM-DD), la comparación lexicográfica es válida.
	FechaDesde string
	FechaHasta string

	// Cliente busca en cliente_nombre o cliente_cif_nif.
	Cliente string
	// Proveedor busca en proveedor_nombre o proveedor_cif_nif.
	Proveedor string
	// Producto busca en el código o la descripción de cualquier línea.
	Producto string

	// ImporteMin e ImporteMax acotan importe_total, ambos inclusive. Se aceptan
	// como texto crudo: un valor no numérico se trata como no establecido.
	ImporteMin string
	ImporteMax string

	OrdenarPor CampoOrden
	Direccion  Direccion
}

// Apply filtra y ordena la colección según la consulta. Devuelve un slice nuevo;
// la colección de entrada no se modifica. Colección vacía o sin coincidencias
// produce un resultado vacío, nunca un error.
func Apply(albaranes []*entity.Albaran, q Query) []*entity.Albaran {
	texto := normalizar(q.Texto)
	cliente := normalizar(q.Cliente)
	proveedor := normalizar(q.Proveedor)
	producto := normalizar(q.Producto)
	importeMin, hayMin := parseImporte(q.ImporteMin)
	importeMax, hayMax := parseImporte(q.ImporteMax)

	resultado := make([]*entity.Albaran, 0, len(albaranes))
	for _, a := range albaranes {
		if texto != "" && !contieneAlguno(texto, a.NumeroAlbaran, a.ClienteNombre, a.ProveedorNombre) {
			continue
		}
		if q.FechaDesde != "" && a.FechaEmision < q.FechaDesde {
			continue
		}
		if q.FechaHasta != "" && a.FechaEmision > q.FechaHasta {
			continue
		}
		if cliente != "" && !contieneAlguno(cliente, a.ClienteNombre, a.ClienteCIF) {
			continue
		}
		if proveedor != "" && !contieneAlguno(proveedor, a.ProveedorNombre, a.ProveedorCIF) {
			continue
		}
		if producto != "" && !algunaLineaCoincide(producto, a.Lineas) {
			continue
		}
		if hayMin && a.ImporteTotal.LessThan(importeMin) {
			continue
		}
		if hayMax && a.ImporteTotal.GreaterThan(importeMax) {
			continue
		}
		resultado = append(resultado, a)
	}

	ordenar(resultado, q.OrdenarPor, q.Direccion)
	return resultado
}

// ordenar aplica una ordenación estable: los empates conservan el orden relativo
// original, de modo que renders repetidos con los mismos datos son idénticos.
// Por defecto: fecha_emision descendente (lo más reciente primero).
func ordenar(albaranes []*entity.Albaran, campo CampoOrden, dir Direccion) {
	if campo == "" {
		campo = OrdenFecha
	}
	if dir == "" {
		dir = Descendente
	}
	desc := dir == Descendente

	sort.SliceStable(albaranes, func(i, j int) bool {
		a, b := albaranes[i], albaranes[j]
		var menor bool
		switch campo {
		case OrdenNumero:
			menor = a.NumeroAlbaran < b.NumeroAlbaran
		case OrdenCliente:
			menor = a.ClienteNombre < b.ClienteNombre
		case OrdenImporte:
			menor = a.ImporteTotal.LessThan(b.ImporteTotal)
		default: // OrdenFecha; el formato ISO de ancho fijo ordena cronológicamente
			menor = a.FechaEmision < b.FechaEmision
		}
		if desc {
			// Invertir solo la relación estricta mantiene la estabilidad en empates.
			switch campo {
			case OrdenNumero:
				return b.NumeroAlbaran < a.NumeroAlbaran
			case OrdenCliente:
				return b.ClienteNombre < a.ClienteNombre
			case OrdenImporte:
				return b.ImporteTotal.LessThan(a.ImporteTotal)
			default:
				return b.FechaEmision < a.FechaEmision
			}
		}
		return menor
	})
}

func contieneAlguno(termino string, campos ...string) bool {
	for _, campo := range campos {
		if strings.Contains(normalizar(campo), termino) {
			return true
		}
	}
	return false
}

func algunaLineaCoincide(termino string, lineas []entity.LineaAlbaran) bool {
	for _, l := range lineas {
		if strings.Contains(normalizar(l.Codigo), termino) ||
			strings.Contains(normalizar(l.Descripcion), termino) {
			return true
		}
	}
	return false
}

// parseImporte interpreta una cota de importe. Texto vacío o no numérico se
// trata como cota no establecida, no como fallo.
func parseImporte(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// normalizar pasa a minúsculas y elimina marcas diacríticas, para que una
// búsqueda de "perez" encuentre "Pérez" (los datos son en español).
func normalizar(s string) string {
	sinAcentos, _, err := transform.String(transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	), s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(sinAcentos)
}
