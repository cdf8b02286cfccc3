// Package export genera la descarga CSV del listado de albaranes: cabecera
// fija en español, campos de texto entre comillas (duplicando las comillas
// internas) e importes sin comillas.
package export

import (
	"strings"

	"github.com/tu-usuario/albaran-pro/internal/domain/entity"
)

// cabecera fija del fichero exportado, en el orden de la tabla del listado.
var cabecera = []string{
	"Número", "Fecha", "Cliente", "CIF Cliente",
	"Proveedor", "CIF Proveedor", "Importe Total", "Observaciones",
}

// CSV serializa el listado ya filtrado y ordenado. Una fila por albarán, en el
// mismo orden en que se muestran. Es una transformación directa y sin estado:
// no hay parseo ni recuperación de errores.
func CSV(albaranes []*entity.Albaran) string {
	var b strings.Builder
	b.WriteString(strings.Join(cabecera, ","))
	for _, a := range albaranes {
		fila := []string{
			citar(a.NumeroAlbaran),
			citar(a.FechaEmision),
			citar(a.ClienteNombre),
			citar(a.ClienteCIF),
			citar(a.ProveedorNombre),
			citar(a.ProveedorCIF),
			a.ImporteTotal.String(), // numérico: sin comillas
			citar(a.Observaciones),
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join(fila, ","))
	}
	return b.String()
}

// citar envuelve un campo de texto en comillas dobles, duplicando las internas.
func citar(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
