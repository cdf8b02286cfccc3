package export_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/albaran-pro/internal/application/export"
	"github.com/tu-usuario/albaran-pro/internal/domain/entity"
)

func TestCSV_CabeceraYFilas(t *testing.T) {
	albaranes := []*entity.Albaran{
		{
			NumeroAlbaran:   "ALB-2024-001",
			FechaEmision:    "2024-11-25",
			ClienteNombre:   "Cliente Ejemplo S.A.",
			ClienteCIF:      "A98765432",
			ProveedorNombre: "Mi Empresa S.L.",
			ProveedorCIF:    "B12345678",
			ImporteTotal:    decimal.NewFromInt(500),
			Observaciones:   "Entrega parcial",
		},
	}

	salida := export.CSV(albaranes)
	filas := strings.Split(salida, "\n")
	require.Len(t, filas, 2)

	assert.Equal(t,
		`Número,Fecha,Cliente,CIF Cliente,Proveedor,CIF Proveedor,Importe Total,Observaciones`,
		filas[0])
	assert.Equal(t,
		`"ALB-2024-001","2024-11-25","Cliente Ejemplo S.A.","A98765432","Mi Empresa S.L.","B12345678",500,"Entrega parcial"`,
		filas[1])
}

// Las comillas internas de los campos de texto se duplican; el importe nunca
// va entre comillas.
func TestCSV_ComillasInternasDuplicadas(t *testing.T) {
	albaranes := []*entity.Albaran{
		{
			NumeroAlbaran: "ALB-1",
			ClienteNombre: `Taller "El Rápido"`,
			ImporteTotal:  decimal.RequireFromString("120.50"),
			Observaciones: `Dejar en "muelle 3"`,
		},
	}

	salida := export.CSV(albaranes)
	assert.Contains(t, salida, `"Taller ""El Rápido"""`)
	assert.Contains(t, salida, `"Dejar en ""muelle 3"""`)
	assert.Contains(t, salida, `,120.5,`)
}

func TestCSV_ListadoVacio_SoloCabecera(t *testing.T) {
	salida := export.CSV(nil)
	assert.Equal(t,
		`Número,Fecha,Cliente,CIF Cliente,Proveedor,CIF Proveedor,Importe Total,Observaciones`,
		salida)
}
