package listquery_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/albaran-pro/internal/domain/entity"
	"github.com/tu-usuario/albaran-pro/internal/domain/listquery"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func albaran(numero, fecha, cliente string, total float64) *entity.Albaran {
	return &entity.Albaran{
		ID:              "id-" + numero,
		NumeroAlbaran:   numero,
		FechaEmision:    fecha,
		ClienteNombre:   cliente,
		ProveedorNombre: "Mi Empresa S.L.",
		ImporteTotal:    decimal.NewFromFloat(total),
	}
}

func numeros(albaranes []*entity.Albaran) []string {
	out := make([]string, 0, len(albaranes))
	for _, a := range albaranes {
		out = append(out, a.NumeroAlbaran)
	}
	return out
}

func coleccion() []*entity.Albaran {
	return []*entity.Albaran{
		albaran("ALB-2024-001", "2024-11-25", "Cliente Ejemplo S.A.", 100),
		albaran("ALB-2024-002", "2024-11-26", "Tech Solutions Ltd.", 50),
		albaran("ALB-2024-003", "2024-11-20", "Construcciones Pérez", 200),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta sin restricciones
// ──────────────────────────────────────────────────────────────────────────────

// Sin restricciones debe devolver una permutación completa de la colección,
// ordenada por fecha_emision descendente (lo más reciente primero).
func TestApply_SinRestricciones_OrdenPorDefecto(t *testing.T) {
	res := listquery.Apply(coleccion(), listquery.Query{})

	require.Len(t, res, 3, "debe conservar la cardinalidad")
	assert.Equal(t, []string{"ALB-2024-002", "ALB-2024-001", "ALB-2024-003"}, numeros(res))
}

func TestApply_ColeccionVacia(t *testing.T) {
	res := listquery.Apply(nil, listquery.Query{Texto: "algo"})
	assert.Empty(t, res, "colección vacía produce resultado vacío, no error")
}

func TestApply_NoMutaLaEntrada(t *testing.T) {
	entrada := coleccion()
	_ = listquery.Apply(entrada, listquery.Query{OrdenarPor: listquery.OrdenImporte})

	assert.Equal(t, []string{"ALB-2024-001", "ALB-2024-002", "ALB-2024-003"}, numeros(entrada),
		"la colección de entrada debe quedar en su orden original")
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda global
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: "ALB-2024-002" con cliente "Tech" coincide tanto con el término
// "tech" (insensible a mayúsculas) como con "002".
func TestApply_BusquedaGlobal_NumeroOCliente(t *testing.T) {
	col := coleccion()

	porCliente := listquery.Apply(col, listquery.Query{Texto: "tech"})
	require.Len(t, porCliente, 1)
	assert.Equal(t, "ALB-2024-002", porCliente[0].NumeroAlbaran)

	porNumero := listquery.Apply(col, listquery.Query{Texto: "002"})
	require.Len(t, porNumero, 1)
	assert.Equal(t, "ALB-2024-002", porNumero[0].NumeroAlbaran)
}

func TestApply_BusquedaGlobal_IgnoraAcentos(t *testing.T) {
	res := listquery.Apply(coleccion(), listquery.Query{Texto: "perez"})
	require.Len(t, res, 1)
	assert.Equal(t, "Construcciones Pérez", res[0].ClienteNombre)
}

func TestApply_SinCoincidencias_ResultadoVacio(t *testing.T) {
	res := listquery.Apply(coleccion(), listquery.Query{Texto: "no-existe"})
	assert.Empty(t, res)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtros estructurados
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: totales 100, 50 y 200 con importe_min=60 deja exactamente los de
// 100 y 200, en su orden relativo original (sin clave de ordenación explícita,
// aquí el orden por defecto coincide con el relativo de entrada filtrada).
func TestApply_ImporteMinimo(t *testing.T) {
	res := listquery.Apply(coleccion(), listquery.Query{ImporteMin: "60"})

	require.Len(t, res, 2)
	assert.Equal(t, []string{"ALB-2024-001", "ALB-2024-003"}, numeros(res))
}

func TestApply_RangoImporte_Inclusivo(t *testing.T) {
	res := listquery.Apply(coleccion(), listquery.Query{ImporteMin: "50", ImporteMax: "100"})
	assert.Equal(t, []string{"ALB-2024-002", "ALB-2024-001"}, numeros(res),
	)
}

// Una cota no numérica se trata como no establecida, nunca como fallo.
func TestApply_ImporteNoNumerico_SeIgnora(t *testing.T) {
	res := listquery.Apply(coleccion(), listquery.Query{ImporteMin: "abc", ImporteMax: "12,3x"})
	assert.Len(t, res, 3)
}

func TestApply_RangoFechas_Inclusivo(t *testing.T) {
	res := listquery.Apply(coleccion(), listquery.Query{
		FechaDesde: "2024-11-25",
		FechaHasta: "2024-11-26",
	})
	assert.Equal(t, []string{"ALB-2024-002", "ALB-2024-001"}, numeros(res))
}

// Cada filtro estructurado es un OR sobre sus subcampos: cliente busca en
// nombre o CIF.
func TestApply_FiltroCliente_NombreOCIF(t *testing.T) {
	col := coleccion()
	col[1].ClienteCIF = "B87654321"

	res := listquery.Apply(col, listquery.Query{Cliente: "b87654321"})
	require.Len(t, res, 1)
	assert.Equal(t, "ALB-2024-002", res[0].NumeroAlbaran)
}

func TestApply_FiltroProducto_CualquierLinea(t *testing.T) {
	col := coleccion()
	col[2].Lineas = []entity.LineaAlbaran{
		{Codigo: "HW-001", Descripcion: "Monitor 27 pulgadas"},
		{Codigo: "HW-002", Descripcion: "Teclado Mecánico"},
	}

	res := listquery.Apply(col, listquery.Query{Producto: "teclado"})
	require.Len(t, res, 1)
	assert.Equal(t, "ALB-2024-003", res[0].NumeroAlbaran)

	assert.Empty(t, listquery.Apply(col, listquery.Query{Producto: "impresora"}))
}

// Las restricciones activas se combinan con AND.
func TestApply_FiltrosCombinadosConAND(t *testing.T) {
	res := listquery.Apply(coleccion(), listquery.Query{
		Texto:      "alb",
		ImporteMin: "60",
		FechaHasta: "2024-11-25",
	})
	require.Len(t, res, 2)
	assert.Equal(t, []string{"ALB-2024-001", "ALB-2024-003"}, numeros(res))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ordenación
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_OrdenPorImporteAscendente(t *testing.T) {
	res := listquery.Apply(coleccion(), listquery.Query{
		OrdenarPor: listquery.OrdenImporte,
		Direccion:  listquery.Ascendente,
	})
	assert.Equal(t, []string{"ALB-2024-002", "ALB-2024-001", "ALB-2024-003"}, numeros(res))
}

func TestApply_OrdenPorClienteDescendente(t *testing.T) {
	res := listquery.Apply(coleccion(), listquery.Query{
		OrdenarPor: listquery.OrdenCliente,
		Direccion:  listquery.Descendente,
	})
	assert.Equal(t, []string{"ALB-2024-002", "ALB-2024-003", "ALB-2024-001"}, numeros(res))
}

// Estabilidad: dos documentos con la misma clave de orden conservan su orden
// relativo original.
func TestApply_OrdenEstable_EmpatesConservanOrden(t *testing.T) {
	col := []*entity.Albaran{
		albaran("A-1", "2024-01-10", "Mismo Cliente", 10),
		albaran("A-2", "2024-01-10", "Mismo Cliente", 20),
		albaran("A-3", "2024-01-10", "Mismo Cliente", 30),
	}

	res := listquery.Apply(col, listquery.Query{OrdenarPor: listquery.OrdenFecha, Direccion: listquery.Descendente})
	assert.Equal(t, []string{"A-1", "A-2", "A-3"}, numeros(res))

	res = listquery.Apply(col, listquery.Query{OrdenarPor: listquery.OrdenCliente, Direccion: listquery.Ascendente})
	assert.Equal(t, []string{"A-1", "A-2", "A-3"}, numeros(res))
}

// Idempotencia: aplicar dos veces la misma consulta produce el mismo orden.
func TestApply_Deterministico(t *testing.T) {
	col := coleccion()
	q := listquery.Query{Texto: "alb", OrdenarPor: listquery.OrdenImporte, Direccion: listquery.Descendente}

	primera := numeros(listquery.Apply(col, q))
	segunda := numeros(listquery.Apply(col, q))
	assert.Equal(t, primera, segunda)
}
