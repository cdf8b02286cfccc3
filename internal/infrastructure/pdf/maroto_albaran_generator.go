// Package pdf implementa la hoja imprimible del albarán.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proveedor + CIF  │  N° Albarán + Fecha              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: dirección                                        │
//	│  CLIENTE: nombre + CIF + dirección                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Descripción | Cant | Unidad | Precio | Imp  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: IMPORTE TOTAL                                        │
//	│  PIE: Observaciones + Firma                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/albaran-pro/internal/application/usecase"
	"github.com/tu-usuario/albaran-pro/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.AlbaranPDFGenerator = (*MarotoAlbaranGenerator)(nil)

// MarotoAlbaranGenerator implementa usecase.AlbaranPDFGenerator usando Maroto v2.
type MarotoAlbaranGenerator struct{}

// NewMarotoAlbaranGenerator construye el generador.
func NewMarotoAlbaranGenerator() *MarotoAlbaranGenerator { return &MarotoAlbaranGenerator{} }

// GenerateAlbaranPDF genera el PDF y devuelve sus bytes.
func (g *MarotoAlbaranGenerator) GenerateAlbaranPDF(_ context.Context, albaran *entity.Albaran) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Albarán "+albaran.NumeroAlbaran, true).
		WithAuthor(albaran.ProveedorNombre, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(albaran))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(proveedorRow(albaran))
	m.AddRows(clienteRow(albaran))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineaRows(albaran.Lineas) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(albaran))

	for _, r := range pieRows(albaran) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: proveedor + CIF (izq) y N° Albarán + Fecha (der).
func headerRow(a *entity.Albaran) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(a.ProveedorNombre, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CIF/NIF: "+a.ProveedorCIF, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ALBARÁN DE ENTREGA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(a.NumeroAlbaran, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+a.FechaEmision, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func proveedorRow(a *entity.Albaran) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Dirección: "+nonEmpty(a.ProveedorDireccion, "—"),
				props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func clienteRow(a *entity.Albaran) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(a.ClienteNombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("CIF/NIF: %s   |   %s",
				a.ClienteCIF,
				nonEmpty(a.ClienteDireccion, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Cant.", 1, align.Center),
		h("Unidad", 1, align.Center),
		h("Precio", 2, align.Right),
		h("Importe", 2, align.Right),
	)
}

func tableLineaRows(lineas []entity.LineaAlbaran) []core.Row {
	result := make([]core.Row, 0, len(lineas))
	for _, l := range lineas {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(l.Codigo,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.Descripcion,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(l.Cantidad.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(l.Unidad,
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.PrecioUnitario.StringFixed(2)+" €",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(l.ImporteLinea.StringFixed(2)+" €",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(a *entity.Albaran) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("IMPORTE TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(a.ImporteTotal.StringFixed(2)+" €", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// pieRows: observaciones y firma, solo si existen.
func pieRows(a *entity.Albaran) []core.Row {
	var rows []core.Row
	if a.Observaciones != "" {
		rows = append(rows,
			row.New(4),
			row.New(10).Add(col.New(12).Add(
				text.New("Observaciones:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
				text.New(a.Observaciones, props.Text{Size: 8, Top: 6, Color: colorGray}),
			)),
		)
	}
	if a.Firma != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Firmado: "+a.Firma, props.Text{Size: 8, Top: 4, Color: colorGray}),
		)))
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
