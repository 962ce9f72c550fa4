// Package pdf implementa el reporte de estadísticas de un entorno que la
// company descarga desde su dashboard.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del entorno  │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Total recaudado / Ventas / Más vendido / Mejor cliente │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ranking de productos (Pos | Producto | Vendidos | Recaudado) │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ranking de clientes (Pos | Cliente | Compras | Total) │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/NicolasBroyad/machine-dumping-api/internal/application/dto"
	"github.com/NicolasBroyad/machine-dumping-api/internal/application/usecase"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.StatisticsPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa usecase.StatisticsPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateStatisticsPDF genera el reporte y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStatisticsPDF(
	_ context.Context,
	env *entity.Environment,
	stats *dto.CompanyStatisticsResponse,
	clientes []dto.RankingClienteItemDTO,
	productos []dto.RankingProductoItemDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Estadísticas", true).
		WithAuthor(env.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(env))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(stats)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("RANKING DE PRODUCTOS"))
	m.AddRows(productTableHeaderRow())
	for _, r := range productTableRows(productos) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitleRow("RANKING DE CLIENTES"))
	m.AddRows(clientTableHeaderRow())
	for _, r := range clientTableRows(clientes) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del entorno (izq) y fecha de generación (der).
func headerRow(env *entity.Environment) core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(7).Add(
			text.New(env.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de estadísticas del entorno", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADÍSTICAS DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRows: bloque de resumen del dashboard.
func summaryRows(stats *dto.CompanyStatisticsResponse) []core.Row {
	masComprado := "—"
	if stats.ProductoMasComprado != nil {
		masComprado = fmt.Sprintf("%s (%d uds.)", stats.ProductoMasComprado.Name, stats.ProductoMasComprado.Count)
	}
	mayorComprador := "—"
	if stats.MayorComprador != nil {
		mayorComprador = fmt.Sprintf("%s ($%s)", stats.MayorComprador.Username, stats.MayorComprador.Total.StringFixed(2))
	}
	pair := func(label, value string) core.Row {
		return row.New(7).Add(
			col.New(4).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1,
			})),
			col.New(8).Add(text.New(value, props.Text{
				Size: 9, Top: 1, Color: colorGray,
			})),
		)
	}
	return []core.Row{
		pair("Total recaudado:", "$"+stats.TotalRecaudado.StringFixed(2)),
		pair("Productos vendidos:", fmt.Sprintf("%d", stats.CantidadVendidos)),
		pair("Producto más comprado:", masComprado),
		pair("Mayor comprador:", mayorComprador),
	}
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func productTableHeaderRow() core.Row {
	return row.New(7).Add(
		tableHeaderCol("Pos.", 1, align.Center),
		tableHeaderCol("Producto", 6, align.Left),
		tableHeaderCol("Vendidos", 2, align.Right),
		tableHeaderCol("Recaudado", 3, align.Right),
	)
}

func productTableRows(productos []dto.RankingProductoItemDTO) []core.Row {
	result := make([]core.Row, 0, len(productos))
	for _, p := range productos {
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", p.Posicion), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(p.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", p.Count), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New("$"+p.TotalRecaudado.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func clientTableHeaderRow() core.Row {
	return row.New(7).Add(
		tableHeaderCol("Pos.", 1, align.Center),
		tableHeaderCol("Cliente", 6, align.Left),
		tableHeaderCol("Compras", 2, align.Right),
		tableHeaderCol("Total", 3, align.Right),
	)
}

func clientTableRows(clientes []dto.RankingClienteItemDTO) []core.Row {
	result := make([]core.Row, 0, len(clientes))
	for _, c := range clientes {
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", c.Posicion), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(c.Username, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", c.Compras), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New("$"+c.Total.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func tableHeaderCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 1, Left: 1, Right: 1,
	}))
}
