// Package pdf genera la lista de reposición de ingredientes en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Ingrediente | Unidad | Stock | Mín | Ideal | Pedir │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de ingredientes y agotados                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/yieldfood-api/internal/application/dto"
	"github.com/jhoicas/yieldfood-api/internal/application/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorDanger  = &props.Color{Red: 176, Green: 32, Blue: 32}
)

var _ inventory.RestockPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa inventory.RestockPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	title string
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{title: "LISTA DE REPOSICIÓN"}
}

// GenerateRestockList genera el PDF y devuelve sus bytes. Una lista vacía produce
// un documento con la leyenda "Sin ingredientes por reponer".
func (g *MarotoPDFGenerator) GenerateRestockList(items []dto.RestockSuggestionDTO, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Lista de reposición", true).
		WithAuthor("YieldFood", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(items) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Sin ingredientes por reponer", props.Text{
				Size: 10, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	} else {
		m.AddRows(tableHeaderRow())
		m.AddRows(tableDetailRows(items)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Ingredientes en o bajo su stock mínimo", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 3,
			}),
		),
	)
}

// tableHeaderRow: fila de encabezado con fondo primario.
func tableHeaderRow() core.Row {
	h := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 1.5,
		})
	}
	return row.New(7).Add(
		col.New(1).Add(h("#", align.Center)),
		col.New(4).Add(h("Ingrediente", align.Left)),
		col.New(1).Add(h("Unidad", align.Center)),
		col.New(1).Add(h("Stock", align.Right)),
		col.New(1).Add(h("Mínimo", align.Right)),
		col.New(2).Add(h("Ideal", align.Right)),
		col.New(2).Add(h("Pedir", align.Right)),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(items []dto.RestockSuggestionDTO) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		stockColor := (*props.Color)(nil)
		if !it.CurrentStock.IsPositive() {
			stockColor = colorDanger
		}
		cell := func(s string, a align.Type, c *props.Color) core.Component {
			return text.New(s, props.Text{Size: 8, Align: a, Top: 1, Right: 1, Color: c})
		}
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(cell(strconv.Itoa(it.Priority), align.Center, nil)),
			col.New(4).Add(text.New(nonEmpty(it.IngredientName, it.IngredientID), props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(1).Add(cell(it.Unit, align.Center, nil)),
			col.New(1).Add(cell(formatQty(it.CurrentStock), align.Right, stockColor)),
			col.New(1).Add(cell(formatQty(it.MinimumStock), align.Right, nil)),
			col.New(2).Add(cell(formatQty(it.IdealStock), align.Right, nil)),
			col.New(2).Add(text.New(formatQty(it.SuggestedOrderQty), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

func summaryRow(items []dto.RestockSuggestionDTO) core.Row {
	depleted := 0
	for _, it := range items {
		if !it.CurrentStock.IsPositive() {
			depleted++
		}
	}
	return row.New(12).Add(
		col.New(6),
		col.New(6).Add(
			text.New(fmt.Sprintf("Ingredientes a reponer: %d", len(items)), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Agotados o negativos: %d", depleted), props.Text{
				Size: 9, Align: align.Right, Color: colorGray, Top: 6,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQty muestra hasta dos decimales sin ceros de relleno. Ej: 12.50 → "12.5".
func formatQty(d decimal.Decimal) string {
	return d.Round(2).String()
}
