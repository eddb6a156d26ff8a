// Package pdf genera la hoja de catálogo de un tenant en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tenant + país        │  Catálogo + moneda + fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EVENTO: nombre del evento seleccionado / fee del catálogo   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Tienda | Productos | Descuento | Fee             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COMBOS: nombre, tiendas, denominaciones                     │
//	│  FOOTER: versión del estado                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

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

	"github.com/jhoicas/Catalogos-api/internal/application/ports"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.SheetRenderer = (*MarotoSheetGenerator)(nil)

// MarotoSheetGenerator implementa ports.SheetRenderer usando Maroto v2.
type MarotoSheetGenerator struct{}

// NewMarotoSheetGenerator construye el generador.
func NewMarotoSheetGenerator() *MarotoSheetGenerator { return &MarotoSheetGenerator{} }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoSheetGenerator) Render(_ context.Context, sheet ports.CatalogSheet) ([]byte, error) {
	if sheet.Catalog == nil {
		return nil, fmt.Errorf("pdf: falta el catálogo")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Catálogo "+sheet.Catalog.Name, true).
		WithAuthor(sheet.Tenant.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(eventRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(storeRows(sheet.Catalog)...)

	if len(sheet.Combos) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(comboRows(sheet.Catalog.Currency, sheet.Combos)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(sheet))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(sheet ports.CatalogSheet) core.Row {
	c := sheet.Catalog
	kind := "CATÁLOGO BASE"
	if c.IsBranch {
		kind = "RAMA"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(sheet.Tenant.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tenant: "+sheet.Tenant.ID+"   |   País: "+sheet.Tenant.Country, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(kind, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name+" ("+c.Currency+")", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+sheet.GeneratedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func eventRow(sheet ports.CatalogSheet) core.Row {
	fee := "-"
	if sheet.Catalog.CatalogFee != nil {
		fee = percent(*sheet.Catalog.CatalogFee)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EVENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Fee del catálogo: %s   |   Tiendas: %d",
				nonEmpty(sheet.EventName, entity.DefaultEventID), fee, len(sheet.Catalog.Stores),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de tiendas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Tienda", 5, align.Left),
		h("Productos", 2, align.Center),
		h("Descuento", 2, align.Right),
		h("Fee", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// storeRows: una fila por tienda en el orden efectivo.
func storeRows(c *entity.Catalog) []core.Row {
	result := make([]core.Row, 0, len(c.Stores))
	for i, s := range c.Stores {
		discount, fee := "-", "-"
		if d, ok := c.StoreDiscounts[s.Name]; ok {
			discount = percent(d)
		}
		if f, ok := c.StoreFees[s.Name]; ok {
			fee = percent(f)
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(s.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(len(s.Products)), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(discount, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(fee, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func comboRows(currency string, combos []ports.SheetCombo) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("COMBOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, c := range combos {
		amounts := make([]string, 0, len(c.Denominations))
		for _, d := range c.Denominations {
			amounts = append(amounts, d.StringFixed(2))
		}
		rows = append(rows, row.New(10).Add(
			col.New(4).Add(text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(8).Add(
				text.New(nonEmpty(strings.Join(c.StoreNames, ", "), "-"), props.Text{Size: 8, Top: 1}),
				text.New(currency+" "+nonEmpty(strings.Join(amounts, " / "), "-"), props.Text{
					Size: 7, Top: 5, Color: colorGray,
				}),
			),
		))
	}
	return rows
}

func footerRow(sheet ports.CatalogSheet) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Catálogo %s, versión de estado %d. Documento generado automáticamente.", sheet.Catalog.ID, sheet.Version),
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// percent formatea un decimal como porcentaje con dos decimales. Ej: 12.5 → "12.50%".
func percent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}
