// Package pdf implementa la exportación del kardex a PDF para auditoría.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + filtros aplicados + fecha de emisión       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por cada par (artículo, almacén):                           │
//	│    Saldo inicial de la ventana                               │
//	│    TABLA: Fecha | Documento | Dir | Cantidad | Saldo         │
//	│    Saldo final de la ventana                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/jortega/restobar-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoKardexGenerator genera la representación PDF del kardex usando Maroto v2.
type MarotoKardexGenerator struct{}

// NewMarotoKardexGenerator construye el generador.
func NewMarotoKardexGenerator() *MarotoKardexGenerator { return &MarotoKardexGenerator{} }

// GenerateKardexPDF genera el PDF del kardex y devuelve sus bytes.
func (g *MarotoKardexGenerator) GenerateKardexPDF(req dto.KardexRequest, kardex *dto.KardexResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(req))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, grupo := range kardex.Grupos {
		m.AddRows(grupoHeaderRow(grupo))
		m.AddRows(tableHeaderRow())
		for _, mov := range grupo.Movimientos {
			m.AddRows(movimientoRow(mov))
		}
		m.AddRows(saldoFinalRow(grupo))
		m.AddRows(line.NewRow(2))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(req dto.KardexRequest) core.Row {
	filtros := "todos los artículos, todos los almacenes"
	if req.CodigoArticulo != "" || req.CodigoAlmacen != "" {
		filtros = fmt.Sprintf("artículo: %s  almacén: %s",
			valorODefecto(req.CodigoArticulo), valorODefecto(req.CodigoAlmacen))
	}
	ventana := "histórico completo"
	if req.Desde != nil || req.Hasta != nil {
		ventana = fmt.Sprintf("%s — %s", fechaODefecto(req.Desde), fechaODefecto(req.Hasta))
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("KARDEX DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(filtros, props.Text{Size: 8, Top: 9, Color: colorGray}),
			text.New("Ventana: "+ventana, props.Text{Size: 8, Top: 13, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Emitido: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
		),
	)
}

func grupoHeaderRow(grupo dto.KardexGrupoDTO) core.Row {
	return row.New(10).Add(
		col.New(8).Add(
			text.New(fmt.Sprintf("Artículo %s — Almacén %s", grupo.ArticuloID, grupo.AlmacenID), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Saldo inicial: "+grupo.SaldoInicial.String(), props.Text{
				Size: 9, Align: align.Right, Top: 2,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	th := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	thRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right}
	return row.New(6).Add(
		col.New(3).Add(text.New("Fecha", th)),
		col.New(4).Add(text.New("Transacción", th)),
		col.New(1).Add(text.New("Dir", th)),
		col.New(2).Add(text.New("Cantidad", thRight)),
		col.New(2).Add(text.New("Saldo", thRight)),
	)
}

func movimientoRow(mov dto.KardexMovimientoDTO) core.Row {
	td := props.Text{Size: 8, Top: 1}
	tdRight := props.Text{Size: 8, Top: 1, Align: align.Right}
	return row.New(5).Add(
		col.New(3).Add(text.New(mov.Fecha.Format("02/01/2006 15:04"), td)),
		col.New(4).Add(text.New(mov.TransaccionID, td)),
		col.New(1).Add(text.New(mov.Direccion, td)),
		col.New(2).Add(text.New(mov.CantidadVenta.String(), tdRight)),
		col.New(2).Add(text.New(mov.Saldo.String(), tdRight)),
	)
}

func saldoFinalRow(grupo dto.KardexGrupoDTO) core.Row {
	return row.New(6).Add(
		col.New(12).Add(
			text.New("Saldo final: "+grupo.SaldoFinal.String(), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
		),
	)
}

func valorODefecto(s string) string {
	if s == "" {
		return "todos"
	}
	return s
}

func fechaODefecto(t *time.Time) string {
	if t == nil {
		return "…"
	}
	return t.Format("02/01/2006")
}
