// Package xlsx genera la planilla Excel del documento de un local.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/location-manager/internal/application/dto"
	"github.com/jhoicas/location-manager/internal/application/export"
)

// SheetName hoja única de la planilla.
const SheetName = "Inventario"

// Fila donde empieza la tabla de entradas (las anteriores son la cabecera del local).
const tableHeaderRow = 5

var columns = []struct {
	title string
	width float64
}{
	{"Producto", 28},
	{"Fabricante", 20},
	{"Categoría", 24},
	{"Código", 14},
	{"Descripción", 32},
	{"Cantidad", 10},
	{"Total", 14},
}

// ShopRenderer implementa export.Renderer con excelize.
type ShopRenderer struct{}

// NewShopRenderer crea el renderer.
func NewShopRenderer() *ShopRenderer { return &ShopRenderer{} }

var _ export.Renderer = (*ShopRenderer)(nil)

func (r *ShopRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *ShopRenderer) Extension() string { return "xlsx" }

// Render escribe cabecera del local (nombre, dirección, ciudad) y una fila por entrada.
func (r *ShopRenderer) Render(_ context.Context, data *dto.ShopData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear estilo: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear estilo: %w", err)
	}

	for i, kv := range [][2]string{{"Local", data.Name}, {"Dirección", data.Address}, {"Ciudad", data.City}} {
		if err := setRow(f, i+1, kv[0], kv[1]); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(SheetName, cell(1, i+1), cell(1, i+1), bold); err != nil {
			return nil, err
		}
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c.title
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, colName, colName, c.width); err != nil {
			return nil, err
		}
	}
	if err := setRow(f, tableHeaderRow, header...); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, cell(1, tableHeaderRow), cell(len(columns), tableHeaderRow), bold); err != nil {
		return nil, err
	}

	for i, e := range data.Entries {
		rowNum := tableHeaderRow + 1 + i
		total, _ := e.TotalPrice.Float64()
		if err := setRow(f, rowNum,
			e.Product.Name,
			e.Product.Manufacturer,
			e.Product.Category,
			e.Product.ProductCode,
			e.Product.Description,
			e.Quantity,
			total,
		); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(SheetName, cell(len(columns), rowNum), cell(len(columns), rowNum), money); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir planilla: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values ...any) error {
	if err := f.SetSheetRow(SheetName, cell(1, row), &values); err != nil {
		return fmt.Errorf("xlsx: escribir fila %d: %w", row, err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
