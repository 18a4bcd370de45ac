package export

import (
	"context"

	"github.com/jhoicas/location-manager/internal/application/dto"
)

// Format formato de descarga del documento de un local.
type Format string

const (
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatXML  Format = "xml"
)

// Renderer serializa el documento de un local en un formato concreto.
// Implementaciones: JSON (este paquete), PDF (maroto), XLSX (excelize), XML (etree + c14n).
type Renderer interface {
	Render(ctx context.Context, data *dto.ShopData) ([]byte, error)
	ContentType() string
	Extension() string
}
