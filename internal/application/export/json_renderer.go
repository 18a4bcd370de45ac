package export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/location-manager/internal/application/dto"
)

// JSONRenderer serializa ShopData tal cual; es el formato por defecto de la descarga.
type JSONRenderer struct{}

// NewJSONRenderer construye el renderer JSON.
func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (JSONRenderer) Render(_ context.Context, data *dto.ShopData) ([]byte, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: serializar json: %w", err)
	}
	return b, nil
}

func (JSONRenderer) ContentType() string { return "application/json" }

func (JSONRenderer) Extension() string { return "json" }

var _ Renderer = JSONRenderer{}
