// Package xmldoc serializa el documento de un local como XML canónico (C14N).
// La salida canónica es estable byte a byte, por lo que su digest sirve de ETag.
package xmldoc

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/location-manager/internal/application/dto"
	"github.com/jhoicas/location-manager/internal/application/export"
)

// Namespace del documento exportado.
const NamespaceShopData = "urn:location-manager:shop-data:v1"

// ShopRenderer implementa export.Renderer con etree + c14n.
type ShopRenderer struct{}

// NewShopRenderer crea el renderer.
func NewShopRenderer() *ShopRenderer { return &ShopRenderer{} }

var _ export.Renderer = (*ShopRenderer)(nil)

func (r *ShopRenderer) ContentType() string { return "application/xml" }

func (r *ShopRenderer) Extension() string { return "xml" }

// Render arma el árbol con los mismos nombres de campo que el JSON y lo canonicaliza.
func (r *ShopRenderer) Render(_ context.Context, data *dto.ShopData) ([]byte, error) {
	doc := etree.NewDocument()
	root := doc.CreateElement("shopData")
	root.CreateAttr("xmlns", NamespaceShopData)
	root.CreateElement("name").SetText(data.Name)
	root.CreateElement("address").SetText(data.Address)
	root.CreateElement("city").SetText(data.City)

	entries := root.CreateElement("entries")
	for _, e := range data.Entries {
		entry := entries.CreateElement("entry")
		product := entry.CreateElement("product")
		product.CreateElement("name").SetText(e.Product.Name)
		product.CreateElement("manufacturer").SetText(e.Product.Manufacturer)
		product.CreateElement("category").SetText(e.Product.Category)
		product.CreateElement("productCode").SetText(e.Product.ProductCode)
		product.CreateElement("description").SetText(e.Product.Description)
		entry.CreateElement("amount").SetText(strconv.Itoa(e.Quantity))
		entry.CreateElement("totalPrice").SetText(e.TotalPrice.String())
	}

	var raw bytes.Buffer
	if _, err := doc.WriteTo(&raw); err != nil {
		return nil, fmt.Errorf("xml: serializar documento: %w", err)
	}
	out, err := canonicalize(raw.Bytes())
	if err != nil {
		return nil, fmt.Errorf("xml: canonicalizar documento: %w", err)
	}
	return out, nil
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
