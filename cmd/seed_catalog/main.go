// seed_catalog genera un script SQL para poblar el catálogo de productos
// a partir del XML del proveedor (codificado normalmente en ISO-8859-1).
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.xml] [salida.sql]
// Por defecto lee catalogo.xml del directorio actual y escribe en stdout.
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/location-manager/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogo struct {
	Productos []producto `xml:"producto"`
}

type producto struct {
	Codigo      string `xml:"codigo,attr"`
	Nombre      string `xml:"nombre,attr"`
	Fabricante  string `xml:"fabricante,attr"`
	Categoria   string `xml:"categoria,attr"`
	Precio      string `xml:"precio,attr"`
	Descripcion string `xml:"descripcion"`
}

// catalogRow fila lista para INSERT.
type catalogRow struct {
	Code         string
	Name         string
	Manufacturer string
	Category     entity.Category
	Price        decimal.Decimal
	Description  string
}

func main() {
	xmlPath := "catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, skipped, err := parseCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if len(os.Args) > 2 {
		out, err = os.Create(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer out.Close()
	}

	if err := writeSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generado: %d productos, %d descartados\n", len(rows), skipped)
}

// parseCatalog decodifica el XML y descarta productos incompletos, con
// categoría desconocida o precio no positivo. Repite código: gana el último.
func parseCatalog(r io.Reader) ([]catalogRow, int, error) {
	var c catalogo
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToUpper(charset) {
		case "ISO-8859-1", "ISO8859-1", "LATIN1":
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		case "WINDOWS-1252", "CP1252":
			return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, 0, err
	}

	byCode := make(map[string]catalogRow)
	skipped := 0
	for _, p := range c.Productos {
		code := strings.TrimSpace(p.Codigo)
		name := strings.TrimSpace(p.Nombre)
		manufacturer := strings.TrimSpace(p.Fabricante)
		if code == "" || name == "" || manufacturer == "" {
			skipped++
			continue
		}
		cat, ok := entity.ParseCategory(p.Categoria)
		if !ok {
			skipped++
			continue
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(p.Precio), ",", "."))
		if err != nil || !price.IsPositive() {
			skipped++
			continue
		}
		byCode[code] = catalogRow{
			Code:         code,
			Name:         name,
			Manufacturer: manufacturer,
			Category:     cat,
			Price:        price.Round(2),
			Description:  strings.TrimSpace(p.Descripcion),
		}
	}

	rows := make([]catalogRow, 0, len(byCode))
	for _, row := range byCode {
		rows = append(rows, row)
	}
	// Salida estable por código
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	return rows, skipped, nil
}

func writeSQL(w io.Writer, rows []catalogRow) error {
	if _, err := io.WriteString(w, "-- Catálogo de productos\n-- Generado por cmd/seed_catalog\n\n"); err != nil {
		return err
	}
	for _, r := range rows {
		_, err := fmt.Fprintf(w,
			"INSERT INTO products (id, name, manufacturer, category, product_code, description, price)\n"+
				"VALUES ('%s', '%s', '%s', '%s', '%s', '%s', %s);\n",
			uuid.NewString(), escapeSQL(r.Name), escapeSQL(r.Manufacturer), string(r.Category),
			escapeSQL(r.Code), escapeSQL(r.Description), r.Price.StringFixed(2))
		if err != nil {
			return err
		}
	}
	return nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
