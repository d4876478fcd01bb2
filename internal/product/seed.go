package product

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"agrimart-be/internal/catalog"
)

//go:embed seed/products.json
var seedProducts []byte

// SeedCatalog returns the bundled sample catalog.
func SeedCatalog() ([]catalog.Product, error) {
	return DecodeCatalog(bytes.NewReader(seedProducts))
}

// DecodeCatalog reads a JSON array of products.
func DecodeCatalog(r io.Reader) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if products == nil {
		products = []catalog.Product{}
	}
	return products, nil
}

// SeedSource serves the bundled sample catalog.
type SeedSource struct{}

func (SeedSource) LoadCatalog(context.Context) ([]catalog.Product, error) {
	return SeedCatalog()
}

// FileSource serves a catalog from a JSON file on disk.
type FileSource struct {
	Path string
}

func (f FileSource) LoadCatalog(context.Context) ([]catalog.Product, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadCatalog, err)
	}
	defer file.Close()

	return DecodeCatalog(file)
}
