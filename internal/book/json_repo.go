package book

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// catalogFile mirrors the on-disk catalog format.
type catalogFile struct {
	PageSize int               `json:"page_size"`
	Authors  map[string]string `json:"authors"`
	Genres   map[string]string `json:"genres"`
	Books    []Book            `json:"books"`
}

// JSONRepo loads the catalog from a JSON file.
type JSONRepo struct {
	path     string
	pageSize int
}

// NewJSONRepo creates a repository reading path. A pageSize above zero
// overrides the value stored in the file.
func NewJSONRepo(path string, pageSize int) *JSONRepo {
	return &JSONRepo{path: path, pageSize: pageSize}
}

func (r *JSONRepo) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", r.path, err)
	}
	return DecodeCatalog(raw, r.pageSize)
}

// DecodeCatalog parses the JSON catalog format.
func DecodeCatalog(raw []byte, pageSize int) (*Catalog, error) {
	var f catalogFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}
	return NewCatalog(f.Books, f.Authors, f.Genres, f.PageSize)
}
