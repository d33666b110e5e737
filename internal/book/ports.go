package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=book

// Repository loads the catalog from its backing source.
type Repository interface {
	Load(ctx context.Context) (*Catalog, error)
}
