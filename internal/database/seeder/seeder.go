package seeder

import (
	"context"

	"talent-match/internal/database"
)

// Seeder writes one slice of demo data. Run must be idempotent.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
