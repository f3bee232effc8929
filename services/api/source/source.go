// Package source reads the externally managed readings table. Both
// backends do a full scan and hand rows over untyped; validation is the
// normalizer's job.
package source

import (
	"context"
	"fmt"

	"github.com/davin-ai/agriview/services/api/config"
	"github.com/davin-ai/agriview/services/api/normalize"
)

// Source is the data source collaborator: one full scan per call.
type Source interface {
	Scan(ctx context.Context) ([]normalize.RawRecord, error)
	Close()
}

// Open builds the source selected by SOURCE_DRIVER.
func Open(ctx context.Context, cfg config.Config) (Source, error) {
	switch cfg.SourceDriver {
	case config.DriverPostgres:
		return NewPostgres(ctx, cfg.DatabaseURL, cfg.ReadingsTable)
	case config.DriverMongo:
		return NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.ReadingsTable)
	default:
		return nil, fmt.Errorf("unknown source driver %q", cfg.SourceDriver)
	}
}
