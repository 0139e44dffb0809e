// Package building provides the building health report.
// This file defines the public API of the building bounded context.
// Only types and interfaces defined here should be imported by other domains.
package building

import (
	"context"

	"buildinghealth_backend/internal/building/domain"
	"buildinghealth_backend/internal/building/transport"
)

// Reporter produces building reports. The scheduler depends on it to warm
// the upstream cache.
type Reporter interface {
	Lookup(ctx context.Context, bbl domain.BBL) (*transport.Report, error)
}
