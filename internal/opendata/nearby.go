package opendata

import (
	"context"
	"errors"
)

// NearbyResult is a Result that also reports whether the rows came from a
// spatial predicate or from the unfiltered fallback query.
type NearbyResult struct {
	Result
	Spatial bool
}

var errNoLocation = errors.New("no location")

// FetchNearby tries a within_circle query on each geometry field in order
// and keeps the first attempt returning rows. When at is nil or no attempt
// returns rows, fallback is fetched instead.
func (c *Client) FetchNearby(ctx context.Context, dataset string, at *Point, radiusMeters int, geoFields []string, fallback *Query, limit int) NearbyResult {
	if at != nil {
		for _, field := range geoFields {
			q := NewQuery().Where(WithinCircle(field, *at, radiusMeters)).Limit(limit)
			res := c.Fetch(ctx, dataset, q, 0)
			if len(res.Rows()) > 0 {
				return NearbyResult{Result: res, Spatial: true}
			}
			if ctx.Err() != nil {
				return NearbyResult{Result: Failed(ctx.Err())}
			}
		}
	}
	if fallback == nil {
		return NearbyResult{Result: Failed(errNoLocation)}
	}
	return NearbyResult{Result: c.Fetch(ctx, dataset, fallback, 0)}
}
