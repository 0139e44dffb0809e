package opendata

import (
	"encoding/json"
	"strconv"
	"strings"

	"buildinghealth_backend/platform/geo"
)

// Point is a WGS84 coordinate.
type Point = geo.Point

// Record is one row returned by a dataset. Field names and value types are
// controlled by the provider: numbers frequently arrive as strings.
type Record map[string]any

// String returns the field as a string. Numbers and booleans are formatted;
// missing, null and nested values yield "".
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// First returns the first non-empty string among keys.
func (r Record) First(keys ...string) string {
	for _, k := range keys {
		if s := r.String(k); s != "" {
			return s
		}
	}
	return ""
}

// Number returns the field as a float64, accepting numeric strings.
// Anything else yields 0.
func (r Record) Number(key string) float64 {
	n, _ := r.NumberOK(key)
	return n
}

// NumberOK is Number reporting whether the value was numeric.
func (r Record) NumberOK(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Has reports whether the field is present with a non-empty value.
func (r Record) Has(key string) bool {
	switch v := r[key].(type) {
	case nil:
		return false
	case string:
		return v != ""
	default:
		return true
	}
}

// Point extracts a coordinate from the usual Socrata shapes: latitude and
// longitude columns, a GeoJSON point, or a location object.
func (r Record) Point() (Point, bool) {
	if lat, ok := r.NumberOK("latitude"); ok {
		if lng, ok := r.NumberOK("longitude"); ok {
			return validPoint(lat, lng)
		}
	}
	for _, field := range []string{"the_geom", "location", "location_1", "lat_lon", "point", "geom"} {
		obj, ok := r[field].(map[string]any)
		if !ok {
			continue
		}
		nested := Record(obj)
		if coords, ok := obj["coordinates"].([]any); ok && len(coords) >= 2 {
			lng, lngOK := Record{"v": coords[0]}.NumberOK("v")
			lat, latOK := Record{"v": coords[1]}.NumberOK("v")
			if lngOK && latOK {
				return validPoint(lat, lng)
			}
		}
		if lat, ok := nested.NumberOK("latitude"); ok {
			if lng, ok := nested.NumberOK("longitude"); ok {
				return validPoint(lat, lng)
			}
		}
	}
	return Point{}, false
}

func validPoint(lat, lng float64) (Point, bool) {
	if lat == 0 && lng == 0 {
		return Point{}, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Point{}, false
	}
	return Point{Lat: lat, Lng: lng}, true
}
