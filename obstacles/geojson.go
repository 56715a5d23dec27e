package obstacles

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadGeoJSON reads a FeatureCollection and returns its Polygon and
// MultiPolygon geometries as polygons. Other geometry types are skipped.
func LoadGeoJSON(r io.Reader) ([]orb.Polygon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse feature collection: %w", err)
	}

	var polygons []orb.Polygon
	for _, feature := range fc.Features {
		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			polygons = append(polygons, g)
		case orb.MultiPolygon:
			for _, p := range g {
				polygons = append(polygons, p)
			}
		}
	}
	return polygons, nil
}
