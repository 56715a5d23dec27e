// Package obstacles turns polygon obstacles into blocked grid cells.
package obstacles

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// minExtent pads degenerate bounding boxes so rtreego accepts them.
const minExtent = 1e-9

// polygonEntry wraps a polygon for R-tree storage
type polygonEntry struct {
	polygon orb.Polygon
	bbox    rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (p *polygonEntry) Bounds() rtreego.Rect {
	return p.bbox
}

// Index answers point-in-obstacle queries over a set of polygons.
type Index struct {
	tree *rtreego.Rtree
	size int
}

// NewIndex builds an R-tree over the polygons' bounding boxes. Polygons
// without an outer ring are ignored.
func NewIndex(polygons []orb.Polygon) *Index {
	tree := rtreego.NewTree(2, 25, 50)
	size := 0
	for _, polygon := range polygons {
		bbox, ok := boundingBox(polygon)
		if !ok {
			continue
		}
		tree.Insert(&polygonEntry{polygon: polygon, bbox: bbox})
		size++
	}
	return &Index{tree: tree, size: size}
}

// Len returns the number of indexed polygons.
func (idx *Index) Len() int { return idx.size }

// Contains reports whether p lies inside any indexed polygon.
func (idx *Index) Contains(p orb.Point) bool {
	for _, item := range idx.tree.SearchIntersect(rtreego.Point{p[0], p[1]}.ToRect(minExtent)) {
		if planar.PolygonContains(item.(*polygonEntry).polygon, p) {
			return true
		}
	}
	return false
}

func boundingBox(polygon orb.Polygon) (rtreego.Rect, bool) {
	if len(polygon) == 0 || len(polygon[0]) == 0 {
		return rtreego.Rect{}, false
	}
	bound := polygon.Bound()
	rect, err := rtreego.NewRect(
		rtreego.Point{bound.Min[0], bound.Min[1]},
		[]float64{max(bound.Max[0]-bound.Min[0], minExtent), max(bound.Max[1]-bound.Min[1], minExtent)},
	)
	if err != nil {
		return rtreego.Rect{}, false
	}
	return rect, true
}
