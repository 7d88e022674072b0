package utils

import (
	"fmt"
	"math"
	"sort"
)

// DefaultClusterTolerance groups markers within roughly a ten-thousandth of
// a degree, about 11 meters at the equator.
const DefaultClusterTolerance = 0.0001

// Marker is one map pin before clustering.
type Marker struct {
	Key      string  `json:"key"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Kind     string  `json:"kind"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle,omitempty"`
	Detail   string  `json:"detail,omitempty"`
}

// MarkerGroup is a set of markers whose coordinates fall in the same
// tolerance cell. The map renders one pin per group with a count badge.
type MarkerGroup struct {
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Count   int      `json:"count"`
	Markers []Marker `json:"markers"`
}

// GroupMarkers buckets markers by rounding their coordinates to the given
// tolerance. A tolerance of zero or less falls back to the default. Output
// order is deterministic: north to south, then west to east.
func GroupMarkers(markers []Marker, tolerance float64) []MarkerGroup {
	if tolerance <= 0 {
		tolerance = DefaultClusterTolerance
	}

	groups := make(map[string]*MarkerGroup)
	for _, m := range markers {
		lat := math.Round(m.Lat/tolerance) * tolerance
		lng := math.Round(m.Lng/tolerance) * tolerance
		key := fmt.Sprintf("%.6f,%.6f", lat, lng)

		g, ok := groups[key]
		if !ok {
			g = &MarkerGroup{Lat: lat, Lng: lng}
			groups[key] = g
		}
		g.Markers = append(g.Markers, m)
		g.Count++
	}

	out := make([]MarkerGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Lat != out[j].Lat {
			return out[i].Lat > out[j].Lat
		}
		return out[i].Lng < out[j].Lng
	})
	return out
}
