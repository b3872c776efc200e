// Package route models a precomputed walking route: an ordered coordinate
// geometry plus the turn-by-turn steps that reference sub-ranges of it.
//
// Routes arrive as OpenRouteService-style GeoJSON feature collections. Only
// the shape needed by the navigation engine is decoded; everything else in
// the payload is ignored. A Route is immutable once parsed.
package route
