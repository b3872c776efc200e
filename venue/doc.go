// Package venue scores walking routes by campus crowdedness.
//
// This package handles:
// - Loading the venue and class-schedule datasets from JSON
// - Finding venues within walking distance of a route's geometry
// - Identifying classes starting or ending around a point in time
// - Ranking alternative routes by a crowd penalty score
//
// Datasets are held in memory; the store can optionally watch the source
// files and reload them when they change.
package venue
