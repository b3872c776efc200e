// Package routing fetches pedestrian routes from an OpenRouteService
// compatible directions API and decodes them into route values.
package routing
