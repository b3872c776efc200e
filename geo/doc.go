// Package geo provides the coordinate type and great-circle distance math
// shared by route parsing, navigation tracking and venue proximity scoring.
package geo
