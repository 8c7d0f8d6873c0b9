// Package util holds small generic helpers shared across packages, in the
// same spirit as the teacher's pkg/util.
package util

import "math"

// RoundFloat rounds val to precision decimal places.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// ReverseG reverses arr in place.
func ReverseG[T any](arr []T) {
	for i, j := 0, len(arr)-1; i < j; i, j = i+1, j-1 {
		arr[i], arr[j] = arr[j], arr[i]
	}
}
