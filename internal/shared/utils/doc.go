// Package utils holds small helpers shared across layers.
package utils
