// Package utils holds small helpers shared by the config and logging layers.
package utils

func IntPtr(i int) *int {
	return &i
}

func BoolPtr(b bool) *bool {
	return &b
}

func JustPtr[T any](v T) *T {
	return &v
}
