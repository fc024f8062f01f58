// Package utils holds helpers for the optional fields of API payloads, which
// are pointers so that absent and zero can be told apart.
package utils

// Value dereferences v, or returns the zero value when v is nil.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// Set stores *src into dst when src is present. It reports whether it did.
func Set[T any](dst *T, src *T) bool {
	if src == nil {
		return false
	}
	*dst = *src
	return true
}
