// Package edit holds the structural edit operations on diagram models.
// Every operation takes a model by value and returns a new one; inputs are
// never mutated and invalid indices or ids leave the model unchanged.
package edit

import "slices"

// Append returns a copy of s with v added at the end.
func Append[T any](s []T, v ...T) []T {
	out := make([]T, 0, len(s)+len(v))
	out = append(out, s...)
	return append(out, v...)
}

// RemoveAt returns a copy of s without the element at i.
func RemoveAt[T any](s []T, i int) []T {
	if i < 0 || i >= len(s) {
		return slices.Clone(s)
	}
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// Replace returns a copy of s with the element at i set to v.
func Replace[T any](s []T, i int, v T) []T {
	out := slices.Clone(s)
	if i >= 0 && i < len(out) {
		out[i] = v
	}
	return out
}

// Update returns a copy of s with fn applied to the element at i.
func Update[T any](s []T, i int, fn func(*T)) []T {
	out := slices.Clone(s)
	if i >= 0 && i < len(out) {
		fn(&out[i])
	}
	return out
}

// Filter returns the elements of s for which keep reports true.
func Filter[T any](s []T, keep func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Move removes the element at from and reinserts it at to, where to is an
// index into the shortened slice. to is clamped.
func Move[T any](s []T, from, to int) []T {
	if from < 0 || from >= len(s) {
		return slices.Clone(s)
	}
	moved := s[from]
	out := RemoveAt(s, from)
	to = max(0, min(to, len(out)))
	return slices.Insert(out, to, moved)
}

// DropIndex computes where an item dragged from src lands when dropped on
// the row at tgt, above or below it, in a list of n items. The result is an
// index into the list after src has been removed.
func DropIndex(src, tgt int, above bool, n int) int {
	idx := tgt
	switch {
	case src < tgt:
		if above {
			idx = tgt - 1
		}
	case src > tgt:
		if !above {
			idx = tgt + 1
		}
	}
	return max(0, min(idx, n-1))
}

// Reorder applies a drag-and-drop move of the element at src onto the
// element at tgt.
func Reorder[T any](s []T, src, tgt int, above bool) []T {
	if src < 0 || src >= len(s) || tgt < 0 || tgt >= len(s) || src == tgt {
		return slices.Clone(s)
	}
	return Move(s, src, DropIndex(src, tgt, above, len(s)))
}

// names collects the non-empty results of name over s.
func names[T any](s []T, name func(T) string) []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		if n := name(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}
