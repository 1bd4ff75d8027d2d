// Package collection provides small generic helpers for slices of records.
//
//	ids := collection.Map(sale.Items, func(i models.SaleLineItem) uint { return i.ProductID })
//	top := collection.Take(collection.SortBy(rows, byQuantity), 5)
package collection

import "sort"

// Map transforms each element of s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns the elements of s for which fn returns true.
func Filter[T any](s []T, fn func(T) bool) []T {
	var out []T
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// FlatMap maps each element to a slice and concatenates the results.
func FlatMap[T, R any](s []T, fn func(T) []R) []R {
	var out []R
	for _, v := range s {
		out = append(out, fn(v)...)
	}
	return out
}

// Reduce folds s into a single value, starting with initial.
func Reduce[T, R any](s []T, initial R, fn func(carry R, item T) R) R {
	carry := initial
	for _, v := range s {
		carry = fn(carry, v)
	}
	return carry
}

// SortBy returns a sorted copy of s. Equal elements keep their order.
func SortBy[T any](s []T, less func(a, b T) bool) []T {
	out := append([]T(nil), s...)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Take returns at most the first n elements.
func Take[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n >= len(s) {
		return s
	}
	return s[:n]
}

// KeyBy indexes s by fn. When two elements share a key the last one wins.
func KeyBy[T any, K comparable](s []T, fn func(T) K) map[K]T {
	out := make(map[K]T, len(s))
	for _, v := range s {
		out[fn(v)] = v
	}
	return out
}
