// Package basemodels holds shared model types for the base CRUD layer.
package basemodels

// PaginateResult wraps one page of results with paging metadata.
type PaginateResult[T any] struct {
	Items      []T   `json:"items"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	ItemCount  int64 `json:"itemCount"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
}
