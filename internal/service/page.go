package service

import "go-inventory-billing/internal/repository"

type Paged[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func paged[T any](items []T, total int64, page repository.Page) *Paged[T] {
	if items == nil {
		items = []T{}
	}
	number := page.Number
	if number < 1 {
		number = 1
	}
	return &Paged[T]{Items: items, Total: total, Page: number, Limit: page.Limit}
}
