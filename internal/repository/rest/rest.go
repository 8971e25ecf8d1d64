// Package rest implements the repository contracts against the ERP backend's
// HTTP API. Every method is a thin, typed wrapper over internal/client; the
// backend performs all validation and state transitions.
package rest

import (
	"context"

	"github.com/acippicacipa/orchid-erp-sub001/internal/client"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
)

func list[T any](ctx context.Context, api *client.Client, base string, opts repository.ListOptions) (client.Page[T], error) {
	return client.GetPage[T](ctx, api, base+opts.Encode())
}

func getOne[T any](ctx context.Context, api *client.Client, path string) (*T, error) {
	var out T
	if err := api.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func create[T any](ctx context.Context, api *client.Client, path string, body any) (*T, error) {
	var out T
	if err := api.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func update[T any](ctx context.Context, api *client.Client, path string, body any) (*T, error) {
	var out T
	if err := api.Put(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// action POSTs to an action sub-path (e.g. /sales/sales-orders/3/approve/)
// and decodes the refreshed entity the backend echoes back.
func action[T any](ctx context.Context, api *client.Client, path string) (*T, error) {
	var out T
	if err := api.Post(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
