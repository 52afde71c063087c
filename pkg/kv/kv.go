// Package kv defines the string key-value contract the catalog persists through.
package kv

import "context"

// Collection keys. Each holds one JSON document (or a decimal string for the counter).
const (
	KeyJewelleryItems   = "@jewellery_items"
	KeyCustomCategories = "@custom_categories"
	KeyImageCounter     = "@img_counter"
	KeyWishlists        = "@wishlists"
)

// Store is an async string key-value store. A missing key is reported with ok == false, not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// Ping checks s when it supports health checks and reports healthy otherwise.
func Ping(ctx context.Context, s Store) error {
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
