package cache

import (
	"context"
	"time"
)

// NullCache satisfies [Cache] without storing anything. Every Get is a miss,
// which makes the runner recompute each stage.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }
