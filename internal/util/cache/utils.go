package cache_utils

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/valkey-io/valkey-go"
)

const (
	DefaultCacheTimeout = 10 * time.Second
	DefaultCacheExpiry  = 10 * time.Minute
)

// ClientProvider resolves the Valkey client on first use, so package level
// wiring does not dial Valkey (or read config) at import time.
type ClientProvider func() valkey.Client

type CacheUtil[T any] struct {
	clientProvider ClientProvider
	prefix         string
	timeout        time.Duration
	expiry         time.Duration
}

func NewCacheUtil[T any](clientProvider ClientProvider, prefix string) *CacheUtil[T] {
	return &CacheUtil[T]{
		clientProvider: clientProvider,
		prefix:         prefix,
		timeout:        DefaultCacheTimeout,
		expiry:         DefaultCacheExpiry,
	}
}

func (c *CacheUtil[T]) WithExpiry(expiry time.Duration) *CacheUtil[T] {
	c.expiry = expiry
	return c
}

// TestCacheConnection writes, reads back and removes a probe key.
func TestCacheConnection(client valkey.Client) error {
	cacheUtil := NewCacheUtil[string](func() valkey.Client { return client }, "test:")

	testKey := "connection_test"
	testValue := "valkey_is_working"

	cacheUtil.Set(testKey, &testValue)

	retrievedValue := cacheUtil.Get(testKey)
	if retrievedValue == nil {
		return errors.New("cache test failed: could not retrieve cached value")
	}

	if *retrievedValue != testValue {
		return errors.New("cache test failed: retrieved value does not match expected")
	}

	cacheUtil.Invalidate(testKey)

	if cacheUtil.Get(testKey) != nil {
		return errors.New("cache test failed: test key was not properly invalidated")
	}

	return nil
}

func (c *CacheUtil[T]) Get(key string) *T {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	client := c.clientProvider()
	result := client.Do(ctx, client.B().Get().Key(c.prefix+key).Build())

	if result.Error() != nil {
		return nil
	}

	data, err := result.AsBytes()
	if err != nil {
		return nil
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil
	}

	return &item
}

func (c *CacheUtil[T]) Set(key string, item *T) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	data, err := json.Marshal(item)
	if err != nil {
		return
	}

	client := c.clientProvider()
	client.Do(ctx, client.B().Set().Key(c.prefix+key).Value(string(data)).Ex(c.expiry).Build())
}

func (c *CacheUtil[T]) Invalidate(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	client := c.clientProvider()
	client.Do(ctx, client.B().Del().Key(c.prefix+key).Build())
}
