package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/avatimes/avatimes/internal/blob"
	"github.com/avatimes/avatimes/internal/model"
)

// collection is the shared engine behind every entity type: a whole-collection
// JSON blob under one key, loaded on every read and written back in a single
// synchronous Put on every mutation. New records go to the front so iteration
// order is newest-first.
type collection[T any] struct {
	kv   blob.KV
	key  string
	log  zerolog.Logger
	id   func(*T) string
	seed func() []*T
}

func (c *collection[T]) load(ctx context.Context) ([]*T, error) {
	data, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	if !ok {
		if c.seed != nil {
			items := c.seed()
			if err := c.save(ctx, items); err != nil {
				return nil, err
			}
			return items, nil
		}
		return nil, nil
	}
	var items []*T
	if err := json.Unmarshal(data, &items); err != nil {
		// Unreadable collections read as empty rather than failing every
		// request, but the corruption is logged loudly so it cannot pass
		// for a fresh install.
		c.log.Error().
			Str("key", c.key).
			AnErr("cause", err).
			Msgf("%v: dropping unreadable collection", model.ErrCorrupted)
		return nil, nil
	}
	return items, nil
}

func (c *collection[T]) save(ctx context.Context, items []*T) error {
	if items == nil {
		items = []*T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	if err := c.kv.Put(ctx, c.key, data); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

func (c *collection[T]) list(ctx context.Context) ([]*T, error) {
	return c.load(ctx)
}

// add prepends item and persists the collection.
func (c *collection[T]) add(ctx context.Context, item *T) (*T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	items = append([]*T{item}, items...)
	if err := c.save(ctx, items); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *collection[T]) get(ctx context.Context, id string) (*T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if c.id(item) == id {
			return item, nil
		}
	}
	return nil, fmt.Errorf("%s %q: %w", c.key, id, model.ErrNotFound)
}

func (c *collection[T]) update(ctx context.Context, id string, fn func(*T) error) (*T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if c.id(item) != id {
			continue
		}
		if err := fn(item); err != nil {
			return nil, err
		}
		if err := c.save(ctx, items); err != nil {
			return nil, err
		}
		return item, nil
	}
	return nil, fmt.Errorf("%s %q: %w", c.key, id, model.ErrNotFound)
}

// remove filters id out and persists. Deleting an unknown id succeeds without
// rewriting the collection.
func (c *collection[T]) remove(ctx context.Context, id string) error {
	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	found := false
	for _, item := range items {
		if c.id(item) == id {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil
	}
	return c.save(ctx, kept)
}
