package repo

import (
	"context"
	"encoding/json"
	stdErrors "errors"

	"github.com/angelmondragon/jewelcatalog/pkg/errors"
)

// ErrNoChange tells Mutate to leave the stored collection untouched.
var ErrNoChange = stdErrors.New("repo: no change")

// Collection is a table of T stored as one JSON array under a single key.
type Collection[T any] struct {
	base Base
	key  string
}

func NewCollection[T any](base Base, key string) *Collection[T] {
	return &Collection[T]{base: base, key: key}
}

func (c *Collection[T]) Key() string {
	return c.key
}

// Load returns the records in storage order. An absent key yields an empty
// slice, as does a value that is not a JSON array (logged). Elements that do
// not decode as T are logged and skipped; the rest are returned.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.base.store.Get(ctx, c.key)
	if err != nil {
		return nil, errors.Wrap(errors.CodeStorageUnavailable, err, "read "+c.key)
	}
	if !ok {
		return []T{}, nil
	}

	logg := c.base.logg
	records, skipped, err := decode[T](raw)
	if err != nil {
		decodeErr := errors.Wrap(errors.CodeDecode, err, "decode "+c.key)
		logg.WarnErr(logg.WithCollection(ctx, c.key), "stored collection is corrupt, treating as empty", decodeErr)
		return []T{}, nil
	}
	for _, bad := range skipped {
		decodeErr := errors.Wrap(errors.CodeDecode, bad.err, "decode "+c.key)
		logg.WarnErr(logg.WithField(logg.WithCollection(ctx, c.key), "index", bad.index), "skipping undecodable record", decodeErr)
	}
	return records, nil
}

// Mutate runs fn over the storage-order records while holding the key lock and
// writes the result back. fn may return ErrNoChange to skip the write; any other
// error aborts without writing and is returned as is.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(records []T) ([]T, error)) error {
	unlock := c.base.locks.Lock(c.key)
	defer unlock()

	records, err := c.Load(ctx)
	if err != nil {
		return err
	}

	next, err := fn(records)
	if stdErrors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}
	return c.save(ctx, next)
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encode "+c.key)
	}
	if err := c.base.store.Set(ctx, c.key, string(raw)); err != nil {
		return errors.Wrap(errors.CodeStorageUnavailable, err, "write "+c.key)
	}
	return nil
}

type skippedRecord struct {
	index int
	err   error
}

// decode splits raw into array elements first so one malformed record does not
// hide the others.
func decode[T any](raw string) ([]T, []skippedRecord, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return nil, nil, err
	}
	records := make([]T, 0, len(elems))
	var skipped []skippedRecord
	for i, elem := range elems {
		var rec T
		if err := json.Unmarshal(elem, &rec); err != nil {
			skipped = append(skipped, skippedRecord{index: i, err: err})
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}
