package sequence

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/angelmondragon/jewelcatalog/internal/repo"
	"github.com/angelmondragon/jewelcatalog/pkg/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct {
	*kv.Memory
	getErr error
	setErr error
}

func (b *brokenStore) Get(ctx context.Context, key string) (string, bool, error) {
	if b.getErr != nil {
		return "", false, b.getErr
	}
	return b.Memory.Get(ctx, key)
}

func (b *brokenStore) Set(ctx context.Context, key, value string) error {
	if b.setErr != nil {
		return b.setErr
	}
	return b.Memory.Set(ctx, key, value)
}

func TestFormat(t *testing.T) {
	tests := map[int64]string{1: "001", 42: "042", 999: "999", 1000: "1000"}
	for n, want := range tests {
		assert.Equal(t, want, Format(n))
	}
}

func TestNextIsSequentialAndPersisted(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	gen := NewGenerator(repo.NewBase(store, nil, nil))

	var got []string
	for i := 0; i < 11; i++ {
		got = append(got, gen.Next(ctx))
	}
	assert.Equal(t, "001", got[0])
	assert.Equal(t, "011", got[10])
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1], got[i])
	}

	raw, ok, err := store.Get(ctx, kv.KeyImageCounter)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "11", raw)
}

func TestNextResumesFromStoredValue(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, kv.KeyImageCounter, "41"))

	assert.Equal(t, "042", NewGenerator(repo.NewBase(store, nil, nil)).Next(ctx))
}

func TestNextRestartsOnGarbage(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, kv.KeyImageCounter, "abc"))

	assert.Equal(t, "001", NewGenerator(repo.NewBase(store, nil, nil)).Next(ctx))
}

func TestNextFallbackDoesNotPersist(t *testing.T) {
	ctx := context.Background()

	readFail := &brokenStore{Memory: kv.NewMemory(), getErr: errors.New("io")}
	assert.Equal(t, Fallback, NewGenerator(repo.NewBase(readFail, nil, nil)).Next(ctx))
	_, ok, _ := readFail.Memory.Get(ctx, kv.KeyImageCounter)
	assert.False(t, ok)

	writeFail := &brokenStore{Memory: kv.NewMemory(), setErr: errors.New("quota")}
	require.NoError(t, writeFail.Memory.Set(ctx, kv.KeyImageCounter, "9"))
	assert.Equal(t, Fallback, NewGenerator(repo.NewBase(writeFail, nil, nil)).Next(ctx))
	raw, _, _ := writeFail.Memory.Get(ctx, kv.KeyImageCounter)
	assert.Equal(t, "9", raw)
}

func TestNextConcurrentCallersNeverShareAnID(t *testing.T) {
	ctx := context.Background()
	gen := NewGenerator(repo.NewBase(kv.NewMemory(), nil, nil))

	const callers = 50
	ids := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- gen.Next(ctx)
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, callers)
}
