// Package sequence issues the short, zero-padded imgId values shown to customers.
package sequence

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/angelmondragon/jewelcatalog/internal/repo"
	"github.com/angelmondragon/jewelcatalog/pkg/kv"
)

// Fallback is returned when the counter cannot be read or written.
const Fallback = "001"

type Generator struct {
	base repo.Base
	key  string
}

func NewGenerator(base repo.Base) *Generator {
	return &Generator{base: base, key: kv.KeyImageCounter}
}

// Next increments the stored counter and returns it zero-padded to three digits.
// Store failures are logged and answered with Fallback; nothing is persisted then.
func (g *Generator) Next(ctx context.Context) string {
	unlock := g.base.Locks().Lock(g.key)
	defer unlock()

	store := g.base.Store()
	logg := g.base.Logger()
	ctx = logg.WithCollection(ctx, g.key)

	raw, ok, err := store.Get(ctx, g.key)
	if err != nil {
		logg.WarnErr(ctx, "reading image counter failed, using fallback id", err)
		return Fallback
	}

	var current int64
	if ok {
		parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || parsed < 0 {
			logg.WarnErr(ctx, "image counter is not a number, restarting from zero", err)
		} else {
			current = parsed
		}
	}

	next := current + 1
	if err := store.Set(ctx, g.key, strconv.FormatInt(next, 10)); err != nil {
		logg.WarnErr(ctx, "persisting image counter failed, using fallback id", err)
		return Fallback
	}
	return Format(next)
}

// Format zero-pads n to at least three digits.
func Format(n int64) string {
	return fmt.Sprintf("%03d", n)
}
