package repo

import (
	"github.com/angelmondragon/jewelcatalog/pkg/kv"
	"github.com/angelmondragon/jewelcatalog/pkg/logger"
)

// Base provides a shared foundation for domain repositories: the store every
// collection lives in, the per-key lock registry and the logger.
type Base struct {
	store kv.Store
	locks *Locks
	logg  *logger.Logger
}

// NewBase constructs a Base repository backed by the provided store. Repositories
// that touch the same keys must share one Locks registry.
func NewBase(store kv.Store, locks *Locks, logg *logger.Logger) Base {
	if locks == nil {
		locks = NewLocks()
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return Base{store: store, locks: locks, logg: logg}
}

func (b Base) Store() kv.Store {
	return b.store
}

func (b Base) Locks() *Locks {
	return b.locks
}

func (b Base) Logger() *logger.Logger {
	return b.logg
}
