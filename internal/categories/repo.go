package categories

import (
	"context"
	"slices"

	"github.com/angelmondragon/jewelcatalog/internal/repo"
	"github.com/angelmondragon/jewelcatalog/pkg/errors"
	"github.com/angelmondragon/jewelcatalog/pkg/kv"
)

// Repository encapsulates custom category persistence.
type Repository struct {
	custom  *repo.Collection[Category]
	def     Category
	compare Comparator
}

// NewRepository constructs a category repository. A nil comparator uses LocaleOrder.
func NewRepository(base repo.Base, defaultName string, compare Comparator) *Repository {
	if compare == nil {
		compare = LocaleOrder()
	}
	return &Repository{
		custom:  repo.NewCollection[Category](base, kv.KeyCustomCategories),
		def:     Default(defaultName),
		compare: compare,
	}
}

// Default returns the synthetic default category.
func (r *Repository) Default() Category {
	return r.def
}

// Save appends a custom category. Names are not checked for uniqueness here.
func (r *Repository) Save(ctx context.Context, draft Draft) (Category, error) {
	created := Category{
		ID:        repo.NewID(),
		Name:      draft.Name,
		Icon:      draft.Icon,
		CreatedAt: repo.Now(),
	}
	err := r.custom.Mutate(ctx, func(cats []Category) ([]Category, error) {
		return append(cats, created), nil
	})
	if err != nil {
		return Category{}, err
	}
	return created, nil
}

// ListCustom returns the stored categories in storage order.
func (r *Repository) ListCustom(ctx context.Context) ([]Category, error) {
	return r.custom.Load(ctx)
}

// ListAll returns the custom categories sorted by name with the default category last.
func (r *Repository) ListAll(ctx context.Context) ([]Category, error) {
	cats, err := r.custom.Load(ctx)
	if err != nil {
		return nil, err
	}
	compare := r.compare()
	slices.SortStableFunc(cats, func(a, b Category) int {
		return compare(a.Name, b.Name)
	})
	return append(cats, r.def), nil
}

func (r *Repository) Update(ctx context.Context, id string, patch Patch) error {
	return r.custom.Mutate(ctx, func(cats []Category) ([]Category, error) {
		idx := indexOf(cats, id)
		if idx < 0 {
			return nil, errors.New(errors.CodeNotFound, "category not found")
		}
		patch.apply(&cats[idx])
		return cats, nil
	})
}

// Delete removes the custom category with id. Items filed under it are left alone.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.custom.Mutate(ctx, func(cats []Category) ([]Category, error) {
		idx := indexOf(cats, id)
		if idx < 0 {
			return nil, repo.ErrNoChange
		}
		return append(cats[:idx], cats[idx+1:]...), nil
	})
}

func indexOf(cats []Category, id string) int {
	for i, c := range cats {
		if c.ID == id {
			return i
		}
	}
	return -1
}
