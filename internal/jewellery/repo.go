package jewellery

import (
	"context"
	"strings"

	"github.com/angelmondragon/jewelcatalog/internal/repo"
	"github.com/angelmondragon/jewelcatalog/pkg/errors"
	"github.com/angelmondragon/jewelcatalog/pkg/kv"
)

// ImageIDs issues the next human-facing imgId.
type ImageIDs interface {
	Next(ctx context.Context) string
}

// Repository encapsulates jewellery persistence.
type Repository struct {
	items           *repo.Collection[Item]
	imageIDs        ImageIDs
	defaultCategory string
}

// NewRepository constructs a jewellery repository. defaultCategory is the name
// every item is filed under.
func NewRepository(base repo.Base, imageIDs ImageIDs, defaultCategory string) *Repository {
	return &Repository{
		items:           repo.NewCollection[Item](base, kv.KeyJewelleryItems),
		imageIDs:        imageIDs,
		defaultCategory: defaultCategory,
	}
}

// Save appends a new item. The imgId is drawn even if the write then fails.
func (r *Repository) Save(ctx context.Context, draft Draft) (Item, error) {
	var created Item
	err := r.items.Mutate(ctx, func(items []Item) ([]Item, error) {
		r.normalize(items)
		created = Item{
			ID:         repo.NewID(),
			ImgID:      r.imageIDs.Next(ctx),
			Image:      draft.Image,
			Name:       draft.Name,
			Categories: WithDefault(draft.Categories, r.defaultCategory),
			Metal:      draft.Metal,
			Weight:     draft.Weight,
			Carat:      draft.Carat,
			CreatedAt:  repo.Now(),
		}
		return append(items, created), nil
	})
	if err != nil {
		return Item{}, err
	}
	return created, nil
}

// List returns every item, newest first.
func (r *Repository) List(ctx context.Context) ([]Item, error) {
	items, err := r.items.Load(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Reversed(items), nil
}

// ListByCategory returns the items filed under name (case-insensitive), newest first.
func (r *Repository) ListByCategory(ctx context.Context, name string) ([]Item, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.InCategory(name) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Get returns the item with the given id.
func (r *Repository) Get(ctx context.Context, id string) (Item, error) {
	items, err := r.items.Load(ctx)
	if err != nil {
		return Item{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return Item{}, errors.New(errors.CodeNotFound, "jewellery item not found")
}

// FindByImageID returns the newest item carrying imgID.
func (r *Repository) FindByImageID(ctx context.Context, imgID string) (Item, error) {
	imgID = strings.TrimSpace(imgID)
	items, err := r.List(ctx)
	if err != nil {
		return Item{}, err
	}
	for _, item := range items {
		if item.ImgID == imgID {
			return item, nil
		}
	}
	return Item{}, errors.New(errors.CodeNotFound, "jewellery item not found")
}

// Update merges patch over the item with the given id.
func (r *Repository) Update(ctx context.Context, id string, patch Patch) error {
	return r.items.Mutate(ctx, func(items []Item) ([]Item, error) {
		idx := indexOf(items, id)
		if idx < 0 {
			return nil, errors.New(errors.CodeNotFound, "jewellery item not found")
		}
		patch.apply(&items[idx])
		r.normalize(items)
		return items, nil
	})
}

// Delete removes the item with the given id. Unknown ids are ignored.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.items.Mutate(ctx, func(items []Item) ([]Item, error) {
		idx := indexOf(items, id)
		if idx < 0 {
			return nil, repo.ErrNoChange
		}
		items = append(items[:idx], items[idx+1:]...)
		r.normalize(items)
		return items, nil
	})
}

// normalize rewrites legacy single-category records and makes sure every
// record is filed under the default category.
func (r *Repository) normalize(items []Item) {
	for i := range items {
		items[i].Categories = WithDefault(items[i].EffectiveCategories(), r.defaultCategory)
		items[i].Category = nil
	}
}

func indexOf(items []Item, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
