package wishlist

import (
	"context"

	"github.com/angelmondragon/jewelcatalog/internal/jewellery"
	"github.com/angelmondragon/jewelcatalog/internal/repo"
	"github.com/angelmondragon/jewelcatalog/pkg/kv"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	lists *repo.Collection[Wishlist]
}

// NewRepository constructs a wishlist repository bound to the provided base.
func NewRepository(base repo.Base) *Repository {
	return &Repository{lists: repo.NewCollection[Wishlist](base, kv.KeyWishlists)}
}

// Save stores a wishlist with the images exactly as supplied.
func (r *Repository) Save(ctx context.Context, draft Draft) (Wishlist, error) {
	created := Wishlist{
		ID:           repo.NewID(),
		CustomerName: draft.CustomerName,
		Categories:   nonNil(draft.Categories),
		JewelleryIDs: draft.JewelleryIDs,
		Images:       nonNil(draft.Images),
		CreatedAt:    repo.Now(),
	}
	err := r.lists.Mutate(ctx, func(lists []Wishlist) ([]Wishlist, error) {
		return append(lists, created), nil
	})
	if err != nil {
		return Wishlist{}, err
	}
	return created, nil
}

// List returns every wishlist, newest first.
func (r *Repository) List(ctx context.Context) ([]Wishlist, error) {
	lists, err := r.lists.Load(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Reversed(lists), nil
}

// Delete removes a wishlist from the storage-order collection. Unknown ids are ignored.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.lists.Mutate(ctx, func(lists []Wishlist) ([]Wishlist, error) {
		for i, w := range lists {
			if w.ID == id {
				return append(lists[:i], lists[i+1:]...), nil
			}
		}
		return nil, repo.ErrNoChange
	})
}

// SnapshotOf copies the wishlist-relevant fields of item.
func SnapshotOf(item jewellery.Item) Snapshot {
	return Snapshot{
		ID:     item.ID,
		ImgID:  item.ImgID,
		Name:   item.Name,
		Image:  item.Image,
		Metal:  item.Metal,
		Weight: item.Weight,
		Carat:  item.Carat,
	}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
