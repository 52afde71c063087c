package jewellery

import (
	"strings"

	"github.com/angelmondragon/jewelcatalog/pkg/types"
)

// Item is one catalog piece as stored under @jewellery_items.
type Item struct {
	ID         string   `json:"id"`
	ImgID      string   `json:"imgId"`
	Image      string   `json:"image"`
	Name       string   `json:"name"`
	Categories []string `json:"categories,omitempty"`
	// Category is the single-category field of records written before
	// multi-category support. It is dropped on the next write.
	Category  *string `json:"category,omitempty"`
	Metal     *string `json:"metal"`
	Weight    *string `json:"weight"`
	Carat     *string `json:"carat"`
	CreatedAt string  `json:"createdAt"`
}

// InCategory reports whether the item belongs to name, ignoring case.
// The legacy single category only counts when categories is absent.
func (i Item) InCategory(name string) bool {
	for _, c := range i.EffectiveCategories() {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// PrimaryCategory returns the first category that is not exclude, or "".
func (i Item) PrimaryCategory(exclude string) string {
	for _, c := range i.EffectiveCategories() {
		if !strings.EqualFold(c, exclude) {
			return c
		}
	}
	return ""
}

// EffectiveCategories returns categories, falling back to the legacy field.
func (i Item) EffectiveCategories() []string {
	if i.Categories != nil {
		return i.Categories
	}
	if i.Category != nil {
		return []string{*i.Category}
	}
	return nil
}

// Draft carries the caller-supplied fields of a new item.
type Draft struct {
	Image      string
	Name       string
	Categories []string
	Metal      *string
	Weight     *string
	Carat      *string
}

// Patch is a partial update. Only fields with Set overwrite; id, imgId and
// createdAt cannot be patched.
type Patch struct {
	Image      types.Field[string]   `json:"image"`
	Name       types.Field[string]   `json:"name"`
	Categories types.Field[[]string] `json:"categories"`
	Metal      types.Field[*string]  `json:"metal"`
	Weight     types.Field[*string]  `json:"weight"`
	Carat      types.Field[*string]  `json:"carat"`
}

func (p Patch) apply(item *Item) {
	p.Image.Apply(&item.Image)
	p.Name.Apply(&item.Name)
	if p.Categories.Set {
		item.Categories = append([]string{}, p.Categories.Value...)
		item.Category = nil
	}
	p.Metal.Apply(&item.Metal)
	p.Weight.Apply(&item.Weight)
	p.Carat.Apply(&item.Carat)
}

// WithDefault appends def to categories unless it is already present (ignoring case).
func WithDefault(categories []string, def string) []string {
	out := make([]string, 0, len(categories)+1)
	has := false
	for _, c := range categories {
		if strings.EqualFold(c, def) {
			has = true
		}
		out = append(out, c)
	}
	if !has {
		out = append(out, def)
	}
	return out
}
