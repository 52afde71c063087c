package categories

import "github.com/angelmondragon/jewelcatalog/pkg/types"

// Default category constants. The default category is synthesized on read and
// never stored.
const (
	DefaultID   = "archive"
	DefaultName = "Archive"
	DefaultIcon = "asset://icons/ring-icon.png"
)

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	IsDefault bool   `json:"isDefault"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Default returns the synthetic catch-all category under the given name.
func Default(name string) Category {
	if name == "" {
		name = DefaultName
	}
	return Category{
		ID:        DefaultID,
		Name:      name,
		Icon:      DefaultIcon,
		IsDefault: true,
	}
}

type Draft struct {
	Name string
	Icon string
}

type Patch struct {
	Name types.Field[string] `json:"name"`
	Icon types.Field[string] `json:"icon"`
}

func (p Patch) apply(c *Category) {
	p.Name.Apply(&c.Name)
	p.Icon.Apply(&c.Icon)
}
