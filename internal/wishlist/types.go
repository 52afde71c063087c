package wishlist

// Snapshot is a copy of a jewellery item taken when the wishlist was created.
// Later edits to the item do not reach it.
type Snapshot struct {
	ID     string  `json:"id"`
	ImgID  string  `json:"imgId"`
	Name   string  `json:"name"`
	Image  string  `json:"image"`
	Metal  *string `json:"metal"`
	Weight *string `json:"weight"`
	Carat  *string `json:"carat"`
}

type Wishlist struct {
	ID           string     `json:"id"`
	CustomerName string     `json:"customerName"`
	Categories   []string   `json:"categories"`
	JewelleryIDs string     `json:"jewelleryIds"`
	Images       []Snapshot `json:"images"`
	CreatedAt    string     `json:"createdAt"`
}

type Draft struct {
	CustomerName string
	Categories   []string
	JewelleryIDs string
	Images       []Snapshot
}
