package carousel

// Item is one promotional entry shown on the strip.
type Item struct {
	ImageRef string
	Link     string // optional; empty means the item has no click-through
	Title    string // optional
}

// Label returns the best human-readable name for the item.
func (i Item) Label() string {
	if i.Title != "" {
		return i.Title
	}
	return i.ImageRef
}
