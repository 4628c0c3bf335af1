// Package carousel provides a horizontally paged card scroller with
// parallax and depth effects, synchronized to a native page indicator.
//
// A CarouselView renders a bound collection of items as fixed-size cards
// that snap to one card at rest. Each card's content is produced by a
// caller-supplied builder that receives a two-way binding to the item,
// so embedded controls can write back to the host's collection.
package carousel

// Item is implemented by values displayed as carousel cards.
//
// Identifiers must be stable and unique within the bound collection; the
// carousel uses them to track which card is selected across reorders and
// rebuilds.
type Item interface {
	// ItemID returns the item's stable identifier.
	ItemID() string
}

// indexOfItem returns the index of the item whose identifier matches id.
// Missing or stale identifiers resolve to index 0.
func indexOfItem[T Item](items []T, id string) int {
	if id == "" {
		return 0
	}
	for i, item := range items {
		if item.ItemID() == id {
			return i
		}
	}
	return 0
}
