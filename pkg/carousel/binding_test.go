package carousel

import "testing"

type testCard struct {
	ID    string
	Label string
}

func (c testCard) ItemID() string { return c.ID }

func TestElementBinding_ReadWrite(t *testing.T) {
	items := []testCard{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	list := BindValue(&items)

	second := ElementBinding(list, 1)
	if got := second.Value().ID; got != "b" {
		t.Fatalf("Value().ID = %q, want %q", got, "b")
	}

	second.Update(testCard{ID: "b", Label: "updated"})
	if items[1].Label != "updated" {
		t.Errorf("write did not reach backing slice: %+v", items[1])
	}
}

func TestElementBinding_OutOfBounds(t *testing.T) {
	items := []testCard{{ID: "a"}}
	list := BindValue(&items)

	missing := ElementBinding(list, 5)
	if got := missing.Value(); got != (testCard{}) {
		t.Errorf("out-of-bounds read = %+v, want zero value", got)
	}

	missing.Update(testCard{ID: "x"})
	if len(items) != 1 || items[0].ID != "a" {
		t.Errorf("out-of-bounds write mutated slice: %+v", items)
	}

	// Bounds are rechecked per access, so shrinking the collection after
	// deriving the binding must not panic.
	inRange := ElementBinding(list, 0)
	items = items[:0]
	if got := inRange.Value(); got != (testCard{}) {
		t.Errorf("read after shrink = %+v, want zero value", got)
	}
}

func TestItems_SharesBackingSlice(t *testing.T) {
	items := []testCard{{ID: "a"}}
	list := Items(&items)

	items = append(items, testCard{ID: "b"})
	if got := len(list.Value()); got != 2 {
		t.Errorf("Value() length = %d, want 2 after host append", got)
	}
}

func TestConstant_DropsWrites(t *testing.T) {
	b := Constant(testCard{ID: "fixed"})
	b.Update(testCard{ID: "other"})
	if got := b.Value().ID; got != "fixed" {
		t.Errorf("Value().ID = %q, want %q", got, "fixed")
	}
}

func TestIndexOfItem_Fallback(t *testing.T) {
	items := []testCard{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	if got := indexOfItem(items, "c"); got != 2 {
		t.Errorf("indexOfItem(c) = %d, want 2", got)
	}
	if got := indexOfItem(items, "stale"); got != 0 {
		t.Errorf("indexOfItem(stale) = %d, want 0", got)
	}
	if got := indexOfItem(items, ""); got != 0 {
		t.Errorf("indexOfItem(empty id) = %d, want 0", got)
	}
	if got := indexOfItem([]testCard(nil), "a"); got != 0 {
		t.Errorf("indexOfItem on empty collection = %d, want 0", got)
	}
}
