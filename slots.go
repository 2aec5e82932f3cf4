package accordion

// SlotKind discriminates the two surface entries a panel list is built
// from.
type SlotKind int

const (
	// KindSlice is a panel's own surface: header row plus body.
	KindSlice SlotKind = iota
	// KindGap is the detachment row an expanded panel opens against a
	// neighbor.
	KindGap
)

func (k SlotKind) String() string {
	if k == KindGap {
		return "gap"
	}
	return "slice"
}

// Slot is one entry of the rendered sequence. Keys are stable across
// renders: a panel's slice always keys 2i, the gap above it 2i-1 and the
// gap below it 2i+1, so reorderings and toggles never alias entries.
type Slot struct {
	Key   int
	Index int
	Kind  SlotKind
}

// buildSlots derives the slot sequence from the panel flags alone. For each
// panel i a leading gap appears when the panel is expanded, has a panel
// above it, and that panel is collapsed; a trailing gap appears when the
// panel is expanded and not last. Adjacent expanded panels therefore share
// the single gap keyed to the upper panel.
func buildSlots(panels []Panel) []Slot {
	slots := make([]Slot, 0, 2*len(panels))
	last := len(panels) - 1
	for i, p := range panels {
		if p.Expanded && i > 0 && !panels[i-1].Expanded {
			slots = append(slots, Slot{Key: 2*i - 1, Index: i, Kind: KindGap})
		}
		slots = append(slots, Slot{Key: 2 * i, Index: i, Kind: KindSlice})
		if p.Expanded && i < last {
			slots = append(slots, Slot{Key: 2*i + 1, Index: i, Kind: KindGap})
		}
	}
	return slots
}
