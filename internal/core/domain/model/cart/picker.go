package cart

import (
	"slices"

	"orderdesk/internal/core/domain/model/menu"
)

const (
	MinCondiments = 1
	MaxCondiments = 2
)

// PickerState is the state of the condiment picker.
type PickerState int

const (
	Idle PickerState = iota
	Selecting
)

func (s PickerState) String() string {
	if s == Selecting {
		return "selecting"
	}
	return "idle"
}

// CondimentPicker holds the single pending condiment choice. Its zero value is Idle.
type CondimentPicker struct {
	state  PickerState
	item   menu.Item
	chosen []menu.ItemID
}

// ToggleResult reports the pending selection after a toggle. MaximumReached is
// set when a third condiment was refused; the selection is then unchanged.
type ToggleResult struct {
	Chosen         []menu.ItemID
	MaximumReached bool
}

func (p *CondimentPicker) State() PickerState {
	return p.state
}

// Pending returns the item awaiting condiments.
func (p *CondimentPicker) Pending() (menu.Item, bool) {
	if p.state != Selecting {
		return menu.Item{}, false
	}
	return p.item, true
}

// Chosen returns the temporary selection in the order it was made.
func (p *CondimentPicker) Chosen() []menu.ItemID {
	return slices.Clone(p.chosen)
}

func (p *CondimentPicker) begin(item menu.Item) {
	p.state = Selecting
	p.item = item
	p.chosen = nil
}

func (p *CondimentPicker) toggle(id menu.ItemID) ToggleResult {
	if i := slices.Index(p.chosen, id); i >= 0 {
		p.chosen = slices.Delete(p.chosen, i, i+1)
		return ToggleResult{Chosen: p.Chosen()}
	}
	if len(p.chosen) >= MaxCondiments {
		return ToggleResult{Chosen: p.Chosen(), MaximumReached: true}
	}
	p.chosen = append(p.chosen, id)
	return ToggleResult{Chosen: p.Chosen()}
}

func (p *CondimentPicker) reset() {
	*p = CondimentPicker{}
}
