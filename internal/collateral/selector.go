// Package collateral tracks which holdings a user pledges as loan collateral
// and derives loan eligibility from the pledged quantities.
package collateral

import (
	"errors"
	"math"
)

var (
	// ErrUnknownAsset is returned when an asset id is not in the catalog.
	ErrUnknownAsset = errors.New("asset not in catalog")
	// ErrNotSelected is returned when adjusting an asset that is not selected.
	ErrNotSelected = errors.New("asset not selected")
)

// Asset is a catalog entry that can be pledged.
type Asset struct {
	ID     string
	Name   string
	Symbol string
	Amount float64
	Price  float64
}

// Entry is a selected asset together with its pledged quantity.
type Entry struct {
	Asset    Asset
	Quantity float64
}

// Value returns the pledged quantity × price.
func (e Entry) Value() float64 {
	return e.Quantity * e.Asset.Price
}

// Selector holds a user's collateral selection against a fixed asset catalog.
// Every pledged quantity stays within [0, holding amount]. A Selector is not
// safe for concurrent use.
type Selector struct {
	assets  []Asset
	index   map[string]int
	pledged map[string]float64
}

// NewSelector creates an empty selection over the given catalog. Catalog
// order determines the order of Entries.
func NewSelector(catalog []Asset) *Selector {
	s := &Selector{
		assets:  make([]Asset, len(catalog)),
		index:   make(map[string]int, len(catalog)),
		pledged: make(map[string]float64),
	}
	copy(s.assets, catalog)
	for i, a := range s.assets {
		s.index[a.ID] = i
	}
	return s
}

func (s *Selector) lookup(id string) (Asset, bool) {
	i, ok := s.index[id]
	if !ok {
		return Asset{}, false
	}
	return s.assets[i], true
}

// Has reports whether id is in the catalog.
func (s *Selector) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Restore sets a previously persisted pledge, clamped to the current holding.
func (s *Selector) Restore(id string, quantity float64) error {
	asset, ok := s.lookup(id)
	if !ok {
		return ErrUnknownAsset
	}
	s.pledged[id] = clamp(quantity, asset.Amount)
	return nil
}

// Select pledges the full holding amount. Selecting an already selected
// asset leaves its quantity unchanged.
func (s *Selector) Select(id string) error {
	asset, ok := s.lookup(id)
	if !ok {
		return ErrUnknownAsset
	}
	if _, selected := s.pledged[id]; !selected {
		s.pledged[id] = asset.Amount
	}
	return nil
}

// Deselect removes the asset from the selection. No-op when absent.
func (s *Selector) Deselect(id string) {
	delete(s.pledged, id)
}

// SetAmount pledges amount of the asset, clamped to [0, holding amount].
func (s *Selector) SetAmount(id string, amount float64) error {
	asset, ok := s.lookup(id)
	if !ok {
		return ErrUnknownAsset
	}
	if _, selected := s.pledged[id]; !selected {
		return ErrNotSelected
	}
	s.pledged[id] = clamp(amount, asset.Amount)
	return nil
}

// SetPercentage pledges percent of the holding amount.
func (s *Selector) SetPercentage(id string, percent float64) error {
	asset, ok := s.lookup(id)
	if !ok {
		return ErrUnknownAsset
	}
	return s.SetAmount(id, asset.Amount*percent/100)
}

// SelectAll toggles the given set: when every id is already selected they
// are all deselected, otherwise each unselected id is selected at its full
// amount. Ids not in the catalog are ignored.
func (s *Selector) SelectAll(ids []string) {
	known := s.known(ids)
	if s.allSelected(known) {
		s.DeselectAll(known)
		return
	}
	for _, id := range known {
		_ = s.Select(id)
	}
}

// DeselectAll removes every given id from the selection.
func (s *Selector) DeselectAll(ids []string) {
	for _, id := range ids {
		s.Deselect(id)
	}
}

// Clear empties the selection.
func (s *Selector) Clear() {
	clear(s.pledged)
}

func (s *Selector) known(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

func (s *Selector) allSelected(ids []string) bool {
	for _, id := range ids {
		if !s.IsSelected(id) {
			return false
		}
	}
	return true
}

// IsSelected reports whether id is currently pledged.
func (s *Selector) IsSelected(id string) bool {
	_, ok := s.pledged[id]
	return ok
}

// Quantity returns the pledged quantity for id.
func (s *Selector) Quantity(id string) (float64, bool) {
	q, ok := s.pledged[id]
	return q, ok
}

// Len returns the number of selected assets.
func (s *Selector) Len() int {
	return len(s.pledged)
}

// Entries returns the selected assets in catalog order.
func (s *Selector) Entries() []Entry {
	entries := make([]Entry, 0, len(s.pledged))
	for _, a := range s.assets {
		if q, ok := s.pledged[a.ID]; ok {
			entries = append(entries, Entry{Asset: a, Quantity: q})
		}
	}
	return entries
}

// TotalValue returns Σ pledged quantity × price over the selection.
func (s *Selector) TotalValue() float64 {
	var total float64
	for _, e := range s.Entries() {
		total += e.Value()
	}
	return total
}

func clamp(amount, limit float64) float64 {
	if math.IsNaN(amount) || amount < 0 {
		return 0
	}
	return math.Min(amount, limit)
}
