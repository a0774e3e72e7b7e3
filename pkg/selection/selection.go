// Package selection tracks which schedule row is currently being inspected so
// that several views (table, breakdown, chart) can follow the same row.
//
// A Selection is owned by whoever renders a session and is passed to the views
// that need it; there is no package-level instance.
package selection

import (
	"sync"

	"github.com/iwvelando/mortgage-schedule/pkg/loans"
)

// Listener is notified with the newly selected row.
type Listener func(row loans.AmortizationRow)

// Selection holds the inspected row. The zero value is ready to use and holds
// an empty row.
type Selection struct {
	mu        sync.RWMutex
	row       loans.AmortizationRow
	listeners []Listener
}

// New returns an empty selection.
func New() *Selection {
	return &Selection{}
}

// Current returns the selected row, or an empty row (Month 0) when nothing is
// selected.
func (s *Selection) Current() loans.AmortizationRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.row
}

// Selected reports whether a row is selected.
func (s *Selection) Selected() bool {
	return s.Current().Month > 0
}

// Set selects row and notifies listeners.
func (s *Selection) Set(row loans.AmortizationRow) {
	s.mu.Lock()
	s.row = row
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(row)
	}
}

// Reset clears the selection and notifies listeners with the empty row.
func (s *Selection) Reset() {
	s.Set(loans.AmortizationRow{})
}

// SelectMonth selects the row for month in result. It returns false and
// leaves the selection untouched when the month is not in the schedule.
func (s *Selection) SelectMonth(result loans.LoanComputationResult, month int) bool {
	if month < 1 || month > len(result.Schedule) {
		return false
	}
	s.Set(result.Schedule[month-1])
	return true
}

// SyncWith points the selection at the first row of a freshly computed
// result, or clears it when the schedule is empty.
func (s *Selection) SyncWith(result loans.LoanComputationResult) {
	if len(result.Schedule) == 0 {
		s.Reset()
		return
	}
	s.Set(result.Schedule[0])
}

// Subscribe registers a listener called after every change.
func (s *Selection) Subscribe(listener Listener) {
	if listener == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}
