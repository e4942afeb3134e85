package service

import "sync"

// BudgetStore holds per-user category budgets in memory only. Budgets
// are deliberately never persisted: they live for the lifetime of the
// process and a restart discards them all, matching the session-local
// budget behavior of the dashboard.
type BudgetStore struct {
	mu      sync.RWMutex
	budgets map[uint]map[string]float64
}

// NewBudgetStore creates an empty store.
func NewBudgetStore() *BudgetStore {
	return &BudgetStore{
		budgets: make(map[uint]map[string]float64),
	}
}

// Set records a budget limit for one of the user's categories. A
// non-positive limit clears the entry.
func (s *BudgetStore) Set(userID uint, category string, limit float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.budgets[userID]
	if !ok {
		if limit <= 0 {
			return
		}
		m = make(map[string]float64)
		s.budgets[userID] = m
	}
	if limit <= 0 {
		delete(m, category)
		if len(m) == 0 {
			delete(s.budgets, userID)
		}
		return
	}
	m[category] = limit
}

// Get returns a copy of the user's budgets.
func (s *BudgetStore) Get(userID uint) map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]float64, len(s.budgets[userID]))
	for category, limit := range s.budgets[userID] {
		out[category] = limit
	}
	return out
}
