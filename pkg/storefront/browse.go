package storefront

import "storefront/pkg/catalog"

// SetFilter rebuilds the product view from the full catalog and returns it.
func (s *Store) SetFilter(query string, mode catalog.SortMode) []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = query
	s.sort = mode
	s.view = s.catalog.ApplyFilters(query, mode)
	return s.products()
}

// ClearFilter resets the search box and sort selector.
func (s *Store) ClearFilter() []catalog.Product {
	return s.SetFilter("", catalog.SortDefault)
}

// Products returns the current filtered view.
func (s *Store) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products()
}

// Filter returns the active query and sort mode.
func (s *Store) Filter() (string, catalog.SortMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query, s.sort
}

func (s *Store) products() []catalog.Product {
	out := make([]catalog.Product, len(s.view))
	copy(out, s.view)
	return out
}
