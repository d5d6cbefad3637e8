package catalog

// Products is an ordered collection of products, as returned by the search
// operations.
type Products []*Product

// FilterByPrice keeps the products whose price lies inside [min, max]. A nil
// bound leaves that side open; both bounds are inclusive.
func (ps Products) FilterByPrice(min, max *float64) Products {
	out := make(Products, 0, len(ps))
	for _, p := range ps {
		if min != nil && p.price < *min {
			continue
		}
		if max != nil && p.price > *max {
			continue
		}
		out = append(out, p)
	}
	return out
}

// IDs returns the product ids in collection order.
func (ps Products) IDs() []int64 {
	ids := make([]int64, len(ps))
	for i, p := range ps {
		ids[i] = p.id
	}
	return ids
}
