package layout

// Category is a named seat classification carrying the default color and
// price a seat inherits at assignment time. Categories are read-only from
// the editor's point of view; changing a category later never rewrites the
// seats that already copied its values.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"` // hex
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// Registry is a small, fixed, in-memory set of categories, looked up by id
// and listed in insertion order.
type Registry struct {
	order []Category
	byID  map[string]Category
}

// NewRegistry builds a registry from the given categories. Later duplicates
// of an id override earlier ones in lookups but keep the original position.
func NewRegistry(cats ...Category) *Registry {
	r := &Registry{byID: make(map[string]Category, len(cats))}
	for _, c := range cats {
		if _, seen := r.byID[c.ID]; !seen {
			r.order = append(r.order, c)
		}
		r.byID[c.ID] = c
	}
	return r
}

// DefaultRegistry returns the category set a venue starts with before the
// surrounding application loads its own.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Category{ID: "standard", Name: "Standard", Color: "#4caf50", Price: 25, Description: "Regular seating"},
		Category{ID: "premium", Name: "Premium", Color: "#2196f3", Price: 45, Description: "Extra legroom"},
		Category{ID: "vip", Name: "VIP", Color: "#e91e63", Price: 80, Description: "Front rows"},
		Category{ID: "accessible", Name: "Accessible", Color: "#ff9800", Price: 25, Description: "Wheelchair accessible"},
	)
}

// Get looks a category up by id.
func (r *Registry) Get(id string) (Category, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// All returns the categories in insertion order. The returned slice is a
// copy; callers may not mutate the registry through it.
func (r *Registry) All() []Category {
	out := make([]Category, len(r.order))
	copy(out, r.order)
	return out
}

// First returns the first registered category. It is the fallback active
// category for a fresh editor.
func (r *Registry) First() (Category, bool) {
	if len(r.order) == 0 {
		return Category{}, false
	}
	return r.order[0], true
}
