package faq

// Disclosure tracks which FAQ entries are expanded. Entries are independent:
// any number may be open at once. Not safe for concurrent use.
type Disclosure struct {
	size int
	open map[int]bool
}

// NewDisclosure creates a map for size questions, all closed.
func NewDisclosure(size int) *Disclosure {
	return &Disclosure{size: size, open: make(map[int]bool)}
}

// Toggle flips entry i and returns its new value.
func (d *Disclosure) Toggle(i int) bool {
	d.open[i] = !d.open[i]
	return d.open[i]
}

func (d *Disclosure) IsOpen(i int) bool {
	return d.open[i]
}

// Snapshot returns the open flag of every question index, including any index
// toggled outside the catalog range.
func (d *Disclosure) Snapshot() map[int]bool {
	out := make(map[int]bool, d.size)
	for i := 0; i < d.size; i++ {
		out[i] = false
	}
	for i, v := range d.open {
		out[i] = v
	}
	return out
}
