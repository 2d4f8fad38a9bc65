package faq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisclosureDefaultsClosed(t *testing.T) {
	d := NewDisclosure(3)
	assert.Equal(t, map[int]bool{0: false, 1: false, 2: false}, d.Snapshot())
}

func TestToggleFlipsOnlyTarget(t *testing.T) {
	d := NewDisclosure(3)
	assert.True(t, d.Toggle(1))
	assert.Equal(t, map[int]bool{0: false, 1: true, 2: false}, d.Snapshot())
}

func TestToggleTwiceRestores(t *testing.T) {
	d := NewDisclosure(4)
	d.Toggle(2)
	before := d.Snapshot()
	d.Toggle(0)
	d.Toggle(0)
	assert.Equal(t, before, d.Snapshot())
	assert.False(t, d.IsOpen(0))
}

func TestMultipleOpen(t *testing.T) {
	d := NewDisclosure(3)
	d.Toggle(0)
	d.Toggle(2)
	assert.True(t, d.IsOpen(0))
	assert.False(t, d.IsOpen(1))
	assert.True(t, d.IsOpen(2))
}
