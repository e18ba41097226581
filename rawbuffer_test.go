package dbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawBufferPairGet(t *testing.T) {
	p := NewRawBufferPair(10, 20)

	w, r := p.Get(false)
	assert.Equal(t, 10, *w)
	assert.Equal(t, 20, *r)

	w, r = p.Get(true)
	assert.Equal(t, 20, *w)
	assert.Equal(t, 10, *r)
}

func TestRawBufferPairDisjointAddresses(t *testing.T) {
	p := NewRawBufferPair(1, 2)
	a, b := p.Get(false)
	assert.NotSame(t, a, b)

	*a = 99
	_, r := p.Get(true)
	assert.Equal(t, 99, *r, "mutating through the writer-side pointer must be visible through a fresh Get call")
}
