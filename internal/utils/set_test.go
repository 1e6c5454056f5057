package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundedSetAdd(t *testing.T) {
	s := NewBoundedSet[int64](3)

	assert.True(t, s.Add(1))
	assert.False(t, s.Add(1), "duplicate insert reports already present")
	assert.True(t, s.Add(2))
	assert.True(t, s.Has(1))
	assert.Equal(t, 2, s.Len())
}

func TestBoundedSetEvictsOldest(t *testing.T) {
	s := NewBoundedSet[int64](3)
	s.Add(1)
	s.Add(2)
	s.Add(3)
	s.Add(4)

	assert.False(t, s.Has(1), "oldest key evicted at capacity")
	assert.True(t, s.Has(2))
	assert.True(t, s.Has(4))
	assert.Equal(t, 3, s.Len())

	// an evicted key may be inserted again
	assert.True(t, s.Add(1))
}

func TestBoundedSetDefaultCapacity(t *testing.T) {
	s := NewBoundedSet[string](0)
	for i := 0; i < 200; i++ {
		s.Add(string(rune('a' + i%26)))
	}
	assert.LessOrEqual(t, s.Len(), 128)
}
