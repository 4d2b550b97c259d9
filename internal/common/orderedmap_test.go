package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedMap_SetKeepsPosition(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	m.Set("a", 10)

	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
	assert.Equal(t, []int{10, 2, 3}, m.Values())

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestOrderedMap_Delete(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	assert.True(t, m.Delete("a"))
	assert.False(t, m.Delete("a"))
	assert.Equal(t, []string{"b"}, m.Keys())
	assert.Equal(t, 1, m.Len())

	m.Set("a", 3)
	assert.Equal(t, []string{"b", "a"}, m.Keys())
}

func TestSet(t *testing.T) {
	s := NewSet("x", "y")

	assert.False(t, s.Add("x"))
	assert.True(t, s.Add("z"))
	assert.True(t, s.Contains("y"))
	assert.False(t, s.Contains("w"))
	assert.Equal(t, []string{"x", "y", "z"}, s.Items())
	assert.Equal(t, 3, s.Len())
}

func TestSliceHelpers(t *testing.T) {
	assert.True(t, IsEmpty([]string{}))
	assert.True(t, IsSingle([]string{"a"}))
	assert.False(t, IsSingle([]string{"a", "b"}))
}
