package multiset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertAndGet(t *testing.T) {
	m := New[string]()
	require.EqualValues(t, 0, m.Get("a"))
	require.EqualValues(t, 1, m.Insert("a"))
	require.EqualValues(t, 2, m.Insert("a"))
	require.EqualValues(t, 2, m.Get("a"))
}

func TestIsSupersetAndDifference(t *testing.T) {
	a := New[string]()
	a.Insert("x")
	a.Insert("x")
	a.Insert("y")

	b := New[string]()
	b.Insert("x")

	require.True(t, a.IsSuperset(b))
	require.False(t, b.IsSuperset(a))

	diff := a.Difference(b)
	require.Len(t, diff, 2)
	counts := make(map[string]uint32, len(diff))
	for _, d := range diff {
		counts[d.Key] = d.Count
	}
	require.Equal(t, map[string]uint32{"x": 1, "y": 1}, counts)
}

func TestDifferencePanicsWhenNotSuperset(t *testing.T) {
	a := New[string]()
	b := New[string]()
	b.Insert("z")
	require.Panics(t, func() {
		a.Difference(b)
	})
}
