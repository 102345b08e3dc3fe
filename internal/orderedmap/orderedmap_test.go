package orderedmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapSet(t *testing.T) {
	m := New[string, string]()
	require.NoError(t, m.Set("a", "1"))
	require.NoError(t, m.Set("b", "2"))
	require.Equal(t, 2, m.Len())

	err := m.Set("a", "3")
	require.ErrorIs(t, err, ErrDuplicateEntry)
	require.Equal(t, 2, m.Len(), "rejected set should not grow the map")

	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, "1", v, "rejected set should not overwrite")
	_, ok = m.Get("c")
	require.False(t, ok)
}

func TestMapRangeOrder(t *testing.T) {
	m := New[string, int]()
	keys := []string{"z", "a", "m", "b"}
	for i, k := range keys {
		require.NoError(t, m.Set(k, i))
	}

	var got []string
	for k, v := range m.Range() {
		require.Equal(t, v, len(got), "values should come back in insertion order")
		got = append(got, k)
	}
	require.Equal(t, keys, got, "keys should come back in insertion order")
}

func TestMapReset(t *testing.T) {
	m := New[string, string]()
	require.NoError(t, m.Set("a", "1"))
	m.Reset()

	require.Equal(t, 0, m.Len())
	_, ok := m.Get("a")
	require.False(t, ok)
	require.NoError(t, m.Set("a", "2"), "reset should make keys reusable")
	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, "2", v)
}
