package frozen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictHelpers(t *testing.T) {
	d := NewDict[string, int]()
	var m Mapping[string, int] = d

	require.NoError(t, Assign(m, "a", 1))
	require.NoError(t, Assign(m, "b", 2))
	require.NoError(t, Assign(m, "c", 3))
	assert.Equal(t, []string{"a", "b", "c"}, d.Keys())

	v, err := SetDefault(m, "a", 100)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = SetDefault(m, "d", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	v, err = Pop(m, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = Pop(m, "b")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	k, v, err := PopItem(m)
	require.NoError(t, err)
	assert.Equal(t, "d", k)
	assert.Equal(t, 4, v)

	require.NoError(t, Delete(m, "c"))
	assert.ErrorIs(t, Delete(m, "c"), ErrKeyNotFound)

	require.NoError(t, Update(m, Mapping[string, int](New(P("x", 9), P("a", 7)))))
	assert.Equal(t, []string{"a", "x"}, d.Keys())
	got, _ := d.Get("a")
	assert.Equal(t, 7, got)
}

func TestDictPopItemEmpty(t *testing.T) {
	_, _, err := PopItem(Mapping[string, int](NewDict[string, int]()))
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestDictZeroValueUsable(t *testing.T) {
	var d Dict[string, string]
	d.Set("k", "v")
	assert.True(t, d.Has("k"))
	assert.Equal(t, 1, d.Len())
}

func TestDictFreezeSnapshots(t *testing.T) {
	d := NewDict[string, string]()
	d.Set("kegg", "C00031")
	frozen := d.Freeze()

	d.Set("kegg", "changed")
	d.Set("chebi", "CHEBI:4167")

	v, _ := frozen.Get("kegg")
	assert.Equal(t, "C00031", v)
	assert.Equal(t, 1, frozen.Len())
}

func TestUnsupportedOnNil(t *testing.T) {
	err := Assign[string, int](nil, "a", 1)
	var ue *UnsupportedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "<nil>", ue.Type)
}
