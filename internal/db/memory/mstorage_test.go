package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testValue struct {
	Name string
	N    int
}

func TestMStorage_SetGet(t *testing.T) {
	s := NewMemStorage()

	val := testValue{Name: "first", N: 1}
	require.NoError(t, Set("a", &val, s))

	got, err := Get[testValue]("a", s)
	require.NoError(t, err)
	assert.Equal(t, val, *got)

	assert.Equal(t, 1, s.Len())
	assert.True(t, s.IsExist("a"))
	assert.False(t, s.IsExist("b"))
}

func TestMStorage_SetDuplicate(t *testing.T) {
	s := NewMemStorage()

	val := testValue{Name: "first"}
	require.NoError(t, Set("a", &val, s))

	other := testValue{Name: "second"}
	err := Set("a", &other, s)
	require.ErrorIs(t, err, ErrDuplicateKey)

	// Исходное значение не затерто.
	got, getErr := Get[testValue]("a", s)
	require.NoError(t, getErr)
	assert.Equal(t, "first", got.Name)
}

func TestMStorage_GetMissing(t *testing.T) {
	s := NewMemStorage()

	_, err := Get[testValue]("missing", s)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMStorage_Replace(t *testing.T) {
	s := NewMemStorage()

	val := testValue{Name: "first"}
	require.ErrorIs(t, Replace("a", &val, s), ErrNotFound)

	require.NoError(t, Set("a", &val, s))

	updated := testValue{Name: "second", N: 2}
	require.NoError(t, Replace("a", &updated, s))

	got, err := Get[testValue]("a", s)
	require.NoError(t, err)
	assert.Equal(t, updated, *got)
	assert.Equal(t, 1, s.Len())
}
