package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValue(t *testing.T) {
	v, err := StringList{"a", "b"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)

	// nil encodes as an empty array, matching the column default.
	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)
}

func TestStringListScan(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(`["x","y"]`))
	assert.Equal(t, StringList{"x", "y"}, l)

	require.NoError(t, l.Scan([]byte(`[]`)))
	assert.Equal(t, StringList{}, l)

	require.NoError(t, l.Scan(nil))
	assert.Equal(t, StringList{}, l)
}

func TestStringListScanRejectsGarbage(t *testing.T) {
	var l StringList

	// Python-repr lists from the old implementation are not tolerated.
	assert.Error(t, l.Scan(`['a', 'b']`))
	assert.Error(t, l.Scan(`{"not":"a list"}`))
	assert.Error(t, l.Scan(`[1,2,3]`))
	assert.Error(t, l.Scan(42))
}
