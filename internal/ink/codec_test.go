package ink

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalSetUsesWireShape(t *testing.T) {
	set := Set{
		{Kind: KindPaint, Color: "#22d3ee", Width: 3, Points: []Point{Pt(10, 10), Pt(10, 50), Pt(50, 50)}},
		{Kind: KindErase, Width: 4, Points: []Point{Pt(1, 2), Pt(3, 4)}},
	}

	data, err := MarshalSet(set)
	require.NoError(t, err)

	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	assert.JSONEq(t, `"#22d3ee"`, string(raw[0]["color"]))
	assert.JSONEq(t, `"eraser"`, string(raw[1]["color"]))
	assert.JSONEq(t, `[{"x":1,"y":2},{"x":3,"y":4}]`, string(raw[1]["points"]))
}

func TestMarshalSetEmpty(t *testing.T) {
	for _, set := range []Set{nil, {}} {
		data, err := MarshalSet(set)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	}
}

func TestUnmarshalSetRoundTrip(t *testing.T) {
	set := Set{
		{Kind: KindPaint, Color: "#facc15", Width: 2, Points: []Point{Pt(0, 0), Pt(5, 5)}},
		{Kind: KindErase, Width: 6, Points: []Point{Pt(7, 8), Pt(9, 10)}},
	}

	data, err := MarshalSet(set)
	require.NoError(t, err)
	got, err := UnmarshalSet(data)
	require.NoError(t, err)
	assert.Equal(t, set, got)
}

func TestUnmarshalSetEmptyInput(t *testing.T) {
	got, err := UnmarshalSet(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = UnmarshalSet([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnmarshalSetDropsInertRecords(t *testing.T) {
	data := []byte(`[
		{"points":[{"x":1,"y":1}],"color":"#22d3ee","width":3},
		{"points":[],"color":"#22d3ee","width":3},
		{"points":[{"x":1,"y":1},{"x":2,"y":2}],"color":"#22d3ee","width":3}
	]`)

	got, err := UnmarshalSet(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Points, 2)
}

func TestUnmarshalSetRejectsMalformedJSON(t *testing.T) {
	_, err := UnmarshalSet([]byte(`{not json`))
	assert.Error(t, err)
}
