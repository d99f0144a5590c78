package ink

import "encoding/json"

// EraserTag is the reserved color value that marks an erase stroke in the
// persisted representation. In memory strokes are discriminated by Kind;
// the tag exists only at the storage boundary and must never collide with
// a Palette entry.
const EraserTag = "eraser"

// pathRecord is the persisted form of one stroke:
// {points: [{x,y}...], color: string, width: number}.
type pathRecord struct {
	Points []Point `json:"points"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
}

// MarshalSet encodes a Set for embedding in the owning block's record.
// An empty or nil set encodes as an empty JSON array.
func MarshalSet(s Set) ([]byte, error) {
	records := make([]pathRecord, 0, len(s))
	for _, st := range s {
		rec := pathRecord{
			Points: st.Points,
			Color:  st.Color,
			Width:  st.Width,
		}
		if st.Kind == KindErase {
			rec.Color = EraserTag
		}
		records = append(records, rec)
	}
	return json.Marshal(records)
}

// UnmarshalSet decodes a persisted annotation set. Empty input yields an
// empty set. Records with fewer than 2 points are visually inert and are
// dropped rather than loaded.
func UnmarshalSet(data []byte) (Set, error) {
	if len(data) == 0 {
		return Set{}, nil
	}
	var records []pathRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	set := make(Set, 0, len(records))
	for _, rec := range records {
		if len(rec.Points) < 2 {
			continue
		}
		st := Stroke{
			Kind:   KindPaint,
			Color:  rec.Color,
			Width:  rec.Width,
			Points: rec.Points,
		}
		if rec.Color == EraserTag {
			st.Kind = KindErase
			st.Color = ""
		}
		set = append(set, st)
	}
	return set, nil
}
