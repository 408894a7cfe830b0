package printers

import (
	"encoding/json"
	"fmt"
	"io"

	"tableflip.dev/timeband/pkg/timeline"
	"tableflip.dev/timeband/pkg/window"
)

// RangeJSON is the machine-readable form of a selected range.
type RangeJSON struct {
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Granularity string `json:"granularity,omitempty"`
}

// NewRangeJSON converts r.
func NewRangeJSON(r timeline.Range) RangeJSON {
	if r.Empty() {
		return RangeJSON{}
	}
	return RangeJSON{Start: r.Start, End: r.End, Granularity: r.Granularity.String()}
}

// ItemJSON is the machine-readable form of a timeline item.
type ItemJSON struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Granularity string `json:"granularity"`
	Current     bool   `json:"current,omitempty"`
}

// NewItemJSON converts it with the given label.
func NewItemJSON(it window.Item, label string) ItemJSON {
	return ItemJSON{
		Key:         it.Key(),
		Label:       label,
		Start:       it.Date.String(),
		End:         it.End().String(),
		Granularity: it.Granularity.String(),
		Current:     it.IsCurrentPeriod,
	}
}

// JSON writes v as indented JSON followed by a newline.
func JSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
