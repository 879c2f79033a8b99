package fselect

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/vqcluster/codec"
)

// Entry is the evaluation of one feature subset.
type Entry struct {
	Features []uint32 `json:"features"`
	Objectives
}

// Report collects the evaluations of a batch of feature subsets.
type Report struct {
	Config  Config  `json:"config"`
	Entries []Entry `json:"entries"`
	// Front holds the indexes of the Pareto-optimal entries.
	Front []int `json:"pareto_front"`
}

// Report builds a Report from masks and their objectives, as returned by
// EvaluateAll.
func (e *Evaluator) Report(masks []*roaring.Bitmap, objs []Objectives) (*Report, error) {
	if len(masks) != len(objs) {
		return nil, fmt.Errorf("got %d masks but %d objectives", len(masks), len(objs))
	}

	entries := make([]Entry, len(masks))
	for i, mask := range masks {
		features := []uint32{}
		if mask != nil {
			features = mask.ToArray()
		}
		entries[i] = Entry{Features: features, Objectives: objs[i]}
	}

	return &Report{
		Config:  e.cfg,
		Entries: entries,
		Front:   e.ParetoFront(objs),
	}, nil
}

// Encode serializes the report with c, or with codec.Default if c is nil.
func (r *Report) Encode(c codec.Codec) ([]byte, error) {
	return codec.OrDefault(c).Marshal(r)
}

// DecodeReport deserializes a report encoded with c, or with codec.Default
// if c is nil.
func DecodeReport(data []byte, c codec.Codec) (*Report, error) {
	var r Report
	if err := codec.OrDefault(c).Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
