package config

import "slices"

// Dashboard is a saved change query bound to a key.
type Dashboard struct {
	Name    string   `json:"name" yaml:"name"`
	Query   string   `json:"query" yaml:"query"`
	SortBy  []string `json:"sort_by,omitempty" yaml:"sort-by,omitempty"`
	Reverse bool     `json:"reverse" yaml:"reverse"`
	Key     string   `json:"key" yaml:"key"`
}

// Approval is one label vote applied by a review key.
type Approval struct {
	Category string `json:"category" yaml:"category"`
	Value    int    `json:"value" yaml:"value"`
}

// ReviewKey applies a set of votes, and optionally submits, with one key.
type ReviewKey struct {
	Approvals []Approval `json:"approvals" yaml:"approvals"`
	Message   string     `json:"message,omitempty" yaml:"message,omitempty"`
	Submit    bool       `json:"submit" yaml:"submit"`
	Key       string     `json:"key" yaml:"key"`
}

// ChangeListOptions is the initial ordering of change lists.
type ChangeListOptions struct {
	SortBy  []string `json:"sort_by" yaml:"sort-by" validate:"min=1,dive,oneof=number updated last-seen project"`
	Reverse bool     `json:"reverse" yaml:"reverse"`
}

// Size column types.
const (
	SizeGraph      = "graph"
	SizeSplitGraph = "split-graph"
	SizeNumber     = "number"
	SizeDisabled   = "disabled"
)

// SizeColumn configures how change size is displayed.
type SizeColumn struct {
	Type       string `json:"type" yaml:"type" validate:"oneof=graph split-graph number disabled"`
	Thresholds []int  `json:"thresholds" yaml:"thresholds" validate:"min=1"`
}

func (d Dashboard) clone() Dashboard {
	d.SortBy = slices.Clone(d.SortBy)
	return d
}

func (k ReviewKey) clone() ReviewKey {
	k.Approvals = slices.Clone(k.Approvals)
	return k
}
