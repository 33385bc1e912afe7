package words

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Entry is a single weighted label.
type Entry struct {
	Label  string
	Weight int
}

// MarshalJSON encodes the entry as a [label, weight] pair.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Label, e.Weight})
}

// UnmarshalJSON decodes a [label, weight] pair.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("entry must have 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Label); err != nil {
		return fmt.Errorf("entry label: %w", err)
	}
	if err := json.Unmarshal(pair[1], &e.Weight); err != nil {
		return fmt.Errorf("entry weight: %w", err)
	}
	if e.Weight < 0 {
		return fmt.Errorf("entry weight must be non-negative, got %d", e.Weight)
	}
	return nil
}

// Visible reports whether the entry takes part in layout.
func (e Entry) Visible() bool { return e.Weight > 0 }

// Set is an ordered collection of entries with unique labels.
type Set []Entry

// Index returns the position of label in s, or -1.
func (s Set) Index(label string) int {
	return slices.IndexFunc(s, func(e Entry) bool { return e.Label == label })
}

// Weight returns the weight stored for label and whether it exists.
func (s Set) Weight(label string) (int, bool) {
	if i := s.Index(label); i >= 0 {
		return s[i].Weight, true
	}
	return 0, false
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}

// Visible returns the entries with a positive weight, in order.
func (s Set) Visible() Set {
	out := make(Set, 0, len(s))
	for _, e := range s {
		if e.Visible() {
			out = append(out, e)
		}
	}
	return out
}

// Dedupe returns s without repeated labels. The first occurrence wins.
func (s Set) Dedupe() Set {
	seen := make(map[string]struct{}, len(s))
	out := make(Set, 0, len(s))
	for _, e := range s {
		if _, ok := seen[e.Label]; ok {
			continue
		}
		seen[e.Label] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Labels returns the labels of s in order.
func (s Set) Labels() []string {
	out := make([]string, len(s))
	for i, e := range s {
		out[i] = e.Label
	}
	return out
}

// Merge returns s extended with every label from known that s lacks, at weight 0.
// Existing weights and order are kept; missing labels are appended in known's order.
func (s Set) Merge(known []string) Set {
	out := s.Clone()
	for _, label := range known {
		if out.Index(label) < 0 {
			out = append(out, Entry{Label: label})
		}
	}
	return out
}

// Equal reports whether two sets hold the same entries in the same order.
func (s Set) Equal(other Set) bool {
	return slices.Equal(s, other)
}

// Encode serializes s as the durable JSON document.
func Encode(s Set) ([]byte, error) {
	if s == nil {
		s = Set{}
	}
	return json.Marshal(s)
}

// Decode parses a durable JSON document.
// Callers wanting a shape check without decoding should use weights.Validate.
func Decode(data []byte) (Set, error) {
	var s Set
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s, nil
}
