package stream

import "strings"

// DefaultMarker is the in-band control token the model emits when it has
// gathered enough information to draft an outline. It must never reach the
// client.
const DefaultMarker = "[READY_FOR_DRAFT]"

// MarkerFilter strips a control marker from a fragmented token stream. The
// marker may arrive split across any number of fragments, so the filter holds
// back up to len(marker)-1 trailing bytes that could still turn into a marker
// and releases them as soon as they are disambiguated.
type MarkerFilter struct {
	marker  string
	pending string
	text    strings.Builder
	seen    bool
}

// NewMarkerFilter creates a filter for the given marker. An empty marker
// disables filtering: every fragment passes through untouched.
func NewMarkerFilter(marker string) *MarkerFilter {
	return &MarkerFilter{marker: marker}
}

// Feed consumes one stream fragment and returns the text that is safe to
// forward now. Marker occurrences are removed; bytes that could still be the
// start of a marker stay buffered until a later Feed or Flush decides.
func (x *MarkerFilter) Feed(fragment string) string {
	if x.marker == "" {
		x.text.WriteString(fragment)
		return fragment
	}

	s := x.pending + fragment
	if strings.Contains(s, x.marker) {
		x.seen = true
		s = strings.ReplaceAll(s, x.marker, "")
	}

	hold := x.overlap(s)
	out := s[:len(s)-hold]
	x.pending = s[len(s)-hold:]
	x.text.WriteString(out)
	return out
}

// overlap returns the length of the longest suffix of s that is a proper
// prefix of the marker.
func (x *MarkerFilter) overlap(s string) int {
	max := len(x.marker) - 1
	if len(s) < max {
		max = len(s)
	}
	for k := max; k > 0; k-- {
		if s[len(s)-k:] == x.marker[:k] {
			return k
		}
	}
	return 0
}

// Flush releases whatever is still buffered. The stream ended, so a partial
// marker prefix at the tail is ordinary text after all.
func (x *MarkerFilter) Flush() string {
	out := x.pending
	x.pending = ""
	x.text.WriteString(out)
	return out
}

// Seen reports whether the marker occurred anywhere in the stream so far
func (x *MarkerFilter) Seen() bool {
	return x.seen
}

// Text returns all filtered text released so far, including flushed bytes
func (x *MarkerFilter) Text() string {
	return x.text.String()
}
