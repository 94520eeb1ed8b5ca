package track

import "fmt"

// Looped reports whether the section list ends with a loop-closing marker:
// a final section (of at least two) starting at index 0.
func Looped(sections []Section) bool {
	n := len(sections)
	return n > 1 && sections[n-1].Start == 0
}

// NormalizeSections validates section order against a path of totalPoints
// points and returns a prepared copy; the input is never modified.
//
// Starts must be non-decreasing, except for a loop-closing final marker.
// A zero-start section with default options is prepended when the first
// section starts later than index 0. An empty list yields a single
// default section.
func NormalizeSections(sections []Section, totalPoints int) ([]Section, error) {
	if len(sections) == 0 {
		return []Section{{Start: 0}}, nil
	}

	limit := len(sections)
	if Looped(sections) {
		limit--
	}
	for i := 0; i < limit; i++ {
		s := sections[i].Start
		if s < 0 || s > totalPoints {
			return nil, fmt.Errorf("%w: section %d starts at %d, track has %d points", ErrSectionRange, i, s, totalPoints)
		}
		if i > 0 && sections[i-1].Start > s {
			err := &SectionOrderError{Index: i, PrevStart: sections[i-1].Start, Start: s}
			Logf("%v", err)
			return nil, err
		}
	}

	out := make([]Section, 0, len(sections)+1)
	if sections[0].Start > 0 {
		out = append(out, Section{Start: 0})
	}
	return append(out, sections...), nil
}

// Spans resolves the rail range of every section in a normalized list.
//
// A section ends where the next one starts. The last section, and a
// section followed by the loop-closing marker, run to the end of the path
// so the final rail wraps back to point 0. The loop marker itself covers
// no rails; it only supplies the options reached at the end of the path.
// A section with no rails (two markers at the same index) is returned
// with Start == End.
func Spans(sections []Section, totalPoints int) []Span {
	looped := Looped(sections)
	n := len(sections)
	if looped {
		n--
	}

	spans := make([]Span, 0, n)
	for i := 0; i < n; i++ {
		cur := sections[i]
		span := Span{Section: i, Start: cur.Start, End: totalPoints, From: cur.Options, To: cur.Options}
		if i+1 < len(sections) {
			next := sections[i+1]
			span.To = next.Options
			if !looped || i+1 < len(sections)-1 {
				span.End = next.Start
			}
		}
		spans = append(spans, span)
	}
	return spans
}
