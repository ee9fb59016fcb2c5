// Package paginate slices ordered result sets into fixed-size pages.
package paginate

import (
	"strconv"
	"strings"
)

// Page is one slice of a larger result set.
type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Count    int
	PerPage  int
}

// NumPagesFor returns how many pages count items need. An empty set still
// has one page.
func NumPagesFor(count, perPage int) int {
	if perPage <= 0 || count <= 0 {
		return 1
	}
	return (count + perPage - 1) / perPage
}

// Number parses a requested page number and clamps it to [1, last page].
// Values that are not integers resolve to the first page.
func Number(raw string, count, perPage int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if last := NumPagesFor(count, perPage); n > last {
		return last
	}
	return n
}

// Offset is the zero-based index of the first item on page number.
func Offset(number, perPage int) int {
	if number < 1 {
		return 0
	}
	return (number - 1) * perPage
}

// HasPrevious reports whether a page precedes this one.
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool { return p.Number < p.NumPages }

// HasOtherPages reports whether the set spans more than one page.
func (p Page[T]) HasOtherPages() bool { return p.NumPages > 1 }

func (p Page[T]) PreviousNumber() int { return p.Number - 1 }

func (p Page[T]) NextNumber() int { return p.Number + 1 }

// StartIndex is the 1-based index of the first item on the page, or 0 when
// the page is empty.
func (p Page[T]) StartIndex() int {
	if p.Count == 0 {
		return 0
	}
	return Offset(p.Number, p.PerPage) + 1
}

// EndIndex is the 1-based index of the last item on the page.
func (p Page[T]) EndIndex() int {
	if p.Count == 0 {
		return 0
	}
	return Offset(p.Number, p.PerPage) + len(p.Items)
}
