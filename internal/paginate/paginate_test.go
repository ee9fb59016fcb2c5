package paginate

import "testing"

func TestNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		raw   string
		count int
		want  int
	}{
		{name: "empty", raw: "", count: 25, want: 1},
		{name: "not a number", raw: "abc", count: 25, want: 1},
		{name: "zero", raw: "0", count: 25, want: 1},
		{name: "negative", raw: "-3", count: 25, want: 1},
		{name: "middle", raw: "2", count: 25, want: 2},
		{name: "last", raw: "3", count: 25, want: 3},
		{name: "past last", raw: "99", count: 25, want: 3},
		{name: "no rows", raw: "5", count: 0, want: 1},
		{name: "spaces", raw: " 2 ", count: 25, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Number(tt.raw, tt.count, 10); got != tt.want {
				t.Fatalf("Number(%q, %d) = %d, want %d", tt.raw, tt.count, got, tt.want)
			}
		})
	}
}

func TestNumPagesFor(t *testing.T) {
	t.Parallel()

	cases := map[int]int{0: 1, 1: 1, 10: 1, 11: 2, 20: 2, 21: 3}
	for count, want := range cases {
		if got := NumPagesFor(count, 10); got != want {
			t.Fatalf("NumPagesFor(%d) = %d, want %d", count, got, want)
		}
	}
}

func TestPageNavigation(t *testing.T) {
	t.Parallel()

	p := Page[int]{Items: []int{1, 2, 3, 4, 5}, Number: 3, NumPages: 3, Count: 25, PerPage: 10}
	if !p.HasPrevious() || p.HasNext() {
		t.Fatalf("last page: HasPrevious=%v HasNext=%v", p.HasPrevious(), p.HasNext())
	}
	if p.PreviousNumber() != 2 {
		t.Fatalf("PreviousNumber = %d, want 2", p.PreviousNumber())
	}
	if p.StartIndex() != 21 || p.EndIndex() != 25 {
		t.Fatalf("indexes = %d..%d, want 21..25", p.StartIndex(), p.EndIndex())
	}

	empty := Page[int]{Number: 1, NumPages: 1, PerPage: 10}
	if empty.HasOtherPages() || empty.StartIndex() != 0 || empty.EndIndex() != 0 {
		t.Fatalf("empty page = %+v", empty)
	}
}
