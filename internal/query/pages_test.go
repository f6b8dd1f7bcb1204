package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, size, want int
	}{
		{0, 9, 0}, {1, 9, 1}, {9, 9, 1}, {10, 9, 2}, {18, 9, 2}, {19, 9, 3}, {5, 0, 0},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.size); got != tc.want {
			t.Fatalf("TotalPages(%d,%d)=%d want=%d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestPageNumbers(t *testing.T) {
	const e = Ellipsis
	cases := []struct {
		name           string
		current, total int
		want           []int
	}{
		{"none", 1, 0, nil},
		{"few", 2, 5, []int{1, 2, 3, 4, 5}},
		{"start", 1, 10, []int{1, 2, 3, 4, e, 10}},
		{"start edge", 3, 10, []int{1, 2, 3, 4, e, 10}},
		{"middle", 5, 10, []int{1, e, 4, 5, 6, e, 10}},
		{"end edge", 8, 10, []int{1, e, 7, 8, 9, 10}},
		{"end", 10, 10, []int{1, e, 7, 8, 9, 10}},
		{"six pages middle", 4, 6, []int{1, e, 3, 4, 5, 6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, PageNumbers(tc.current, tc.total)); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}
