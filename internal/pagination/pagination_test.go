package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		pageSize  int
		requested int
		expected  Window
	}{
		{
			name: "first of two pages", total: 15, pageSize: 10, requested: 1,
			expected: Window{Start: 0, End: 10, Number: 1, TotalPages: 2, HasNext: true},
		},
		{
			name: "last partial page", total: 15, pageSize: 10, requested: 2,
			expected: Window{Start: 10, End: 15, Number: 2, TotalPages: 2, HasPrevious: true},
		},
		{
			name: "beyond last page clamps", total: 15, pageSize: 10, requested: 99,
			expected: Window{Start: 10, End: 15, Number: 2, TotalPages: 2, HasPrevious: true},
		},
		{
			name: "zero clamps to first", total: 15, pageSize: 10, requested: 0,
			expected: Window{Start: 0, End: 10, Number: 1, TotalPages: 2, HasNext: true},
		},
		{
			name: "negative clamps to first", total: 15, pageSize: 10, requested: -3,
			expected: Window{Start: 0, End: 10, Number: 1, TotalPages: 2, HasNext: true},
		},
		{
			name: "empty sequence has one page", total: 0, pageSize: 10, requested: 4,
			expected: Window{Start: 0, End: 0, Number: 1, TotalPages: 1},
		},
		{
			name: "exact multiple", total: 20, pageSize: 10, requested: 2,
			expected: Window{Start: 10, End: 20, Number: 2, TotalPages: 2, HasPrevious: true},
		},
		{
			name: "invalid page size falls back to default", total: 11, pageSize: 0, requested: 2,
			expected: Window{Start: 10, End: 11, Number: 2, TotalPages: 2, HasPrevious: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Paginate(tt.total, tt.pageSize, tt.requested))
		})
	}
}

func TestPaginateTotalPagesProperty(t *testing.T) {
	for total := 0; total <= 45; total++ {
		for _, size := range []int{1, 3, 10} {
			w := Paginate(total, size, 1000)
			expected := (total + size - 1) / size
			if expected < 1 {
				expected = 1
			}
			assert.Equal(t, expected, w.TotalPages)
			assert.Equal(t, w.TotalPages, w.Number)
			assert.LessOrEqual(t, w.Limit(), size)
			assert.False(t, w.HasNext)
		}
	}
}

func TestParsePage(t *testing.T) {
	tests := map[string]int{
		"":     1,
		"1":    1,
		"7":    7,
		" 3 ":  3,
		"0":    1,
		"-2":   1,
		"abc":  1,
		"2.5":  1,
		"last": 1,
	}

	for raw, expected := range tests {
		assert.Equal(t, expected, ParsePage(raw), "raw=%q", raw)
	}
}
