package timerange

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeIsValid(t *testing.T) {
	tests := []struct {
		name  string
		r     Range
		valid bool
	}{
		{"обычный интервал", Range{Start: 540, End: 1020}, true},
		{"весь день", Range{Start: 0, End: MinutesPerDay}, true},
		{"пустой интервал", Range{Start: 600, End: 600}, false},
		{"перевёрнутый интервал", Range{Start: 700, End: 600}, false},
		{"отрицательное начало", Range{Start: -10, End: 60}, false},
		{"конец за пределами суток", Range{Start: 600, End: MinutesPerDay + 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.r.IsValid())
		})
	}
}

func TestRangeOverlaps(t *testing.T) {
	base := Range{Start: 600, End: 660}

	assert.True(t, base.Overlaps(Range{Start: 630, End: 690}))
	assert.True(t, base.Overlaps(Range{Start: 540, End: 630}))
	assert.True(t, base.Overlaps(Range{Start: 610, End: 650}))
	assert.True(t, base.Overlaps(Range{Start: 540, End: 720}))

	// Граничащие интервалы не пересекаются
	assert.False(t, base.Overlaps(Range{Start: 660, End: 720}))
	assert.False(t, base.Overlaps(Range{Start: 540, End: 600}))
	assert.False(t, base.Overlaps(Range{Start: 700, End: 760}))
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name    string
		open    []Range
		blocked []Range
		want    []Range
	}{
		{
			name: "без блокировок интервалы не меняются",
			open: []Range{{Start: 540, End: 1020}},
			want: []Range{{Start: 540, End: 1020}},
		},
		{
			name:    "блокировка в середине расщепляет интервал",
			open:    []Range{{Start: 540, End: 1020}},
			blocked: []Range{{Start: 720, End: 780}},
			want:    []Range{{Start: 540, End: 720}, {Start: 780, End: 1020}},
		},
		{
			name:    "блокировка по краю отрезает кусок",
			open:    []Range{{Start: 540, End: 1020}},
			blocked: []Range{{Start: 540, End: 600}},
			want:    []Range{{Start: 600, End: 1020}},
		},
		{
			name:    "полное перекрытие отбрасывает интервал",
			open:    []Range{{Start: 600, End: 660}},
			blocked: []Range{{Start: 540, End: 720}},
			want:    []Range{},
		},
		{
			name:    "перекрывающиеся блокировки складываются",
			open:    []Range{{Start: 540, End: 720}},
			blocked: []Range{{Start: 570, End: 630}, {Start: 600, End: 660}},
			want:    []Range{{Start: 540, End: 570}, {Start: 660, End: 720}},
		},
		{
			name:    "блокировка применяется к каждому открытому интервалу",
			open:    []Range{{Start: 540, End: 720}, {Start: 780, End: 1020}},
			blocked: []Range{{Start: 700, End: 800}},
			want:    []Range{{Start: 540, End: 700}, {Start: 800, End: 1020}},
		},
		{
			name:    "невалидные интервалы отбрасываются",
			open:    []Range{{Start: 700, End: 600}, {Start: 540, End: 720}},
			blocked: []Range{{Start: 660, End: 660}},
			want:    []Range{{Start: 540, End: 720}},
		},
		{
			name:    "граничащая блокировка ничего не меняет",
			open:    []Range{{Start: 540, End: 720}},
			blocked: []Range{{Start: 720, End: 780}},
			want:    []Range{{Start: 540, End: 720}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subtract(tt.open, tt.blocked))
		})
	}
}
