package interval

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestUnion(t *testing.T) {
	tests := []struct {
		ranges  []Range
		want    []Range
		covered PosType
	}{
		{nil, []Range{}, 0},
		{[]Range{{5, 15}, {7, 17}, {20, 25}}, []Range{{5, 17}, {20, 25}}, 17},
		{[]Range{{20, 25}, {17, 7}, {5, 15}}, []Range{{5, 17}, {20, 25}}, 17},
		{[]Range{{0, 10}, {10, 20}}, []Range{{0, 20}}, 20},
		{[]Range{{0, 100}, {20, 30}, {40, 40}}, []Range{{0, 100}}, 100},
	}
	for _, tt := range tests {
		u := NewUnion(tt.ranges)
		expect.EQ(t, u.Ranges(), tt.want, "%v", tt.ranges)
		expect.EQ(t, u.Covered(), tt.covered, "%v", tt.ranges)
		expect.EQ(t, u.Len(), len(tt.want))
	}
}

func TestUnionContains(t *testing.T) {
	u := NewUnion([]Range{{5, 15}, {7, 17}, {20, 25}})
	for _, pos := range []PosType{5, 6, 16, 20, 24} {
		expect.True(t, u.Contains(pos), "%d", pos)
	}
	for _, pos := range []PosType{-1, 4, 17, 19, 25, 1000} {
		expect.False(t, u.Contains(pos), "%d", pos)
	}
}
