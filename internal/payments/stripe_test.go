package payments_test

import (
	"testing"

	"github.com/hopepulse/hopepulse-api/internal/payments"
)

func TestMinorUnitsTruncates(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{10, 1000},
		{10.005, 1000}, // fractional cent dropped, not rounded up
		{0.5, 50},
		{25.999, 2599},
	}
	for _, c := range cases {
		if got := payments.MinorUnits(c.in); got != c.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
