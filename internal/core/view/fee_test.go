package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFee(t *testing.T) {
	cases := []struct {
		amount, pct, want float64
	}{
		{1000, 2, 20},
		{123.45, 2, 2.47},
		{99.99, 1.5, 1.5},
		{0, 2, 0},
		{-50, 2, 0},
		{250, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Fee(tc.amount, tc.pct), "Fee(%v, %v)", tc.amount, tc.pct)
	}
}

func TestFeeZeroAmountForAnyPercentage(t *testing.T) {
	for _, pct := range []float64{0, 0.5, 2, 7.25, 100} {
		assert.Zero(t, Fee(0, pct))
	}
}

func TestFeeIsMonotonicInAmount(t *testing.T) {
	for _, pct := range []float64{0.1, 1, 2, 3.33, 12.5} {
		prev := Fee(0, pct)
		for cents := 1; cents <= 200000; cents += 7 {
			amount := float64(cents) / 100
			got := Fee(amount, pct)
			if got < prev {
				t.Fatalf("Fee(%v, %v) = %v < previous %v", amount, pct, got, prev)
			}
			assert.Equal(t, got, Fee(amount, pct))
			prev = got
		}
	}
}

func TestTransferTotal(t *testing.T) {
	assert.Equal(t, 1020.0, TransferTotal(1000, 2))
	assert.Zero(t, TransferTotal(0, 2))
}
