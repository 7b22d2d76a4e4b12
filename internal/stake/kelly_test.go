package stake

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFraction(t *testing.T) {
	// 0.6 - (1-0.6)/2.0
	if got := Fraction(0.6, 2.0); math.Abs(got-0.4) > 1e-12 {
		t.Fatalf("Fraction(0.6, 2.0) = %v, want 0.4", got)
	}
	if got := Fraction(0.5, 1.0); got != 0 {
		t.Fatalf("Fraction(0.5, 1.0) = %v, want 0", got)
	}
}

func TestFractionUncapped(t *testing.T) {
	// No clamping: a losing proposition yields a negative fraction.
	got := Fraction(0.1, 1.5)
	if math.Abs(got-(-0.5)) > 1e-12 {
		t.Fatalf("Fraction(0.1, 1.5) = %v, want -0.5", got)
	}
}

func TestAmount(t *testing.T) {
	bankroll := decimal.NewFromInt(1000)

	if got := Amount(bankroll, 0.2); !got.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("Amount = %v, want 200", got)
	}
	if got := Amount(bankroll, -0.5); !got.Equal(decimal.Zero) {
		t.Fatalf("negative fraction should stake zero, got %v", got)
	}
	if got := Amount(bankroll, 1.5); !got.Equal(bankroll) {
		t.Fatalf("stake should be capped at bankroll, got %v", got)
	}
}
