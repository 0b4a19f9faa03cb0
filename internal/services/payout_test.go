package services

import "testing"

func TestMultiplier(t *testing.T) {
	// 5x5 board, 5 mines: growth = 0.1 + (5/25)*0.5 = 0.2 per reveal.
	cases := []struct {
		revealed, totalCells, mineCount int
		want                            float64
	}{
		{0, 25, 5, 1.0},
		{1, 25, 5, 1.2},
		{2, 25, 5, 1.4},
		{5, 25, 5, 2.0},
		{1, 25, 3, 1.16},
		{1, 25, 7, 1.24},
	}

	for _, tc := range cases {
		got := Multiplier(tc.revealed, tc.totalCells, tc.mineCount)
		if got != tc.want {
			t.Errorf("Multiplier(%d, %d, %d) = %v, want %v",
				tc.revealed, tc.totalCells, tc.mineCount, got, tc.want)
		}
	}
}

func TestMultiplierMonotonic(t *testing.T) {
	for _, mineCount := range []int{3, 5, 7} {
		prev := 0.0
		for revealed := 0; revealed <= 20; revealed++ {
			m := Multiplier(revealed, 25, mineCount)
			if m < 1.0 {
				t.Errorf("Multiplier(%d, 25, %d) = %v, below 1.0", revealed, mineCount, m)
			}
			if m <= prev {
				t.Errorf("Multiplier not strictly increasing at %d reveals, %d mines: %v <= %v",
					revealed, mineCount, m, prev)
			}
			prev = m
		}
	}
}

func TestMultiplierDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		if Multiplier(4, 25, 5) != 1.8 {
			t.Fatal("Multiplier must be a pure function of its inputs")
		}
	}
}

func TestMultiplierScalesWithDanger(t *testing.T) {
	if Multiplier(3, 25, 7) <= Multiplier(3, 25, 3) {
		t.Error("more mines should grow the multiplier faster")
	}
}

func TestPotentialWin(t *testing.T) {
	cases := []struct {
		bet, multiplier, want float64
	}{
		{100, 1.0, 100},
		{100, 1.2, 120},
		{33.33, 1.16, 38.66},
		{0.01, 1.5, 0.02},
	}

	for _, tc := range cases {
		if got := PotentialWin(tc.bet, tc.multiplier); got != tc.want {
			t.Errorf("PotentialWin(%v, %v) = %v, want %v", tc.bet, tc.multiplier, got, tc.want)
		}
	}
}
