package services

import (
	"errors"
	"testing"

	"mines-backend/internal/models"
)

func TestGenerateMineLayout(t *testing.T) {
	t.Run("exact mine count, unique, in bounds", func(t *testing.T) {
		for _, mineCount := range []int{3, 5, 7} {
			mines, err := GenerateMineLayout(5, mineCount)
			if err != nil {
				t.Fatalf("GenerateMineLayout(5, %d): %v", mineCount, err)
			}
			if len(mines) != mineCount {
				t.Errorf("expected %d mines, got %d", mineCount, len(mines))
			}

			seen := make(map[models.Cell]bool)
			for _, m := range mines {
				if m.Row < 0 || m.Row >= 5 || m.Col < 0 || m.Col >= 5 {
					t.Errorf("mine %v out of bounds", m)
				}
				if seen[m] {
					t.Errorf("duplicate mine %v", m)
				}
				seen[m] = true
			}
		}
	})

	t.Run("rejects out of range parameters", func(t *testing.T) {
		for _, tc := range []struct{ size, mines int }{
			{5, 0}, {5, -1}, {5, 25}, {5, 30}, {0, 3}, {-1, 3},
		} {
			_, err := GenerateMineLayout(tc.size, tc.mines)
			if !errors.Is(err, ErrInvalidParameters) {
				t.Errorf("GenerateMineLayout(%d, %d): expected ErrInvalidParameters, got %v",
					tc.size, tc.mines, err)
			}
		}
	})

	t.Run("covers the whole board over many games", func(t *testing.T) {
		hit := make(map[models.Cell]bool)
		for i := 0; i < 200; i++ {
			mines, err := GenerateMineLayout(5, 5)
			if err != nil {
				t.Fatal(err)
			}
			for _, m := range mines {
				hit[m] = true
			}
		}
		if len(hit) != 25 {
			t.Errorf("expected all 25 cells to host a mine eventually, got %d", len(hit))
		}
	})
}
