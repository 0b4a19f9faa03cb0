package services

import (
	"fmt"
	"math/rand"

	"mines-backend/internal/models"
)

// GenerateMineLayout places mineCount mines uniformly on a gridSize x
// gridSize board. Every call draws fresh randomness; layouts carry no state
// between games.
func GenerateMineLayout(gridSize, mineCount int) ([]models.Cell, error) {
	if gridSize <= 0 || mineCount <= 0 || mineCount >= gridSize*gridSize {
		return nil, fmt.Errorf("%w: %d mines on a %dx%d grid",
			ErrInvalidParameters, mineCount, gridSize, gridSize)
	}

	taken := make(map[models.Cell]bool, mineCount)
	mines := make([]models.Cell, 0, mineCount)

	for len(mines) < mineCount {
		cell := models.Cell{
			Row: rand.Intn(gridSize),
			Col: rand.Intn(gridSize),
		}
		if taken[cell] {
			continue
		}
		taken[cell] = true
		mines = append(mines, cell)
	}

	return mines, nil
}
