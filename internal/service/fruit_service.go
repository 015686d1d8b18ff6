package service

import (
	"context"

	"github.com/fruitstand/fruitstand/internal/models"
	"github.com/fruitstand/fruitstand/internal/repository"
)

// FruitService handles catalog reads for the handlers
type FruitService struct {
	repo repository.FruitRepository
}

// NewFruitService creates a new fruit service
func NewFruitService(repo repository.FruitRepository) *FruitService {
	return &FruitService{
		repo: repo,
	}
}

// ListFruits returns the full catalog in store order
func (s *FruitService) ListFruits(ctx context.Context) ([]models.Fruit, error) {
	return s.repo.GetAll(ctx)
}

// GetFruit returns the catalog entry at the given position
func (s *FruitService) GetFruit(ctx context.Context, index int) (*models.Fruit, error) {
	return s.repo.GetByIndex(ctx, index)
}
