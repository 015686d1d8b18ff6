package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fruitstand/fruitstand/internal/models"
	"gopkg.in/yaml.v3"
)

var (
	ErrFruitNotFound = errors.New("fruit not found")
)

// FruitRepository defines the interface for catalog data access
type FruitRepository interface {
	GetAll(ctx context.Context) ([]models.Fruit, error)
	GetByIndex(ctx context.Context, index int) (*models.Fruit, error)
}

// InMemoryFruitRepository implements FruitRepository with an in-memory,
// insertion-ordered catalog. The catalog is populated once at construction
// and never mutated afterwards.
type InMemoryFruitRepository struct {
	fruits []models.Fruit
}

// NewInMemoryFruitRepository creates a repository seeded with the built-in catalog
func NewInMemoryFruitRepository() *InMemoryFruitRepository {
	return &InMemoryFruitRepository{
		fruits: []models.Fruit{
			{Name: "apple", Color: "red", ReadyToEat: true},
			{Name: "pear", Color: "green", ReadyToEat: false},
			{Name: "banana", Color: "yellow", ReadyToEat: true},
		},
	}
}

// NewInMemoryFruitRepositoryFromFile creates a repository whose catalog is
// read from a YAML file. The file is read exactly once; a malformed file or
// a partially constructed record is an error, not a fallback to the seed.
func NewInMemoryFruitRepositoryFromFile(path string) (*InMemoryFruitRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var fruits []models.Fruit
	if err := yaml.Unmarshal(data, &fruits); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	if len(fruits) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no records", path)
	}

	for i, f := range fruits {
		if f.Name == "" || f.Color == "" {
			return nil, fmt.Errorf("catalog record %d is missing name or color", i)
		}
	}

	return &InMemoryFruitRepository{fruits: fruits}, nil
}

// GetAll returns the full catalog in insertion order
func (r *InMemoryFruitRepository) GetAll(ctx context.Context) ([]models.Fruit, error) {
	fruits := make([]models.Fruit, len(r.fruits))
	copy(fruits, r.fruits)
	return fruits, nil
}

// GetByIndex returns the fruit at the given position.
// Any index outside [0, len) returns ErrFruitNotFound; the repository never
// substitutes a default record.
func (r *InMemoryFruitRepository) GetByIndex(ctx context.Context, index int) (*models.Fruit, error) {
	if index < 0 || index >= len(r.fruits) {
		return nil, ErrFruitNotFound
	}
	fruit := r.fruits[index]
	return &fruit, nil
}

// Len returns the number of records in the catalog
func (r *InMemoryFruitRepository) Len() int {
	return len(r.fruits)
}
