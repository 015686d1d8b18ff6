package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fruitstand/fruitstand/internal/repository"
)

func TestListFruits(t *testing.T) {
	svc := NewFruitService(repository.NewInMemoryFruitRepository())

	fruits, err := svc.ListFruits(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fruits) != 3 {
		t.Errorf("expected 3 fruits, got %d", len(fruits))
	}
}

func TestGetFruit(t *testing.T) {
	svc := NewFruitService(repository.NewInMemoryFruitRepository())

	fruit, err := svc.GetFruit(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fruit.Name != "apple" {
		t.Errorf("expected apple, got %s", fruit.Name)
	}

	if _, err := svc.GetFruit(context.Background(), 42); !errors.Is(err, repository.ErrFruitNotFound) {
		t.Errorf("expected ErrFruitNotFound, got %v", err)
	}
}
