package reporting

import (
	"context"
	"time"
)

// MockRepo is a mock implementation of Repo for testing
type MockRepo struct {
	TopIngredientsFunc         func(ctx context.Context, since time.Time, limit int) ([]IngredientUsage, error)
	AveragePriceByCategoryFunc func(ctx context.Context) ([]CategoryAverage, error)
	BestSellingCategoryFunc    func(ctx context.Context) (*CategorySales, error)

	TopIngredientsCalls []topIngredientsCall
}

type topIngredientsCall struct {
	Since time.Time
	Limit int
}

func NewMockRepo() *MockRepo {
	return &MockRepo{}
}

func (m *MockRepo) TopIngredients(ctx context.Context, since time.Time, limit int) ([]IngredientUsage, error) {
	m.TopIngredientsCalls = append(m.TopIngredientsCalls, topIngredientsCall{Since: since, Limit: limit})
	if m.TopIngredientsFunc != nil {
		return m.TopIngredientsFunc(ctx, since, limit)
	}
	return nil, nil
}

func (m *MockRepo) AveragePriceByCategory(ctx context.Context) ([]CategoryAverage, error) {
	if m.AveragePriceByCategoryFunc != nil {
		return m.AveragePriceByCategoryFunc(ctx)
	}
	return nil, nil
}

func (m *MockRepo) BestSellingCategory(ctx context.Context) (*CategorySales, error) {
	if m.BestSellingCategoryFunc != nil {
		return m.BestSellingCategoryFunc(ctx)
	}
	return nil, nil
}
