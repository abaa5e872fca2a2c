package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
)

const (
	DefaultTopIngredientsLimit = 10
	DefaultWindowDays          = 30
)

// IngredientUsage is one row of the top-ingredients report: total quantity
// of an ingredient consumed by orders in the window, derived by expanding
// order lines back through the catalog recipes.
type IngredientUsage struct {
	Ingredient string `json:"ingredient" bson:"ingredient"`
	Type       string `json:"type" bson:"type"`
	TotalUsed  int    `json:"total_used" bson:"total_used"`
}

// CategoryAverage is the average catalog price of a pizza category.
type CategoryAverage struct {
	Category     string  `json:"category" bson:"category"`
	AveragePrice float64 `json:"average_price" bson:"average_price"`
	Count        int     `json:"count" bson:"count"`
}

// CategorySales is the cumulative ordered quantity of a pizza category.
type CategorySales struct {
	Category  string `json:"category" bson:"category"`
	TotalSold int    `json:"total_sold" bson:"total_sold"`
}

// Repo answers the three read-side aggregates. Implementations read the
// catalog and the order ledger only; they never write.
type Repo interface {
	TopIngredients(ctx context.Context, since time.Time, limit int) ([]IngredientUsage, error)
	AveragePriceByCategory(ctx context.Context) ([]CategoryAverage, error)
	BestSellingCategory(ctx context.Context) (*CategorySales, error)
}

type Service struct {
	repo   Repo
	logger apt.Logger
}

func NewService(repo Repo, logger apt.Logger) *Service {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Service{repo: repo, logger: logger}
}

// TopIngredients reports the most-consumed ingredients over a trailing
// window. Zero or negative arguments fall back to the defaults.
func (s *Service) TopIngredients(ctx context.Context, windowDays, limit int) ([]IngredientUsage, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if limit <= 0 {
		limit = DefaultTopIngredientsLimit
	}

	since := time.Now().AddDate(0, 0, -windowDays)
	usages, err := s.repo.TopIngredients(ctx, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top ingredients: %w", err)
	}
	return usages, nil
}

// AveragePriceByCategory reads the catalog only; it is independent of the
// order ledger.
func (s *Service) AveragePriceByCategory(ctx context.Context) ([]CategoryAverage, error) {
	averages, err := s.repo.AveragePriceByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("average price by category: %w", err)
	}
	return averages, nil
}

// BestSellingCategory returns the category with the highest cumulative
// ordered quantity, or nil when no orders exist yet.
func (s *Service) BestSellingCategory(ctx context.Context) (*CategorySales, error) {
	sales, err := s.repo.BestSellingCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("best selling category: %w", err)
	}
	return sales, nil
}
