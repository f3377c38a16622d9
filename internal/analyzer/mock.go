package analyzer

import (
	"context"
	"time"

	"github.com/GuotongWu/CookNote/internal/models"
)

// Mock returns a canned draft after an optional delay. Used when the real
// service is not configured.
type Mock struct {
	Delay time.Duration
}

// Analyze waits for Delay (or ctx) and returns the sample draft.
func (m *Mock) Analyze(ctx context.Context, images []string) (*models.Draft, error) {
	if len(images) < MinImages || len(images) > MaxImages {
		return nil, ErrImageCount
	}
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, &ServiceError{Kind: KindNetwork, Err: ctx.Err()}
		}
	}
	return &models.Draft{
		Name: "香煎三文鱼配时蔬",
		Ingredients: []models.DraftIngredient{
			{Name: "三文鱼", Amount: 200, Category: string(models.CategorySeafood)},
			{Name: "西兰花", Amount: 100, Category: string(models.CategoryVegetable)},
			{Name: "大蒜", Amount: 10, Category: string(models.CategoryCondiment)},
		},
		Steps: []string{
			"三文鱼洗净擦干表面水分，撒少许盐和黑胡椒腌制10分钟",
			"西兰花切小朵烧水烫熟备用",
			"热锅下油，三文鱼皮朝下中火煎至焦脆再翻面",
			"放入蒜片煎香，三文鱼四面煎熟即可出盘",
		},
	}, nil
}
