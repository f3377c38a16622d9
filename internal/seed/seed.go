// Package seed holds the first-run dataset: common ingredients, sample
// recipes and a default household.
package seed

import (
	"time"

	"github.com/GuotongWu/CookNote/internal/models"
)

const day = 24 * time.Hour

// Ingredients returns the common ingredients offered before any recipe mentions them.
func Ingredients() []models.Ingredient {
	return []models.Ingredient{
		{ID: "1", Name: "鸡蛋", Category: models.CategoryMeat},
		{ID: "2", Name: "西红柿", Category: models.CategoryVegetable},
		{ID: "3", Name: "牛肉", Category: models.CategoryMeat},
		{ID: "4", Name: "青椒", Category: models.CategoryVegetable},
		{ID: "5", Name: "土豆", Category: models.CategoryVegetable},
		{ID: "6", Name: "大蒜", Category: models.CategoryCondiment},
		{ID: "7", Name: "猪肉", Category: models.CategoryMeat},
		{ID: "8", Name: "生姜", Category: models.CategoryCondiment},
		{ID: "9", Name: "大葱", Category: models.CategoryCondiment},
		{ID: "10", Name: "西兰花", Category: models.CategoryVegetable},
		{ID: "11", Name: "虾仁", Category: models.CategorySeafood},
		{ID: "12", Name: "面条", Category: models.CategoryStaple},
		{ID: "13", Name: "米饭", Category: models.CategoryStaple},
	}
}

// Members returns the default household.
func Members() []models.FamilyMember {
	return []models.FamilyMember{
		{ID: "1", Name: "爸爸", Color: "#4DABF7"},
		{ID: "2", Name: "妈妈", Color: "#FF6B6B"},
	}
}

// Recipes returns the sample recipes, dated relative to now:
// one today, two yesterday, one two days ago and one three days ago.
func Recipes(now time.Time) []models.Recipe {
	ing := Ingredients()
	ms := func(ago time.Duration) int64 { return now.Add(-ago).UnixMilli() }

	return []models.Recipe{
		{
			ID:   "1",
			Name: "经典番茄炒蛋",
			ImageURIs: []string{
				"https://images.unsplash.com/photo-1546069901-ba9599a7e63c?auto=format&fit=crop&w=800&q=80",
				"https://images.unsplash.com/photo-1590523277543-a94d2e4eb00b?auto=format&fit=crop&w=800&q=80",
			},
			Ingredients: []models.Ingredient{ing[0], ing[1]},
			Steps:       []string{"准备番茄和鸡蛋", "热锅凉油", "炒熟鸡蛋备用", "炒番茄出汁", "混合"},
			CreatedAt:   ms(0),
			IsFavorite:  true,
			LikedBy:     []string{"1", "2"},
		},
		{
			ID:          "2",
			Name:        "青椒炒牛肉",
			ImageURIs:   []string{"https://plus.unsplash.com/premium_photo-1664472314546-f642646279f1?auto=format&fit=crop&w=800&q=80"},
			Ingredients: []models.Ingredient{ing[2], ing[3]},
			Steps:       []string{"牛肉切片腌制", "青椒切块", "大火快炒牛肉", "加入青椒调味"},
			CreatedAt:   ms(day),
			LikedBy:     []string{"1"},
		},
		{
			ID:   "3",
			Name: "香煎三文鱼",
			ImageURIs: []string{
				"https://images.unsplash.com/photo-1467003909585-2f8a72700288?auto=format&fit=crop&w=800&q=80",
				"https://images.unsplash.com/photo-1519708227418-c8fd9a32b7a2?auto=format&fit=crop&w=800&q=80",
				"https://images.unsplash.com/photo-1485921325833-c519f76c4927?auto=format&fit=crop&w=800&q=80",
			},
			Ingredients: []models.Ingredient{
				{ID: "custom-1", Name: "三文鱼", Category: models.CategorySeafood},
				{ID: "6", Name: "大蒜", Category: models.CategoryCondiment},
			},
			Steps:      []string{"三文鱼吸干水分", "抹上盐和黑胡椒", "皮朝下小火慢煎", "加入黄油大蒜淋热油"},
			CreatedAt:  ms(day),
			IsFavorite: true,
			LikedBy:    []string{"2"},
		},
		{
			ID:          "4",
			Name:        "酸辣土豆丝",
			ImageURIs:   []string{"https://images.unsplash.com/photo-1582234372722-50d7ccc30ebd?auto=format&fit=crop&w=800&q=80"},
			Ingredients: []models.Ingredient{ing[4], ing[8]},
			Steps:       []string{"土豆切丝泡水", "干辣椒葱花爆香", "大火快炒土豆丝", "出锅前淋陈醋"},
			CreatedAt:   ms(2 * day),
		},
		{
			ID:          "5",
			Name:        "清爽西兰花",
			ImageURIs:   []string{"https://images.unsplash.com/photo-1584270354949-c26b0d5b4a0c?auto=format&fit=crop&w=800&q=80"},
			Ingredients: []models.Ingredient{ing[9], ing[5]},
			Steps:       []string{"西兰花掰小朵", "水开焯烫 1 分钟", "凉水冲凉保持色泽", "蒜末蚝油调味"},
			CreatedAt:   ms(3 * day),
		},
	}
}
