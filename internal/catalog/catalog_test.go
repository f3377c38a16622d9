package catalog

import (
	"reflect"
	"testing"

	"github.com/GuotongWu/CookNote/internal/models"
)

func ing(id, name string, cat models.Category) models.Ingredient {
	return models.Ingredient{ID: id, Name: name, Category: cat}
}

func names(items []models.Ingredient) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestFrequencies(t *testing.T) {
	recipes := []models.Recipe{
		{Ingredients: []models.Ingredient{ing("1", "鸡蛋", models.CategoryMeat), ing("2", "西红柿", models.CategoryVegetable)}},
		{Ingredients: []models.Ingredient{ing("x", "鸡蛋", models.CategoryMeat)}},
		{Ingredients: []models.Ingredient{ing("1", "大蒜", models.CategoryCondiment)}},
		{},
	}

	got := Frequencies(recipes)
	want := map[string]int{"鸡蛋": 2, "西红柿": 1, "大蒜": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Frequencies = %v, want %v", got, want)
	}

	if len(Frequencies(nil)) != 0 {
		t.Error("expected empty map for no recipes")
	}
}

func TestBuildDeduplicatesBySeedFirst(t *testing.T) {
	seed := []models.Ingredient{
		ing("1", "鸡蛋", models.CategoryMeat),
		ing("10", "西兰花", models.CategoryVegetable),
	}
	recipes := []models.Recipe{
		{Ingredients: []models.Ingredient{
			ing("ai-ing-1", "西兰花", models.CategoryOther), // collides with seed
			ing("custom-1", "三文鱼", models.CategorySeafood),
		}},
		{Ingredients: []models.Ingredient{
			ing("custom-2", "三文鱼", models.CategoryOther), // collides with recipe entry
			ing("custom-3", "黄油", models.Category("乳制品")),
		}},
	}

	got := Build(seed, recipes)

	if !reflect.DeepEqual(names(got), []string{"鸡蛋", "西兰花", "三文鱼", "黄油"}) {
		t.Fatalf("Build names = %v", names(got))
	}

	counts := make(map[string]int)
	for _, it := range got {
		counts[it.Name]++
	}
	for name, n := range counts {
		if n != 1 {
			t.Errorf("%s appears %d times", name, n)
		}
	}

	if got[1].ID != "10" || got[1].Category != models.CategoryVegetable {
		t.Errorf("seed entry should win for 西兰花, got %+v", got[1])
	}
	if got[2].ID != "custom-1" {
		t.Errorf("first recipe-sourced entry should win for 三文鱼, got %+v", got[2])
	}
	if got[3].Category != models.CategoryOther {
		t.Errorf("unknown category should map to other, got %q", got[3].Category)
	}
}

func TestRank(t *testing.T) {
	items := []models.Ingredient{
		ing("1", "大蒜", models.CategoryCondiment),
		ing("2", "米饭", models.CategoryStaple),
		ing("3", "西兰花", models.CategoryVegetable),
		ing("4", "土豆", models.CategoryVegetable),
		ing("5", "虾仁", models.CategorySeafood),
		ing("6", "猪肉", models.CategoryMeat),
		ing("7", "牛肉", models.CategoryMeat),
		ing("8", "黄油", models.CategoryOther),
		ing("9", "青椒", models.CategoryVegetable),
	}
	freq := map[string]int{"牛肉": 3, "猪肉": 1, "土豆": 2, "西兰花": 2}

	got := Rank(items, freq)
	want := []string{"牛肉", "猪肉", "虾仁", "西兰花", "土豆", "青椒", "米饭", "大蒜", "黄油"}
	if !reflect.DeepEqual(names(got), want) {
		t.Errorf("Rank = %v, want %v", names(got), want)
	}

	if items[0].Name != "大蒜" {
		t.Error("Rank must not reorder its input")
	}
}

func TestByCategory(t *testing.T) {
	items := []models.Ingredient{
		ing("1", "大蒜", models.CategoryCondiment),
		ing("2", "牛肉", models.CategoryMeat),
		ing("3", "生姜", models.CategoryCondiment),
		ing("4", "无分类", ""),
	}

	got := ByCategory(items)
	if len(got) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(got))
	}
	if got[0].Category != models.CategoryMeat || got[1].Category != models.CategoryCondiment || got[2].Category != models.CategoryOther {
		t.Errorf("unexpected section order: %v, %v, %v", got[0].Category, got[1].Category, got[2].Category)
	}
	if !reflect.DeepEqual(names(got[1].Items), []string{"大蒜", "生姜"}) {
		t.Errorf("condiment items = %v", names(got[1].Items))
	}
}

func TestSearch(t *testing.T) {
	items := []models.Ingredient{
		ing("1", "番茄酱", models.CategoryCondiment),
		ing("2", "小番茄", models.CategoryVegetable),
		ing("3", "番茄", models.CategoryVegetable),
		ing("4", "Butter", models.CategoryOther),
		ing("5", "Peanut butter", models.CategoryOther),
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"番茄", []string{"番茄酱", "番茄", "小番茄"}},
		{"  ", []string{"番茄酱", "小番茄", "番茄", "Butter", "Peanut butter"}},
		{"BUTTER", []string{"Butter", "Peanut butter"}},
		{"butter", []string{"Butter", "Peanut butter"}},
		{"西兰花", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Search(items, tt.query)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(names(got), tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, names(got), tt.want)
			}
		})
	}
}
