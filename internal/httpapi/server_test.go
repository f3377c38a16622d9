package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/GuotongWu/CookNote/internal/analyzer"
	"github.com/GuotongWu/CookNote/internal/auth"
	"github.com/GuotongWu/CookNote/internal/journal"
	"github.com/GuotongWu/CookNote/internal/metrics"
	"github.com/GuotongWu/CookNote/internal/models"
	"github.com/GuotongWu/CookNote/internal/repository"
	"github.com/GuotongWu/CookNote/internal/storage/memory"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

func fixedClock() time.Time { return fixedNow }

// stubAnalyzer returns a fixed draft or error.
type stubAnalyzer struct {
	draft *models.Draft
	err   error
}

func (a *stubAnalyzer) Analyze(ctx context.Context, images []string) (*models.Draft, error) {
	return a.draft, a.err
}

func setupServer(t *testing.T, a analyzer.Analyzer, opts ...Option) http.Handler {
	t.Helper()
	kv := memory.New()
	recipes := repository.NewRecipeRepository(kv, repository.WithClock(fixedClock))
	members := repository.NewMemberRegistry(kv, repository.WithClock(fixedClock))
	t.Cleanup(func() {
		recipes.Wait()
		members.Wait()
	})
	if a == nil {
		a = &analyzer.Mock{}
	}
	j := journal.New(recipes, members, journal.WithClock(fixedClock))
	return New(j, a, append([]Option{WithClock(fixedClock)}, opts...)...).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestListRecipes(t *testing.T) {
	h := setupServer(t, nil)

	rec := do(t, h, http.MethodGet, "/api/recipes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp listRecipesResponse
	decodeBody(t, rec, &resp)
	if len(resp.Recipes) != 5 {
		t.Errorf("recipes = %d, want 5", len(resp.Recipes))
	}
	if len(resp.Groups) == 0 || !resp.Groups[0].IsSpecial {
		t.Errorf("first group should be favorites: %+v", resp.Groups)
	}

	rec = do(t, h, http.MethodGet, "/api/recipes?ingredient=%E8%A5%BF%E5%85%B0%E8%8A%B1", "")
	decodeBody(t, rec, &resp)
	if len(resp.Recipes) != 1 || resp.Recipes[0].ID != "5" {
		t.Errorf("ingredient filter = %+v", resp.Recipes)
	}
}

func TestSaveRecipe(t *testing.T) {
	h := setupServer(t, nil)

	body := `{"name":"凉面","imageUris":["a.jpg"],"ingredients":[{"name":"面条","cost":"3"},{"name":"黄瓜","cost":4.5}]}`
	rec := do(t, h, http.MethodPost, "/api/recipes", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var saved models.Recipe
	decodeBody(t, rec, &saved)
	if saved.ID == "" || saved.CreatedAt != fixedNow.UnixMilli() {
		t.Errorf("saved = %+v", saved)
	}
	if saved.Cost == nil || math.Abs(*saved.Cost-7.5) > 0.01 {
		t.Errorf("Cost = %v, want 7.5", saved.Cost)
	}

	rec = do(t, h, http.MethodGet, "/api/recipes/"+saved.ID, "")
	if rec.Code != http.StatusOK {
		t.Errorf("get saved recipe status = %d", rec.Code)
	}

	override := `{"id":"` + saved.ID + `","name":"凉面","imageUris":["a.jpg"],"costOverride":"12"}`
	rec = do(t, h, http.MethodPost, "/api/recipes", override)
	decodeBody(t, rec, &saved)
	if math.Abs(*saved.Cost-12) > 0.01 {
		t.Errorf("Cost with override = %v, want 12", *saved.Cost)
	}
}

func TestSaveRecipe_Errors(t *testing.T) {
	h := setupServer(t, nil)

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"missing name", `{"imageUris":["a.jpg"]}`, "name"},
		{"missing images", `{"name":"x"}`, "imageUris"},
		{"bad json", `{`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/recipes", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp errorResponse
			decodeBody(t, rec, &resp)
			if resp.Field != tt.wantField {
				t.Errorf("field = %q, want %q", resp.Field, tt.wantField)
			}
		})
	}
}

func TestRecipeActions(t *testing.T) {
	h := setupServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/recipes/4/favorite", "")
	var r models.Recipe
	decodeBody(t, rec, &r)
	if !r.IsFavorite {
		t.Error("favorite not toggled")
	}

	rec = do(t, h, http.MethodPost, "/api/recipes/4/likes/2", "")
	decodeBody(t, rec, &r)
	if !r.LikedByMember("2") {
		t.Error("like not toggled")
	}

	if rec := do(t, h, http.MethodDelete, "/api/recipes/4", ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/api/recipes/4", ""); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/recipes/nope/favorite", ""); rec.Code != http.StatusNotFound {
		t.Errorf("favorite missing status = %d, want 404", rec.Code)
	}
}

func TestCatalog(t *testing.T) {
	h := setupServer(t, nil)

	rec := do(t, h, http.MethodGet, "/api/catalog?q=%E4%B8%89%E6%96%87", "")
	var resp journal.CatalogView
	decodeBody(t, rec, &resp)
	if len(resp.Ingredients) != 1 || resp.Ingredients[0].Name != "三文鱼" {
		t.Errorf("ingredients = %+v", resp.Ingredients)
	}
	if resp.Frequencies["三文鱼"] != 1 {
		t.Errorf("frequency = %d, want 1", resp.Frequencies["三文鱼"])
	}
}

func TestMembers(t *testing.T) {
	h := setupServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/members", `{"name":"奶奶","color":"#FCC419"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var m models.FamilyMember
	decodeBody(t, rec, &m)

	rec = do(t, h, http.MethodPut, "/api/members/"+m.ID, `{"name":"外婆"}`)
	decodeBody(t, rec, &m)
	if m.Name != "外婆" || m.Color != "#FCC419" {
		t.Errorf("updated = %+v", m)
	}

	if rec := do(t, h, http.MethodPost, "/api/members", `{"name":"x","color":"red"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad color status = %d, want 400", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/api/members/"+m.ID, ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}

	var all []models.FamilyMember
	decodeBody(t, do(t, h, http.MethodGet, "/api/members", ""), &all)
	if len(all) != 2 {
		t.Errorf("members = %d, want 2", len(all))
	}
}

func TestPreviewCost(t *testing.T) {
	h := setupServer(t, nil)

	tests := []struct {
		name        string
		body        string
		wantAuto    float64
		wantDisplay string
	}{
		{"auto", `{"ingredients":[{"id":"a","name":"x","cost":3},{"id":"b","name":"y","cost":4.5}]}`, 7.5, "7.50"},
		{"override", `{"ingredients":[{"id":"a","name":"x","cost":3},{"id":"b","name":"y","cost":4.5}],"override":"10"}`, 7.5, "10"},
		{"empty", `{"ingredients":[]}`, 0, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp costPreviewResponse
			decodeBody(t, do(t, h, http.MethodPost, "/api/cost/preview", tt.body), &resp)
			if math.Abs(resp.AutoCost-tt.wantAuto) > 0.01 {
				t.Errorf("autoCost = %v, want %v", resp.AutoCost, tt.wantAuto)
			}
			if resp.DisplayCost != tt.wantDisplay {
				t.Errorf("displayCost = %q, want %q", resp.DisplayCost, tt.wantDisplay)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	h := setupServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/analyze", `{"images":["aGk="],"imageUris":["p.jpg"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp analyzeResponse
	decodeBody(t, rec, &resp)
	if resp.Saved || !models.IsAIRecipeID(resp.Recipe.ID) {
		t.Errorf("preview = %+v", resp)
	}

	rec = do(t, h, http.MethodPost, "/api/analyze", `{"images":["aGk="],"imageUris":["p.jpg"],"save":true}`)
	decodeBody(t, rec, &resp)
	if !resp.Saved {
		t.Fatal("draft not saved")
	}
	if rec := do(t, h, http.MethodGet, "/api/recipes/"+resp.Recipe.ID, ""); rec.Code != http.StatusOK {
		t.Errorf("saved draft lookup status = %d", rec.Code)
	}

	if rec := do(t, h, http.MethodPost, "/api/analyze", `{"images":[]}`); rec.Code != http.StatusBadRequest {
		t.Errorf("no images status = %d, want 400", rec.Code)
	}
}

func TestAnalyze_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"network", &analyzer.ServiceError{Kind: analyzer.KindNetwork}, http.StatusBadGateway},
		{"http", &analyzer.ServiceError{Kind: analyzer.KindHTTP, Status: 500, Message: "busy"}, http.StatusBadGateway},
		{"malformed", &analyzer.ServiceError{Kind: analyzer.KindMalformed}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupServer(t, &stubAnalyzer{err: tt.err})
			rec := do(t, h, http.MethodPost, "/api/analyze", `{"images":["aGk="]}`)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthAndMetrics(t *testing.T) {
	jm, err := auth.NewJWTManager("secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	reg := prometheus.NewRegistry()
	h := setupServer(t, nil, WithAuth(jm), WithMetrics(metrics.New(reg), reg))

	if rec := do(t, h, http.MethodGet, "/api/recipes", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", rec.Code)
	}

	token, _ := jm.Generate("test")
	req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated status = %d, want 200", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/metrics", "")
	if !strings.Contains(rec.Body.String(), `cooknote_http_requests_total{code="401",method="GET",route="GET /api/recipes"} 1`) {
		t.Errorf("metrics output missing request counter:\n%s", rec.Body)
	}
}
