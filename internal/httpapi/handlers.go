package httpapi

import (
	"net/http"

	"github.com/GuotongWu/CookNote/internal/cost"
	"github.com/GuotongWu/CookNote/internal/filter"
	"github.com/GuotongWu/CookNote/internal/grouping"
	"github.com/GuotongWu/CookNote/internal/journal"
	"github.com/GuotongWu/CookNote/internal/models"
)

type listRecipesResponse struct {
	Groups  []grouping.Group `json:"groups"`
	Recipes []models.Recipe  `json:"recipes"`
}

func (s *Server) listRecipes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := s.journal.Browse(r.Context(), filter.Criteria{
		SearchText: q.Get("q"),
		Ingredient: q.Get("ingredient"),
		MemberID:   q.Get("member"),
	})
	writeJSON(w, http.StatusOK, listRecipesResponse{Groups: view.Groups, Recipes: view.Recipes})
}

func (s *Server) getRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := s.journal.Recipe(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// saveRecipeRequest accepts a bare recipe or one with a cost override.
// A missing costOverride keeps a manual figure already on the recipe.
type saveRecipeRequest struct {
	models.Recipe
	CostOverride *string `json:"costOverride,omitempty"`
}

func (s *Server) saveRecipe(w http.ResponseWriter, r *http.Request) {
	var req saveRecipeRequest
	if !decode(w, r, &req) {
		return
	}
	var opts []journal.SaveOption
	if req.CostOverride != nil {
		opts = append(opts, journal.WithCostOverride(*req.CostOverride))
	}

	saved, err := s.journal.SaveRecipe(r.Context(), req.Recipe, opts...)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := s.journal.DeleteRecipe(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	recipe, err := s.journal.ToggleFavorite(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func (s *Server) toggleLike(w http.ResponseWriter, r *http.Request) {
	recipe, err := s.journal.ToggleLike(r.Context(), r.PathValue("id"), r.PathValue("memberID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func (s *Server) getCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.journal.Catalog(r.Context(), r.URL.Query().Get("q")))
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.journal.Members(r.Context()))
}

type memberRequest struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Avatar string `json:"avatar"`
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := s.journal.AddMember(r.Context(), req.Name, req.Color)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if req.Avatar != "" {
		m.Avatar = req.Avatar
		if m, err = s.journal.UpdateMember(r.Context(), m); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) updateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := s.journal.UpdateMember(r.Context(), models.FamilyMember{
		ID:     r.PathValue("id"),
		Name:   req.Name,
		Color:  req.Color,
		Avatar: req.Avatar,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) deleteMember(w http.ResponseWriter, r *http.Request) {
	if err := s.journal.DeleteMember(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type costPreviewRequest struct {
	Ingredients []models.Ingredient `json:"ingredients"`
	Override    string              `json:"override"`
}

type costPreviewResponse struct {
	AutoCost    float64 `json:"autoCost"`
	DisplayCost string  `json:"displayCost"`
}

func (s *Server) previewCost(w http.ResponseWriter, r *http.Request) {
	var req costPreviewRequest
	if !decode(w, r, &req) {
		return
	}
	e := cost.Open(models.Recipe{Ingredients: req.Ingredients})
	e.SetOverride(req.Override)
	writeJSON(w, http.StatusOK, costPreviewResponse{
		AutoCost:    cost.Round2(e.AutoCost()),
		DisplayCost: e.Display(),
	})
}

type analyzeRequest struct {
	Images    []string `json:"images"`
	ImageURIs []string `json:"imageUris"`
	Save      bool     `json:"save"`
}

type analyzeResponse struct {
	Draft  *models.Draft `json:"draft"`
	Recipe models.Recipe `json:"recipe"`
	Saved  bool          `json:"saved"`
}

// analyze sends the images to the analysis service. The resulting recipe is
// only stored when save is set; otherwise it is a preview for the client to
// edit and submit through POST /api/recipes.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decode(w, r, &req) {
		return
	}
	draft, err := s.analyzer.Analyze(r.Context(), req.Images)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := analyzeResponse{Draft: draft}
	if req.Save {
		if resp.Recipe, err = s.journal.ImportDraft(r.Context(), draft, req.ImageURIs); err != nil {
			writeServiceError(w, err)
			return
		}
		resp.Saved = true
	} else {
		resp.Recipe = draft.ToRecipe(s.now(), req.ImageURIs)
	}
	writeJSON(w, http.StatusOK, resp)
}
