package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GuotongWu/CookNote/internal/config"
	"github.com/GuotongWu/CookNote/internal/models"
)

// Members returns the household.
func (s *Service) Members(ctx context.Context) []models.FamilyMember {
	return s.members.GetAll(ctx)
}

// AddMember appends a member. The name is required; an empty color picks
// the first palette color.
func (s *Service) AddMember(ctx context.Context, name, color string) (models.FamilyMember, error) {
	m := models.FamilyMember{Name: strings.TrimSpace(name), Color: color}
	if m.Color == "" {
		m.Color = models.Palette[0]
	}
	if err := validateMember(m); err != nil {
		return models.FamilyMember{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = memberID(s.now(), s.members.GetAll(ctx))
	s.members.Add(ctx, m)
	slog.Info("Member added", "id", m.ID, "name", m.Name)
	return m, nil
}

// UpdateMember replaces the stored member with the same id. An empty color
// keeps the current one.
func (s *Service) UpdateMember(ctx context.Context, m models.FamilyMember) (models.FamilyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := findMember(s.members.GetAll(ctx), m.ID)
	if !ok {
		return models.FamilyMember{}, fmt.Errorf("member %s: %w", m.ID, ErrNotFound)
	}
	m.Name = strings.TrimSpace(m.Name)
	if m.Color == "" {
		m.Color = current.Color
	}
	if err := validateMember(m); err != nil {
		return models.FamilyMember{}, err
	}

	s.members.Update(ctx, m)
	return m, nil
}

// DeleteMember removes a member. Under CascadeLikes the member's id is also
// stripped from every recipe; otherwise recipes keep the dangling id.
func (s *Service) DeleteMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := findMember(s.members.GetAll(ctx), id); !ok {
		return fmt.Errorf("member %s: %w", id, ErrNotFound)
	}
	s.members.Delete(ctx, id)

	if s.orphans != config.CascadeLikes {
		slog.Info("Member deleted", "id", id)
		return nil
	}

	recipes := s.recipes.GetAll(ctx)
	changed := 0
	for i := range recipes {
		if recipes[i].RemoveLike(id) {
			changed++
		}
	}
	if changed > 0 {
		s.recipes.Replace(ctx, recipes)
	}
	slog.Info("Member deleted", "id", id, "likes_removed", changed)
	return nil
}

func validateMember(m models.FamilyMember) error {
	if m.Name == "" {
		return &models.ValidationError{Field: "name", Message: "member name is required"}
	}
	if !models.ValidColor(m.Color) {
		return &models.ValidationError{Field: "color", Message: fmt.Sprintf("color %s is not in the palette", m.Color)}
	}
	return nil
}
