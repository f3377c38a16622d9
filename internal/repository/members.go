package repository

import (
	"context"

	"github.com/GuotongWu/CookNote/internal/models"
	"github.com/GuotongWu/CookNote/internal/seed"
	"github.com/GuotongWu/CookNote/internal/storage"
)

// MemberRegistry is CRUD over the household, in insertion order.
// Deleting a member does not touch recipes that reference it.
type MemberRegistry struct {
	c *collection[models.FamilyMember]
}

// NewMemberRegistry creates a registry persisting under storage.FamilyKey.
func NewMemberRegistry(kv storage.KV, opts ...Option) *MemberRegistry {
	o := buildOptions(opts)
	return &MemberRegistry{
		c: &collection[models.FamilyMember]{
			kv:      kv,
			key:     storage.FamilyKey,
			name:    "family",
			seed:    seed.Members,
			clone:   cloneMembers,
			metrics: o.metrics,
		},
	}
}

// GetAll returns every member. An empty store yields the default household.
func (m *MemberRegistry) GetAll(ctx context.Context) []models.FamilyMember {
	return m.c.clone(m.c.load(ctx, true))
}

// Add appends member and returns the new household.
func (m *MemberRegistry) Add(ctx context.Context, member models.FamilyMember) []models.FamilyMember {
	return m.c.mutate(ctx, func(items []models.FamilyMember) []models.FamilyMember {
		return append(items, member)
	})
}

// Update replaces the member with the same ID; no-op when none matches.
func (m *MemberRegistry) Update(ctx context.Context, member models.FamilyMember) []models.FamilyMember {
	return m.c.mutate(ctx, func(items []models.FamilyMember) []models.FamilyMember {
		for i := range items {
			if items[i].ID == member.ID {
				items[i] = member
			}
		}
		return items
	})
}

// Delete removes the member with the given ID.
func (m *MemberRegistry) Delete(ctx context.Context, id string) []models.FamilyMember {
	return m.c.mutate(ctx, func(items []models.FamilyMember) []models.FamilyMember {
		out := items[:0]
		for _, item := range items {
			if item.ID != id {
				out = append(out, item)
			}
		}
		return out
	})
}

// Replace overwrites the whole household.
func (m *MemberRegistry) Replace(ctx context.Context, members []models.FamilyMember) []models.FamilyMember {
	return m.c.overwrite(ctx, members)
}

// Wait blocks until any background seed write has finished.
func (m *MemberRegistry) Wait() {
	m.c.wait()
}

func cloneMembers(in []models.FamilyMember) []models.FamilyMember {
	if in == nil {
		return nil
	}
	return append([]models.FamilyMember(nil), in...)
}
