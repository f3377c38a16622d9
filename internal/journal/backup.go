package journal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GuotongWu/CookNote/internal/models"
)

// BackupVersion is written into every Backup.
const BackupVersion = 1

// Backup is a full copy of the journal for export and import.
type Backup struct {
	Version    int                   `json:"version" yaml:"version"`
	ExportedAt time.Time             `json:"exportedAt" yaml:"exportedAt"`
	Recipes    []models.Recipe       `json:"recipes" yaml:"recipes"`
	Members    []models.FamilyMember `json:"members" yaml:"members"`
}

// Export returns the current recipes and household.
func (s *Service) Export(ctx context.Context) Backup {
	return Backup{
		Version:    BackupVersion,
		ExportedAt: s.now(),
		Recipes:    s.recipes.GetAll(ctx),
		Members:    s.members.GetAll(ctx),
	}
}

// Restore replaces recipes and household with the backup's contents.
// Nothing is written unless the whole backup is valid.
func (s *Service) Restore(ctx context.Context, b Backup) error {
	if b.Version != BackupVersion {
		return fmt.Errorf("unsupported backup version %d", b.Version)
	}
	if err := validateAll(b.Recipes); err != nil {
		return err
	}
	seen := make(map[string]bool, len(b.Members))
	for _, m := range b.Members {
		if m.ID == "" || seen[m.ID] {
			return &models.ValidationError{Field: "id", Message: fmt.Sprintf("member %q needs a unique id", m.Name)}
		}
		seen[m.ID] = true
		if err := validateMember(m); err != nil {
			return fmt.Errorf("member %s: %w", m.ID, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes.Replace(ctx, b.Recipes)
	s.members.Replace(ctx, b.Members)
	slog.Info("Journal restored", "recipes", len(b.Recipes), "members", len(b.Members))
	return nil
}
