// file: internals/features/profiles/sections/service/duplicate_guard.go
package service

import (
	"context"

	"github.com/google/uuid"

	"profilku_backend/internals/features/profiles/sections/repository"
	helper "profilku_backend/internals/helpers"
)

/* =========================
   Duplicate-Section Guard
   ========================= */

type DuplicateCheck struct {
	Exists bool  `json:"exists"`
	Count  int64 `json:"count"`
}

type DuplicateSectionGuard struct {
	Repo *repository.SectionRepository
}

func NewDuplicateSectionGuard(repo *repository.SectionRepository) *DuplicateSectionGuard {
	return &DuplicateSectionGuard{Repo: repo}
}

func (g *DuplicateSectionGuard) Check(ctx context.Context, profileID uuid.UUID, sectionKey string) (DuplicateCheck, error) {
	count, err := g.Repo.CountSectionsByKey(ctx, profileID, sectionKey)
	if err != nil {
		return DuplicateCheck{}, err
	}
	return DuplicateCheck{Exists: count > 0, Count: count}, nil
}

// ResolveTitle disambiguates the template's default title when the
// profile already holds sections with the same key: the second "Work
// Experience" becomes "Work Experience 2". The check and the create are
// not atomic; with a single owner editing, a racing duplicate suffix is
// acceptable. Returns the title to use and whether it was changed.
func (g *DuplicateSectionGuard) ResolveTitle(ctx context.Context, profileID uuid.UUID, sectionKey, defaultTitle string) (string, bool, error) {
	check, err := g.Check(ctx, profileID, sectionKey)
	if err != nil {
		return "", false, err
	}
	if !check.Exists {
		return defaultTitle, false, nil
	}
	return helper.DisambiguateTitle(defaultTitle, int(check.Count)+1), true, nil
}
