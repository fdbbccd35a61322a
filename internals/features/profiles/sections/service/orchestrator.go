// file: internals/features/profiles/sections/service/orchestrator.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"profilku_backend/internals/cache"
	profilemodel "profilku_backend/internals/features/profiles/profile/model"
	"profilku_backend/internals/features/profiles/sections/dto"
	"profilku_backend/internals/features/profiles/sections/reconcile"
	"profilku_backend/internals/features/profiles/sections/repository"
	"profilku_backend/internals/helpers/apperror"
)

// ErrSaveInFlight: a save for the same profile is still running. The
// controller maps this to 409 so the client retries instead of racing
// its own previous save.
var ErrSaveInFlight = errors.New("a save for this profile is already in progress")

// UpdateOrchestrator is the single entry point for every profile save.
// Each modal type routes to its own write path, but they all share the
// same tail: on success, rebuild the denormalized profile_sections cache
// from the section/field rows and invalidate external caches. On
// failure nothing touches the cache column, so it never reflects a
// half-applied save.
type UpdateOrchestrator struct {
	DB   *gorm.DB
	Repo *repository.SectionRepository
	Inv  cache.Invalidator

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

func NewUpdateOrchestrator(db *gorm.DB, repo *repository.SectionRepository, inv cache.Invalidator) *UpdateOrchestrator {
	if inv == nil {
		inv = cache.NoopInvalidator{}
	}
	return &UpdateOrchestrator{
		DB:       db,
		Repo:     repo,
		Inv:      inv,
		inFlight: make(map[uuid.UUID]struct{}),
	}
}

func (o *UpdateOrchestrator) acquire(profileID uuid.UUID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, busy := o.inFlight[profileID]; busy {
		return false
	}
	o.inFlight[profileID] = struct{}{}
	return true
}

func (o *UpdateOrchestrator) release(profileID uuid.UUID) {
	o.mu.Lock()
	delete(o.inFlight, profileID)
	o.mu.Unlock()
}

// ApplyProfileUpdate routes one save by modal type. Authorization is
// checked against the loaded row before any write path runs.
func (o *UpdateOrchestrator) ApplyProfileUpdate(ctx context.Context, actorID, profileID uuid.UUID, req dto.ApplyProfileUpdateRequest) (*profilemodel.ProfileModel, error) {
	if !o.acquire(profileID) {
		return nil, ErrSaveInFlight
	}
	defer o.release(profileID)

	var profile profilemodel.ProfileModel
	if err := o.DB.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("profile not found")
		}
		return nil, apperror.Store("applyProfileUpdate load", err)
	}
	if profile.ProfileUserID != actorID {
		return nil, apperror.Authorization("you can only edit your own profile")
	}

	var err error
	switch req.ModalType {
	case "profile":
		err = o.applyProfile(ctx, profileID, req.Profile)
	case "bio":
		err = o.applyBio(ctx, profileID, req.Bio)
	case "work-item":
		err = o.applyWorkItem(ctx, &profile, req.WorkItem, req.WorkItemIndex)
	case "sections":
		err = o.applySections(ctx, profileID, req.Sections, req.DeletedSectionIDs, req.DeletedFieldIDs)
	case "section-edit":
		err = o.applySectionEdit(ctx, &profile, req.SectionKey, req.Section)
	default:
		err = apperror.Validation("unknown modal_type: " + req.ModalType)
	}
	if err != nil {
		return nil, err
	}

	// Row-backed modal types rebuild the cache column from the rows;
	// the cache-only paths (work-item) wrote it directly above.
	if req.ModalType == "sections" || req.ModalType == "section-edit" {
		if err := o.RebuildSectionsCache(ctx, profileID); err != nil {
			return nil, err
		}
	}

	if err := o.DB.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&profile).Error; err != nil {
		return nil, apperror.Store("applyProfileUpdate reload", err)
	}

	username := ""
	if profile.ProfileUsername != nil {
		username = *profile.ProfileUsername
	}
	o.Inv.InvalidateProfile(ctx, profileID, username)
	return &profile, nil
}

/* =========================
   Modal write paths
   ========================= */

// applyProfile updates scalar profile columns from a whitelisted map so
// a payload can never reach profile_user_id or the sections cache.
func (o *UpdateOrchestrator) applyProfile(ctx context.Context, profileID uuid.UUID, in map[string]any) error {
	if len(in) == 0 {
		return apperror.Validation("profile payload is empty")
	}
	allowed := map[string]string{
		"profile_username":     "profile_username",
		"profile_display_name": "profile_display_name",
		"profile_bio":          "profile_bio",
		"profile_website_url":  "profile_website_url",
		"profile_email":        "profile_email",
		// tolerate the short client aliases
		"username":     "profile_username",
		"display_name": "profile_display_name",
		"bio":          "profile_bio",
		"website_url":  "profile_website_url",
		"email":        "profile_email",
	}
	updates := map[string]any{}
	for k, v := range in {
		col, ok := allowed[k]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			s = strings.TrimSpace(s)
			if col == "profile_username" || col == "profile_email" {
				s = strings.ToLower(s)
			}
			updates[col] = s
			continue
		}
		if v == nil {
			updates[col] = nil
		}
	}
	if len(updates) == 0 {
		return apperror.Validation("profile payload has no recognized fields")
	}
	if err := o.DB.WithContext(ctx).
		Model(&profilemodel.ProfileModel{}).
		Where("profile_id = ?", profileID).
		Updates(updates).Error; err != nil {
		return apperror.Store("applyProfile", err)
	}
	return nil
}

func (o *UpdateOrchestrator) applyBio(ctx context.Context, profileID uuid.UUID, bio *string) error {
	if bio == nil {
		return apperror.Validation("bio payload is missing")
	}
	if err := o.DB.WithContext(ctx).
		Model(&profilemodel.ProfileModel{}).
		Where("profile_id = ?", profileID).
		Update("profile_bio", strings.TrimSpace(*bio)).Error; err != nil {
		return apperror.Store("applyBio", err)
	}
	return nil
}

// applyWorkItem edits one entry of the work_experience cache section in
// place. This is the one modal type that writes the cache column
// directly instead of going through rows: the work editor predates the
// section store and its payloads are plain maps.
func (o *UpdateOrchestrator) applyWorkItem(ctx context.Context, profile *profilemodel.ProfileModel, item map[string]any, index *int) error {
	if len(item) == 0 {
		return apperror.Validation("work_item payload is empty")
	}

	raw := map[string]any{}
	if len(profile.ProfileSections) > 0 {
		if err := json.Unmarshal(profile.ProfileSections, &raw); err != nil {
			log.Printf("[ERROR] profile %s has unreadable sections cache: %v", profile.ProfileID, err)
			raw = map[string]any{}
		}
	}

	entry, _ := raw["work_experience"].(map[string]any)
	if entry == nil {
		entry = map[string]any{
			"section_key":   "work_experience",
			"section_title": "Work Experience",
		}
	}
	items, _ := entry["fields"].([]any)
	if index != nil && *index >= 0 && *index < len(items) {
		items[*index] = item
	} else {
		items = append(items, item)
	}
	entry["fields"] = items
	raw["work_experience"] = entry

	return o.writeSectionsCache(ctx, profile.ProfileID, raw)
}

// applySections persists the reconciliation engine's full editable
// state. Deletions are explicit ids collected by the engine; only
// uuid-parseable ids reach the store, placeholder deletions are local
// to the editor and need no write. Surviving sections partition on id
// class: persisted ids update, placeholders create.
func (o *UpdateOrchestrator) applySections(ctx context.Context, profileID uuid.UUID, sections []reconcile.Section, deletedSectionIDs, deletedFieldIDs []string) error {
	for _, id := range deletedFieldIDs {
		fid, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		if err := o.Repo.DeleteField(ctx, fid); err != nil {
			return err
		}
	}
	for _, id := range deletedSectionIDs {
		sid, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		if err := o.Repo.DeleteSection(ctx, sid); err != nil {
			return err
		}
	}

	for i, sec := range sections {
		order := i
		patches := reconcile.ToPersistableFields(sec)
		writes := fieldWritesFromPatches(patches)

		if reconcile.IsPersistedID(sec.ID) {
			sid, err := uuid.Parse(sec.ID)
			if err != nil {
				// numeric legacy section ids never map to a row; recreate
				if _, _, err := o.Repo.CreateSection(ctx, profileID, repository.CreateSectionInput{
					Title:        sec.Title,
					SectionKey:   sec.Key,
					DisplayOrder: &order,
					Fields:       writes,
				}); err != nil {
					return err
				}
				continue
			}
			title := sec.Title
			key := sec.Key
			if _, err := o.Repo.UpdateSection(ctx, sid, repository.SectionPatch{
				Title:        &title,
				SectionKey:   &key,
				DisplayOrder: &order,
			}, writes); err != nil {
				return err
			}
			continue
		}

		if _, _, err := o.Repo.CreateSection(ctx, profileID, repository.CreateSectionInput{
			Title:        sec.Title,
			SectionKey:   sec.Key,
			DisplayOrder: &order,
			Fields:       writes,
		}); err != nil {
			return err
		}
	}
	return nil
}

// applySectionEdit saves one whole section from the section editor.
// section_key is required: without it the merge cannot find the cache
// entry and the save is rejected up front. The effective content is the
// old cache entry merged with the payload (new wins key-by-key); the
// rows are then replaced transactionally and the cache column rebuilt
// from rows by the shared tail, so cache and rows cannot diverge.
func (o *UpdateOrchestrator) applySectionEdit(ctx context.Context, profile *profilemodel.ProfileModel, sectionKey *string, payload map[string]any) error {
	if sectionKey == nil || strings.TrimSpace(*sectionKey) == "" {
		return apperror.Validation("section_key is required for a section edit")
	}
	if payload == nil {
		return apperror.Validation("section payload is missing")
	}
	key := strings.TrimSpace(*sectionKey)

	raw := map[string]any{}
	if len(profile.ProfileSections) > 0 {
		if err := json.Unmarshal(profile.ProfileSections, &raw); err != nil {
			raw = map[string]any{}
		}
	}
	old, _ := raw[key].(map[string]any)
	merged := reconcile.MergeCacheSection(old, payload)
	if _, ok := merged["section_key"]; !ok {
		merged["section_key"] = key
	}

	sections := reconcile.Normalize(map[string]any{key: merged})
	if len(sections) == 0 {
		return apperror.Validation("section payload normalized to nothing")
	}
	sec := sections[0]
	sec.Key = key
	writes := fieldWritesFromPatches(reconcile.ToPersistableFields(sec))
	title := sec.Title

	if reconcile.IsPersistedID(sec.ID) {
		if sid, err := uuid.Parse(sec.ID); err == nil {
			_, err := o.Repo.ReplaceSectionFields(ctx, sid, repository.SectionPatch{
				Title:      &title,
				SectionKey: &key,
			}, writes)
			return err
		}
	}
	_, _, err := o.Repo.CreateSection(ctx, profile.ProfileID, repository.CreateSectionInput{
		Title:      title,
		SectionKey: key,
		Fields:     writes,
	})
	return err
}

/* =========================
   Cache rebuild
   ========================= */

// RebuildSectionsCache projects the section/field rows back into the
// profile_sections jsonb column. Rows are the source of truth; the
// column is only ever derived from them here.
func (o *UpdateOrchestrator) RebuildSectionsCache(ctx context.Context, profileID uuid.UUID) error {
	rows, err := o.Repo.ListSectionsWithFields(ctx, profileID)
	if err != nil {
		return err
	}
	return o.writeSectionsCache(ctx, profileID, reconcile.ToCacheMap(RowsToSections(rows)))
}

func (o *UpdateOrchestrator) writeSectionsCache(ctx context.Context, profileID uuid.UUID, m map[string]any) error {
	data, err := json.Marshal(m)
	if err != nil {
		return apperror.Store("writeSectionsCache marshal", err)
	}
	if err := o.DB.WithContext(ctx).
		Model(&profilemodel.ProfileModel{}).
		Where("profile_id = ?", profileID).
		Update("profile_sections", data).Error; err != nil {
		return apperror.Store("writeSectionsCache", err)
	}
	return nil
}

// RowsToSections adapts store rows into the engine's editable shape.
func RowsToSections(rows []repository.SectionWithFields) []reconcile.Section {
	out := make([]reconcile.Section, 0, len(rows))
	for _, sw := range rows {
		sec := reconcile.Section{
			ID:     sw.Section.ProfileSectionID.String(),
			Key:    sw.Section.ProfileSectionKey,
			Title:  sw.Section.ProfileSectionTitle,
			Fields: make([]reconcile.Field, 0, len(sw.Fields)),
		}
		for _, f := range sw.Fields {
			sec.Fields = append(sec.Fields, reconcile.Field{
				ID:    f.ProfileSectionFieldID.String(),
				Label: f.ProfileSectionFieldLabel,
				Value: f.ProfileSectionFieldValue,
				Type:  string(f.ProfileSectionFieldType),
			})
		}
		out = append(out, sec)
	}
	return out
}

func fieldWritesFromPatches(patches []reconcile.FieldPatch) []repository.FieldWrite {
	out := make([]repository.FieldWrite, 0, len(patches))
	for _, p := range patches {
		p := p
		out = append(out, repository.FieldWrite{
			ID:           p.ID,
			FieldKey:     p.FieldKey,
			FieldLabel:   p.FieldLabel,
			FieldValue:   p.FieldValue,
			FieldType:    p.FieldType,
			DisplayOrder: &p.DisplayOrder,
		})
	}
	return out
}
