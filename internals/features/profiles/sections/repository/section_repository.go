// file: internals/features/profiles/sections/repository/section_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"profilku_backend/internals/features/profiles/sections/model"
	helper "profilku_backend/internals/helpers"
	"profilku_backend/internals/helpers/apperror"
)

// SectionRepository is the only component that reads or writes section
// and field rows.
type SectionRepository struct {
	DB *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{DB: db}
}

type SectionWithFields struct {
	Section model.ProfileSectionModel        `json:"section"`
	Fields  []model.ProfileSectionFieldModel `json:"fields"`
}

// FieldWrite is one incoming field for create/update. A set DisplayOrder
// wins; nil means "use the array index" (create) or "append" (update).
type FieldWrite struct {
	ID           string
	FieldKey     string
	FieldLabel   string
	FieldValue   string
	FieldType    string
	DisplayOrder *int
}

type CreateSectionInput struct {
	Title        string
	SectionKey   string // derived from Title when empty
	DisplayOrder *int   // next free order when nil
	Fields       []FieldWrite
}

type SectionPatch struct {
	Title        *string
	SectionKey   *string
	DisplayOrder *int
}

/* =========================
   Reads
   ========================= */

// ListSectionsWithFields returns the profile's sections ordered by
// display_order asc, each with its fields ordered the same way. Empty
// slice, never nil, when the profile has no sections.
func (r *SectionRepository) ListSectionsWithFields(ctx context.Context, profileID uuid.UUID) ([]SectionWithFields, error) {
	var sections []model.ProfileSectionModel
	if err := r.DB.WithContext(ctx).
		Where("profile_section_profile_id = ?", profileID).
		Order("profile_section_display_order ASC").
		Find(&sections).Error; err != nil {
		return nil, apperror.Store("listSectionsWithFields", err)
	}

	out := make([]SectionWithFields, 0, len(sections))
	if len(sections) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.ProfileSectionID)
	}

	var fields []model.ProfileSectionFieldModel
	if err := r.DB.WithContext(ctx).
		Where("profile_section_field_section_id IN ?", ids).
		Order("profile_section_field_display_order ASC").
		Find(&fields).Error; err != nil {
		return nil, apperror.Store("listSectionsWithFields", err)
	}

	grouped := make(map[uuid.UUID][]model.ProfileSectionFieldModel, len(sections))
	for _, f := range fields {
		grouped[f.ProfileSectionFieldSectionID] = append(grouped[f.ProfileSectionFieldSectionID], f)
	}
	for _, s := range sections {
		fs := grouped[s.ProfileSectionID]
		if fs == nil {
			fs = []model.ProfileSectionFieldModel{}
		}
		out = append(out, SectionWithFields{Section: s, Fields: fs})
	}
	return out, nil
}

// GetSection loads one section with fields. NotFound is fatal here, the
// caller is opening it for edit.
func (r *SectionRepository) GetSection(ctx context.Context, sectionID uuid.UUID) (*SectionWithFields, error) {
	var sec model.ProfileSectionModel
	if err := r.DB.WithContext(ctx).
		Where("profile_section_id = ?", sectionID).
		First(&sec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("section not found, it may have been removed elsewhere")
		}
		return nil, apperror.Store("getSection", err)
	}
	var fields []model.ProfileSectionFieldModel
	if err := r.DB.WithContext(ctx).
		Where("profile_section_field_section_id = ?", sectionID).
		Order("profile_section_field_display_order ASC").
		Find(&fields).Error; err != nil {
		return nil, apperror.Store("getSection", err)
	}
	return &SectionWithFields{Section: sec, Fields: fields}, nil
}

func (r *SectionRepository) CountSectionsByKey(ctx context.Context, profileID uuid.UUID, sectionKey string) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).
		Model(&model.ProfileSectionModel{}).
		Where("profile_section_profile_id = ? AND profile_section_key = ?", profileID, sectionKey).
		Count(&count).Error; err != nil {
		return 0, apperror.Store("countSectionsByKey", err)
	}
	return count, nil
}

/* =========================
   Writes
   ========================= */

// CreateSection inserts the section row, then bulk-inserts its fields.
// The two steps are deliberately not wrapped in a transaction: a field
// insert failure leaves the section behind with incomplete fields, and
// the caller must re-fetch to see what landed (documented consistency
// gap; the section editor can re-open and re-save).
func (r *SectionRepository) CreateSection(ctx context.Context, profileID uuid.UUID, in CreateSectionInput) (*model.ProfileSectionModel, []model.ProfileSectionFieldModel, error) {
	key := in.SectionKey
	if key == "" {
		key = helper.SectionKey(in.Title)
	}

	order := 0
	if in.DisplayOrder != nil {
		order = *in.DisplayOrder
	} else {
		next, err := r.nextSectionOrder(ctx, profileID)
		if err != nil {
			return nil, nil, err
		}
		order = next
	}

	sec := model.ProfileSectionModel{
		ProfileSectionProfileID:    profileID,
		ProfileSectionTitle:        in.Title,
		ProfileSectionKey:          key,
		ProfileSectionDisplayOrder: order,
	}
	if err := r.DB.WithContext(ctx).Create(&sec).Error; err != nil {
		return nil, nil, apperror.Store("createSection", err)
	}

	fields := make([]model.ProfileSectionFieldModel, 0, len(in.Fields))
	for i, fw := range in.Fields {
		fo := i
		if fw.DisplayOrder != nil {
			fo = *fw.DisplayOrder
		}
		fields = append(fields, model.ProfileSectionFieldModel{
			ProfileSectionFieldSectionID:    sec.ProfileSectionID,
			ProfileSectionFieldKey:          fieldKeyOr(fw),
			ProfileSectionFieldLabel:        fw.FieldLabel,
			ProfileSectionFieldValue:        fw.FieldValue,
			ProfileSectionFieldType:         model.ParseFieldType(fw.FieldType),
			ProfileSectionFieldDisplayOrder: fo,
		})
	}
	if len(fields) > 0 {
		if err := r.DB.WithContext(ctx).Create(&fields).Error; err != nil {
			// section row exists but fields are incomplete; surface it
			return nil, nil, apperror.Store("createSection fields", err)
		}
	}
	return &sec, fields, nil
}

// UpdateSection updates the section row unconditionally, then partitions
// the incoming fields: known ids update in place, unknown or absent ids
// insert with a generated key and the following order. Fields missing
// from the incoming list are NOT deleted; removal is a separate explicit
// call, issued by the reconciliation engine. The asymmetry keeps an
// update safe against partial client state.
func (r *SectionRepository) UpdateSection(ctx context.Context, sectionID uuid.UUID, patch SectionPatch, fields []FieldWrite) (*SectionWithFields, error) {
	var sec model.ProfileSectionModel
	if err := r.DB.WithContext(ctx).
		Where("profile_section_id = ?", sectionID).
		First(&sec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("section not found, it may have been removed elsewhere")
		}
		return nil, apperror.Store("updateSection", err)
	}

	updates := map[string]any{}
	if patch.Title != nil {
		updates["profile_section_title"] = *patch.Title
	}
	if patch.SectionKey != nil {
		updates["profile_section_key"] = *patch.SectionKey
	}
	if patch.DisplayOrder != nil {
		updates["profile_section_display_order"] = *patch.DisplayOrder
	}
	if len(updates) > 0 {
		if err := r.DB.WithContext(ctx).
			Model(&model.ProfileSectionModel{}).
			Where("profile_section_id = ?", sectionID).
			Updates(updates).Error; err != nil {
			return nil, apperror.Store("updateSection", err)
		}
	}

	var existing []model.ProfileSectionFieldModel
	if err := r.DB.WithContext(ctx).
		Where("profile_section_field_section_id = ?", sectionID).
		Find(&existing).Error; err != nil {
		return nil, apperror.Store("updateSection fields", err)
	}
	known := make(map[uuid.UUID]struct{}, len(existing))
	nextOrder := 0
	for _, f := range existing {
		known[f.ProfileSectionFieldID] = struct{}{}
		if f.ProfileSectionFieldDisplayOrder >= nextOrder {
			nextOrder = f.ProfileSectionFieldDisplayOrder + 1
		}
	}

	for _, fw := range fields {
		id, err := uuid.Parse(fw.ID)
		_, isKnown := known[id]
		if err == nil && isKnown {
			fu := map[string]any{
				"profile_section_field_key":   fieldKeyOr(fw),
				"profile_section_field_label": fw.FieldLabel,
				"profile_section_field_value": fw.FieldValue,
				"profile_section_field_type":  string(model.ParseFieldType(fw.FieldType)),
			}
			if fw.DisplayOrder != nil {
				fu["profile_section_field_display_order"] = *fw.DisplayOrder
			}
			if err := r.DB.WithContext(ctx).
				Model(&model.ProfileSectionFieldModel{}).
				Where("profile_section_field_id = ?", id).
				Updates(fu).Error; err != nil {
				return nil, apperror.Store("updateSection field update", err)
			}
			continue
		}

		fo := nextOrder
		if fw.DisplayOrder != nil {
			fo = *fw.DisplayOrder
		} else {
			nextOrder++
		}
		row := model.ProfileSectionFieldModel{
			ProfileSectionFieldSectionID:    sectionID,
			ProfileSectionFieldKey:          fieldKeyOr(fw),
			ProfileSectionFieldLabel:        fw.FieldLabel,
			ProfileSectionFieldValue:        fw.FieldValue,
			ProfileSectionFieldType:         model.ParseFieldType(fw.FieldType),
			ProfileSectionFieldDisplayOrder: fo,
		}
		if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
			return nil, apperror.Store("updateSection field insert", err)
		}
	}

	return r.GetSection(ctx, sectionID)
}

// DeleteSection removes the section and its fields, then re-densifies the
// profile's remaining section orders to 0..n-1. Idempotent: deleting an
// id that is already gone succeeds with zero rows affected.
func (r *SectionRepository) DeleteSection(ctx context.Context, sectionID uuid.UUID) error {
	var sec model.ProfileSectionModel
	if err := r.DB.WithContext(ctx).
		Where("profile_section_id = ?", sectionID).
		First(&sec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperror.Store("deleteSection", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_section_field_section_id = ?", sectionID).
			Delete(&model.ProfileSectionFieldModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_section_id = ?", sectionID).
			Delete(&model.ProfileSectionModel{}).Error; err != nil {
			return err
		}
		return densifySectionOrders(tx, sec.ProfileSectionProfileID)
	})
	if err != nil {
		return apperror.Store("deleteSection", err)
	}
	return nil
}

// DeleteField removes one field row and re-densifies its siblings.
// Idempotent like DeleteSection.
func (r *SectionRepository) DeleteField(ctx context.Context, fieldID uuid.UUID) error {
	var f model.ProfileSectionFieldModel
	if err := r.DB.WithContext(ctx).
		Where("profile_section_field_id = ?", fieldID).
		First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperror.Store("deleteField", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_section_field_id = ?", fieldID).
			Delete(&model.ProfileSectionFieldModel{}).Error; err != nil {
			return err
		}
		return densifyFieldOrders(tx, f.ProfileSectionFieldSectionID)
	})
	if err != nil {
		return apperror.Store("deleteField", err)
	}
	return nil
}

// ReplaceSectionFields is the row-level path of a whole-section edit:
// title update, delete every field row, bulk insert the new list with
// fresh sequential orders — in one transaction, so the old
// delete-then-insert data-loss window cannot occur.
func (r *SectionRepository) ReplaceSectionFields(ctx context.Context, sectionID uuid.UUID, patch SectionPatch, fields []FieldWrite) (*SectionWithFields, error) {
	var sec model.ProfileSectionModel
	if err := r.DB.WithContext(ctx).
		Where("profile_section_id = ?", sectionID).
		First(&sec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("section not found, it may have been removed elsewhere")
		}
		return nil, apperror.Store("replaceSectionFields", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{}
		if patch.Title != nil {
			updates["profile_section_title"] = *patch.Title
		}
		if patch.SectionKey != nil {
			updates["profile_section_key"] = *patch.SectionKey
		}
		if len(updates) > 0 {
			if err := tx.Model(&model.ProfileSectionModel{}).
				Where("profile_section_id = ?", sectionID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("profile_section_field_section_id = ?", sectionID).
			Delete(&model.ProfileSectionFieldModel{}).Error; err != nil {
			return err
		}
		rows := make([]model.ProfileSectionFieldModel, 0, len(fields))
		for i, fw := range fields {
			rows = append(rows, model.ProfileSectionFieldModel{
				ProfileSectionFieldSectionID:    sectionID,
				ProfileSectionFieldKey:          fieldKeyOr(fw),
				ProfileSectionFieldLabel:        fw.FieldLabel,
				ProfileSectionFieldValue:        fw.FieldValue,
				ProfileSectionFieldType:         model.ParseFieldType(fw.FieldType),
				ProfileSectionFieldDisplayOrder: i,
			})
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperror.Store("replaceSectionFields", err)
	}
	return r.GetSection(ctx, sectionID)
}

/* =========================
   Reorder
   ========================= */

// ReorderSections rewrites display_order = index for each id, scoped to
// the owning profile so a foreign id cannot be moved. Not atomic across
// rows: a mid-sequence failure leaves a mixed order and the caller
// re-fetches and retries.
func (r *SectionRepository) ReorderSections(ctx context.Context, profileID uuid.UUID, orderedIDs []uuid.UUID) error {
	for i, id := range orderedIDs {
		if err := r.DB.WithContext(ctx).
			Model(&model.ProfileSectionModel{}).
			Where("profile_section_id = ? AND profile_section_profile_id = ?", id, profileID).
			Update("profile_section_display_order", i).Error; err != nil {
			return apperror.Store("reorderSections", err)
		}
	}
	return nil
}

// ReorderFields: same contract as ReorderSections, scoped to the section.
func (r *SectionRepository) ReorderFields(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	for i, id := range orderedIDs {
		if err := r.DB.WithContext(ctx).
			Model(&model.ProfileSectionFieldModel{}).
			Where("profile_section_field_id = ? AND profile_section_field_section_id = ?", id, sectionID).
			Update("profile_section_field_display_order", i).Error; err != nil {
			return apperror.Store("reorderFields", err)
		}
	}
	return nil
}

/* =========================
   Internal
   ========================= */

func (r *SectionRepository) nextSectionOrder(ctx context.Context, profileID uuid.UUID) (int, error) {
	var max *int
	if err := r.DB.WithContext(ctx).
		Model(&model.ProfileSectionModel{}).
		Where("profile_section_profile_id = ?", profileID).
		Select("MAX(profile_section_display_order)").
		Scan(&max).Error; err != nil {
		return 0, apperror.Store("nextSectionOrder", err)
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

func densifySectionOrders(tx *gorm.DB, profileID uuid.UUID) error {
	var sections []model.ProfileSectionModel
	if err := tx.Where("profile_section_profile_id = ?", profileID).
		Order("profile_section_display_order ASC").
		Find(&sections).Error; err != nil {
		return err
	}
	for i, s := range sections {
		if s.ProfileSectionDisplayOrder == i {
			continue
		}
		if err := tx.Model(&model.ProfileSectionModel{}).
			Where("profile_section_id = ?", s.ProfileSectionID).
			Update("profile_section_display_order", i).Error; err != nil {
			return err
		}
	}
	return nil
}

func densifyFieldOrders(tx *gorm.DB, sectionID uuid.UUID) error {
	var fields []model.ProfileSectionFieldModel
	if err := tx.Where("profile_section_field_section_id = ?", sectionID).
		Order("profile_section_field_display_order ASC").
		Find(&fields).Error; err != nil {
		return err
	}
	for i, f := range fields {
		if f.ProfileSectionFieldDisplayOrder == i {
			continue
		}
		if err := tx.Model(&model.ProfileSectionFieldModel{}).
			Where("profile_section_field_id = ?", f.ProfileSectionFieldID).
			Update("profile_section_field_display_order", i).Error; err != nil {
			return err
		}
	}
	return nil
}

func fieldKeyOr(fw FieldWrite) string {
	if fw.FieldKey != "" {
		return fw.FieldKey
	}
	return helper.FieldKey(fw.FieldLabel)
}
