// file: internals/features/profiles/sections/repository/section_repository_test.go
package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	profilemodel "profilku_backend/internals/features/profiles/profile/model"
	"profilku_backend/internals/features/profiles/sections/model"
	"profilku_backend/internals/helpers/apperror"
)

func newTestRepo(t *testing.T) (*SectionRepository, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&profilemodel.ProfileModel{},
		&model.ProfileSectionModel{},
		&model.ProfileSectionFieldModel{},
	))

	profile := profilemodel.ProfileModel{
		ProfileUserID:      uuid.New(),
		ProfileDisplayName: "Sari",
		ProfileSections:    []byte("{}"),
	}
	require.NoError(t, db.Create(&profile).Error)
	return NewSectionRepository(db), profile.ProfileID
}

func intPtr(n int) *int { return &n }

func seedSection(t *testing.T, r *SectionRepository, profileID uuid.UUID, title string, labels ...string) *model.ProfileSectionModel {
	t.Helper()
	fields := make([]FieldWrite, 0, len(labels))
	for _, l := range labels {
		fields = append(fields, FieldWrite{FieldLabel: l, FieldValue: l + " value", FieldType: "text"})
	}
	sec, _, err := r.CreateSection(context.Background(), profileID, CreateSectionInput{
		Title:  title,
		Fields: fields,
	})
	require.NoError(t, err)
	return sec
}

func TestCreateSectionDerivesKeyAndAppends(t *testing.T) {
	r, profileID := newTestRepo(t)
	ctx := context.Background()

	first := seedSection(t, r, profileID, "Work Experience", "Company", "Position")
	assert.Equal(t, "work_experience", first.ProfileSectionKey)
	assert.Equal(t, 0, first.ProfileSectionDisplayOrder)

	second := seedSection(t, r, profileID, "Education")
	assert.Equal(t, 1, second.ProfileSectionDisplayOrder, "new section appends after existing ones")

	rows, err := r.ListSectionsWithFields(ctx, profileID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "work_experience", rows[0].Section.ProfileSectionKey)
	require.Len(t, rows[0].Fields, 2)
	assert.Equal(t, "company", rows[0].Fields[0].ProfileSectionFieldKey)
	assert.Equal(t, 0, rows[0].Fields[0].ProfileSectionFieldDisplayOrder)
	assert.Equal(t, 1, rows[0].Fields[1].ProfileSectionFieldDisplayOrder)
}

func TestListSectionsEmptyIsNotNil(t *testing.T) {
	r, profileID := newTestRepo(t)
	rows, err := r.ListSectionsWithFields(context.Background(), profileID)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestGetSectionNotFound(t *testing.T) {
	r, _ := newTestRepo(t)
	_, err := r.GetSection(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

// An update carrying one known field id and one new field must update
// the existing row in place and insert exactly one new row, never
// duplicate.
func TestUpdateSectionPartitionsKnownAndNewFields(t *testing.T) {
	r, profileID := newTestRepo(t)
	ctx := context.Background()

	sec := seedSection(t, r, profileID, "Work Experience", "Company")
	before, err := r.GetSection(ctx, sec.ProfileSectionID)
	require.NoError(t, err)
	require.Len(t, before.Fields, 1)
	companyID := before.Fields[0].ProfileSectionFieldID

	after, err := r.UpdateSection(ctx, sec.ProfileSectionID, SectionPatch{}, []FieldWrite{
		{ID: companyID.String(), FieldLabel: "Company", FieldValue: "Globex", FieldType: "text"},
		{FieldLabel: "Position", FieldValue: "Engineer", FieldType: "text"},
	})
	require.NoError(t, err)
	require.Len(t, after.Fields, 2)

	assert.Equal(t, companyID, after.Fields[0].ProfileSectionFieldID, "known id updates in place")
	assert.Equal(t, "Globex", after.Fields[0].ProfileSectionFieldValue)
	assert.Equal(t, "Engineer", after.Fields[1].ProfileSectionFieldValue)
	assert.Equal(t, 1, after.Fields[1].ProfileSectionFieldDisplayOrder, "new field appends after existing orders")
}

// Fields absent from the update payload survive: removal is a separate
// explicit delete.
func TestUpdateSectionNeverDeletesAbsentFields(t *testing.T) {
	r, profileID := newTestRepo(t)
	ctx := context.Background()

	sec := seedSection(t, r, profileID, "Work Experience", "Company", "Position")
	after, err := r.UpdateSection(ctx, sec.ProfileSectionID, SectionPatch{}, nil)
	require.NoError(t, err)
	assert.Len(t, after.Fields, 2)
}

func TestUpdateSectionUnknownIDInserts(t *testing.T) {
	r, profileID := newTestRepo(t)
	ctx := context.Background()

	sec := seedSection(t, r, profileID, "Work Experience", "Company")
	// a uuid that is not in this section inserts rather than updating air
	after, err := r.UpdateSection(ctx, sec.ProfileSectionID, SectionPatch{}, []FieldWrite{
		{ID: uuid.NewString(), FieldLabel: "Ghost", FieldValue: "boo", FieldType: "text"},
	})
	require.NoError(t, err)
	require.Len(t, after.Fields, 2)
	assert.Equal(t, "boo", after.Fields[1].ProfileSectionFieldValue)
}

func TestUpdateSectionPreservesEmptyValue(t *testing.T) {
	r, profileID := newTestRepo(t)
	ctx := context.Background()

	sec := seedSection(t, r, profileID, "Work Experience", "End Date")
	before, err := r.GetSection(ctx, sec.ProfileSectionID)
	require.NoError(t, err)

	after, err := r.UpdateSection(ctx, sec.ProfileSectionID, SectionPatch{}, []FieldWrite{
		{ID: before.Fields[0].ProfileSectionFieldID.String(), FieldLabel: "End Date", FieldValue: "", FieldType: "date"},
	})
	require.NoError(t, err)
	assert.Equal(t, "", after.Fields[0].ProfileSectionFieldValue, "cleared value persists as blank")
}

func TestDeleteSectionIsIdempotentAndDensifies(t *testing.T) {
	r, profileID := newTestRepo(t)
	ctx := context.Background()

	a := seedSection(t, r, profileID, "A", "x")
	b := seedSection(t, r, profileID, "B")
	c := seedSection(t, r, profileID, "C")

	require.NoError(t, r.DeleteSection(ctx, b.ProfileSectionID))
	// double delete of the same id succeeds
	require.NoError(t, r.DeleteSection(ctx, b.ProfileSectionID))
	// deleting a never-existing id succeeds too
	require.NoError(t, r.DeleteSection(ctx, uuid.New()))

	rows, err := r.ListSectionsWithFields(ctx, profileID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, a.ProfileSectionID, rows[0].Section.ProfileSectionID)
	assert.Equal(t, 0, rows[0].Section.ProfileSectionDisplayOrder)
	assert.Equal(t, c.ProfileSectionID, rows[1].Section.ProfileSectionID)
	assert.Equal(t, 1, rows[1].Section.ProfileSectionDisplayOrder, "orders re-densify after delete")

	// the deleted section's fields are gone with it
	var count int64
	require.NoError(t, r.DB.Model(&model.ProfileSectionFieldModel{}).
		Where("profile_section_field_section_id = ?", b.ProfileSectionID).
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteFieldIsIdempotentAndDensifies(t *testing.T) {
	r, profileID := newTestRepo(t)
	ctx := context.Background()

	sec := seedSection(t, r, profileID, "Work Experience", "A", "B", "C")
	sw, err := r.GetSection(ctx, sec.ProfileSectionID)
	require.NoError(t, err)
	middle := sw.Fields[1].ProfileSectionFieldID

	require.NoError(t, r.DeleteField(ctx, middle))
	require.NoError(t, r.DeleteField(ctx, middle))

	sw, err = r.GetSection(ctx, sec.ProfileSectionID)
	require.NoError(t, err)
	require.Len(t, sw.Fields, 2)
	assert.Equal(t, "A", sw.Fields[0].ProfileSectionFieldLabel)
	assert.Equal(t, 0, sw.Fields[0].ProfileSectionFieldDisplayOrder)
	assert.Equal(t, "C", sw.Fields[1].ProfileSectionFieldLabel)
	assert.Equal(t, 1, sw.Fields[1].ProfileSectionFieldDisplayOrder)
}

func TestReplaceSectionFields(t *testing.T) {
	r, profileID := newTestRepo(t)
	ctx := context.Background()

	sec := seedSection(t, r, profileID, "Work Experience", "Company", "Position")
	title := "Career"
	after, err := r.ReplaceSectionFields(ctx, sec.ProfileSectionID, SectionPatch{Title: &title}, []FieldWrite{
		{FieldLabel: "Role", FieldValue: "CTO", FieldType: "text"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Career", after.Section.ProfileSectionTitle)
	require.Len(t, after.Fields, 1)
	assert.Equal(t, "Role", after.Fields[0].ProfileSectionFieldLabel)
	assert.Equal(t, 0, after.Fields[0].ProfileSectionFieldDisplayOrder)

	// no orphan rows from the replaced set
	var count int64
	require.NoError(t, r.DB.Model(&model.ProfileSectionFieldModel{}).
		Where("profile_section_field_section_id = ?", sec.ProfileSectionID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestReorderSectionsScopedToProfile(t *testing.T) {
	r, profileID := newTestRepo(t)
	ctx := context.Background()

	a := seedSection(t, r, profileID, "A")
	b := seedSection(t, r, profileID, "B")

	// a foreign profile's section id must not move
	otherProfile := profilemodel.ProfileModel{ProfileUserID: uuid.New(), ProfileDisplayName: "Other", ProfileSections: []byte("{}")}
	require.NoError(t, r.DB.Create(&otherProfile).Error)
	foreign := seedSection(t, r, otherProfile.ProfileID, "Foreign")

	require.NoError(t, r.ReorderSections(ctx, profileID, []uuid.UUID{b.ProfileSectionID, a.ProfileSectionID, foreign.ProfileSectionID}))

	rows, err := r.ListSectionsWithFields(ctx, profileID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, b.ProfileSectionID, rows[0].Section.ProfileSectionID)
	assert.Equal(t, a.ProfileSectionID, rows[1].Section.ProfileSectionID)

	var untouched model.ProfileSectionModel
	require.NoError(t, r.DB.Where("profile_section_id = ?", foreign.ProfileSectionID).First(&untouched).Error)
	assert.Equal(t, 0, untouched.ProfileSectionDisplayOrder)
}

func TestReorderFields(t *testing.T) {
	r, profileID := newTestRepo(t)
	ctx := context.Background()

	sec := seedSection(t, r, profileID, "Work Experience", "A", "B")
	sw, err := r.GetSection(ctx, sec.ProfileSectionID)
	require.NoError(t, err)

	require.NoError(t, r.ReorderFields(ctx, sec.ProfileSectionID, []uuid.UUID{
		sw.Fields[1].ProfileSectionFieldID,
		sw.Fields[0].ProfileSectionFieldID,
	}))

	sw, err = r.GetSection(ctx, sec.ProfileSectionID)
	require.NoError(t, err)
	assert.Equal(t, "B", sw.Fields[0].ProfileSectionFieldLabel)
	assert.Equal(t, "A", sw.Fields[1].ProfileSectionFieldLabel)
}

func TestCountSectionsByKey(t *testing.T) {
	r, profileID := newTestRepo(t)
	ctx := context.Background()

	seedSection(t, r, profileID, "Work Experience")
	seedSection(t, r, profileID, "Work Experience")

	count, err := r.CountSectionsByKey(ctx, profileID, "work_experience")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = r.CountSectionsByKey(ctx, profileID, "education")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateSectionWithExplicitOrder(t *testing.T) {
	r, profileID := newTestRepo(t)

	sec, _, err := r.CreateSection(context.Background(), profileID, CreateSectionInput{
		Title:        "Pinned",
		DisplayOrder: intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, sec.ProfileSectionDisplayOrder)
}
