package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcampus/scs-api/internal/dto"
	"github.com/smartcampus/scs-api/internal/models"
	appErrors "github.com/smartcampus/scs-api/pkg/errors"
)

// subGridStub applies the substitution rewrite in memory, mirroring the SQL
// update: the original teacher reference is only set the first time.
type subGridStub struct {
	entries []models.TimetableEntry
}

func (g *subGridStub) ListBySection(ctx context.Context, departmentID, sectionID string) ([]models.TimetableEntry, error) {
	out := make([]models.TimetableEntry, len(g.entries))
	copy(out, g.entries)
	return out, nil
}

func (g *subGridStub) ApplySubstitution(ctx context.Context, departmentID, sectionID, absentTeacherID, substituteTeacherID, substituteName, subject string) (int, error) {
	affected := 0
	for i := range g.entries {
		if g.entries[i].TeacherID != absentTeacherID {
			continue
		}
		if g.entries[i].OriginalTeacherID == nil {
			original := absentTeacherID
			g.entries[i].OriginalTeacherID = &original
		}
		g.entries[i].TeacherID = substituteTeacherID
		g.entries[i].TeacherName = substituteName
		g.entries[i].Subject = subject
		g.entries[i].IsSubstituted = true
		affected++
	}
	return affected, nil
}

type subTeachersStub struct {
	teachers map[string]*models.Teacher
}

func (s *subTeachersStub) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, ok := s.teachers[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return teacher, nil
}

func (s *subTeachersStub) ListByDepartment(ctx context.Context, departmentID string) ([]models.Teacher, error) {
	out := make([]models.Teacher, 0, len(s.teachers))
	for _, teacher := range s.teachers {
		out = append(out, *teacher)
	}
	return out, nil
}

type subNotifierStub struct {
	calls int
}

func (n *subNotifierStub) NotifySubstitution(ctx context.Context, departmentID, sectionID, absentName, substituteName string, affected int) {
	n.calls++
}

func entry(day, slot, teacherID, teacherName, subject string) models.TimetableEntry {
	return models.TimetableEntry{
		DepartmentID: "dept-1",
		SectionID:    "sec-a",
		Day:          day,
		TimeSlot:     slot,
		Subject:      subject,
		TeacherID:    teacherID,
		TeacherName:  teacherName,
	}
}

func newSubstitutionFixture(grid *subGridStub, teachers map[string]*models.Teacher) (*SubstitutionService, *subNotifierStub) {
	notifier := &subNotifierStub{}
	svc := NewSubstitutionService(grid, &subTeachersStub{teachers: teachers}, notifier, nil, nil)
	return svc, notifier
}

func substitutionTeachers() map[string]*models.Teacher {
	ta := fixtureTeacher("t-1", "Asha Rao", "Mathematics")
	tb := fixtureTeacher("t-2", "Vikram Iyer", "Physics")
	tc := fixtureTeacher("t-3", "Meera Nair", "Chemistry")
	return map[string]*models.Teacher{"t-1": &ta, "t-2": &tb, "t-3": &tc}
}

func TestSubstitutionApplyRewritesEntriesAndRetainsOriginal(t *testing.T) {
	grid := &subGridStub{entries: []models.TimetableEntry{
		entry("Monday", "09:00-10:00", "t-1", "Asha Rao", "Mathematics"),
		entry("Tuesday", "10:00-11:00", "t-1", "Asha Rao", "Mathematics"),
		entry("Monday", "10:00-11:00", "t-2", "Vikram Iyer", "Physics"),
	}}
	svc, notifier := newSubstitutionFixture(grid, substitutionTeachers())

	resp, err := svc.Apply(context.Background(), dto.SubstituteRequest{
		DepartmentID:        "dept-1",
		SectionID:           "sec-a",
		AbsentTeacherID:     "t-1",
		SubstituteTeacherID: "t-3",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.AffectedCount)
	assert.Equal(t, 1, notifier.calls)

	for _, e := range grid.entries {
		if e.Day == "Monday" && e.TimeSlot == "10:00-11:00" {
			assert.Equal(t, "t-2", e.TeacherID, "unrelated entry must not change")
			continue
		}
		assert.Equal(t, "t-3", e.TeacherID)
		assert.Equal(t, "Meera Nair", e.TeacherName)
		assert.Equal(t, "Chemistry", e.Subject)
		assert.True(t, e.IsSubstituted)
		require.NotNil(t, e.OriginalTeacherID)
		assert.Equal(t, "t-1", *e.OriginalTeacherID)
	}
}

func TestSubstitutionChainKeepsFirstOriginalTeacher(t *testing.T) {
	grid := &subGridStub{entries: []models.TimetableEntry{
		entry("Monday", "09:00-10:00", "t-1", "Asha Rao", "Mathematics"),
	}}
	svc, _ := newSubstitutionFixture(grid, substitutionTeachers())

	_, err := svc.Apply(context.Background(), dto.SubstituteRequest{
		DepartmentID: "dept-1", SectionID: "sec-a",
		AbsentTeacherID: "t-1", SubstituteTeacherID: "t-2",
	})
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), dto.SubstituteRequest{
		DepartmentID: "dept-1", SectionID: "sec-a",
		AbsentTeacherID: "t-2", SubstituteTeacherID: "t-3",
	})
	require.NoError(t, err)

	require.NotNil(t, grid.entries[0].OriginalTeacherID)
	assert.Equal(t, "t-1", *grid.entries[0].OriginalTeacherID, "chain substitution must keep the very first teacher")
	assert.Equal(t, "t-3", grid.entries[0].TeacherID)
}

func TestSubstitutionApplyRejectsOverlappingSubstitute(t *testing.T) {
	grid := &subGridStub{entries: []models.TimetableEntry{
		entry("Monday", "09:00-10:00", "t-1", "Asha Rao", "Mathematics"),
		entry("Monday", "09:00-10:00", "t-2", "Vikram Iyer", "Physics"),
	}}
	svc, notifier := newSubstitutionFixture(grid, substitutionTeachers())

	_, err := svc.Apply(context.Background(), dto.SubstituteRequest{
		DepartmentID: "dept-1", SectionID: "sec-a",
		AbsentTeacherID: "t-1", SubstituteTeacherID: "t-2",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoSubstitute.Code, appErrors.FromError(err).Code)
	assert.Zero(t, notifier.calls)
	assert.Equal(t, "t-1", grid.entries[0].TeacherID, "rejected substitution must not mutate the grid")
}

func TestSubstitutionApplyRejectsAbsentSubstitute(t *testing.T) {
	teachers := substitutionTeachers()
	teachers["t-3"].IsAbsent = true
	grid := &subGridStub{entries: []models.TimetableEntry{
		entry("Monday", "09:00-10:00", "t-1", "Asha Rao", "Mathematics"),
	}}
	svc, _ := newSubstitutionFixture(grid, teachers)

	_, err := svc.Apply(context.Background(), dto.SubstituteRequest{
		DepartmentID: "dept-1", SectionID: "sec-a",
		AbsentTeacherID: "t-1", SubstituteTeacherID: "t-3",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestSubstitutionApplyNoEntriesIsNoop(t *testing.T) {
	grid := &subGridStub{}
	svc, notifier := newSubstitutionFixture(grid, substitutionTeachers())

	resp, err := svc.Apply(context.Background(), dto.SubstituteRequest{
		DepartmentID: "dept-1", SectionID: "sec-a",
		AbsentTeacherID: "t-1", SubstituteTeacherID: "t-2",
	})
	require.NoError(t, err)
	assert.Zero(t, resp.AffectedCount)
	assert.Zero(t, notifier.calls)
}

func TestSubstitutionCandidatesExcludesClashingAndAbsentTeachers(t *testing.T) {
	teachers := substitutionTeachers()
	teachers["t-3"].IsAbsent = true
	grid := &subGridStub{entries: []models.TimetableEntry{
		entry("Monday", "09:00-10:00", "t-1", "Asha Rao", "Mathematics"),
		entry("Monday", "09:00-10:00", "t-2", "Vikram Iyer", "Physics"),
	}}
	svc, _ := newSubstitutionFixture(grid, teachers)

	candidates, err := svc.Candidates(context.Background(), "dept-1", "sec-a", "t-1")
	require.NoError(t, err)
	assert.Empty(t, candidates, "t-2 clashes, t-3 is absent, t-1 is the absentee")
}

func TestSubstitutionCandidatesReturnsFreeTeachers(t *testing.T) {
	grid := &subGridStub{entries: []models.TimetableEntry{
		entry("Monday", "09:00-10:00", "t-1", "Asha Rao", "Mathematics"),
		entry("Tuesday", "09:00-10:00", "t-2", "Vikram Iyer", "Physics"),
	}}
	svc, _ := newSubstitutionFixture(grid, substitutionTeachers())

	candidates, err := svc.Candidates(context.Background(), "dept-1", "sec-a", "t-1")
	require.NoError(t, err)
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{"t-2", "t-3"}, ids)
}
