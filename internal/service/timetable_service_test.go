package service

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcampus/scs-api/internal/dto"
	"github.com/smartcampus/scs-api/internal/models"
	appErrors "github.com/smartcampus/scs-api/pkg/errors"
	"github.com/smartcampus/scs-api/pkg/random"
)

// scriptedSource replays a fixed float sequence and always picks index 0, so
// allocation outcomes are fully determined by the script.
type scriptedSource struct {
	floats []float64
	pos    int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.pos%len(s.floats)]
	s.pos++
	return v
}

func (s *scriptedSource) Intn(n int) int { return 0 }

func (s *scriptedSource) Shuffle(n int, swap func(i, j int)) {}

type catalogStub struct {
	catalog *models.ResourceCatalog
	err     error
}

func (c *catalogStub) Snapshot(ctx context.Context, departmentID string) (*models.ResourceCatalog, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.catalog, nil
}

type gridStoreStub struct {
	entries  []models.TimetableEntry
	replaced []models.TimetableEntry
	err      error
}

func (g *gridStoreStub) ListBySection(ctx context.Context, departmentID, sectionID string) ([]models.TimetableEntry, error) {
	return g.entries, g.err
}

func (g *gridStoreStub) Replace(ctx context.Context, departmentID, sectionID string, entries []models.TimetableEntry) error {
	if g.err != nil {
		return g.err
	}
	g.replaced = entries
	return nil
}

type notifierStub struct {
	published int
}

func (n *notifierStub) NotifyTimetablePublished(ctx context.Context, departmentID, sectionID string, entryCount int) {
	n.published++
}

func fixtureTeacher(id, name, subject string, days ...string) models.Teacher {
	if len(days) == 0 {
		days = models.WorkingDays
	}
	return models.Teacher{
		ID:           id,
		DepartmentID: "dept-1",
		Name:         name,
		Subject:      subject,
		Availability: pq.StringArray(days),
	}
}

func fixtureCatalog(teachers []models.Teacher, classrooms []models.Classroom, slots []models.TimeSlot) *models.ResourceCatalog {
	return &models.ResourceCatalog{
		DepartmentID: "dept-1",
		Teachers:     teachers,
		Classrooms:   classrooms,
		ActiveSlots:  slots,
	}
}

var fixtureSlots = []models.TimeSlot{
	{ID: "slot-1", Name: "Period 1", StartTime: "09:00", EndTime: "10:00", IsActive: true},
	{ID: "slot-2", Name: "Period 2", StartTime: "10:00", EndTime: "11:00", IsActive: true},
}

var fixtureRooms = []models.Classroom{
	{ID: "room-1", DepartmentID: "dept-1", Name: "Room 101", Capacity: 30},
	{ID: "room-2", DepartmentID: "dept-1", Name: "Room 102", Capacity: 40},
}

func newTimetableFixture(catalog *models.ResourceCatalog, src random.Source) (*TimetableService, *gridStoreStub, *notifierStub) {
	store := &gridStoreStub{}
	notifier := &notifierStub{}
	svc := NewTimetableService(&catalogStub{catalog: catalog}, store, notifier, src, 0.6, nil, nil)
	return svc, store, notifier
}

func TestTimetableGenerateFillsCellsAndCopiesSubject(t *testing.T) {
	catalog := fixtureCatalog(
		[]models.Teacher{fixtureTeacher("t-1", "Asha Rao", "Mathematics")},
		fixtureRooms, fixtureSlots,
	)
	// Every draw below the fill probability: all four cells attempted.
	svc, _, _ := newTimetableFixture(catalog, &scriptedSource{floats: []float64{0.1}})

	resp, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		DepartmentID: "dept-1",
		SectionID:    "sec-a",
		TeacherIDs:   []string{"t-1"},
		ClassroomIDs: []string{"room-1", "room-2"},
		Days:         []string{"Monday", "Tuesday"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Scheduled)
	assert.Empty(t, resp.Conflicts)
	for _, entry := range resp.Entries {
		assert.Equal(t, "Mathematics", entry.Subject)
		assert.Equal(t, "Asha Rao", entry.TeacherName)
		assert.Equal(t, "dept-1", entry.DepartmentID)
		assert.Equal(t, "sec-a", entry.SectionID)
		assert.False(t, entry.IsSubstituted)
	}
}

func TestTimetableGenerateSkipsCellsAboveFillProbability(t *testing.T) {
	catalog := fixtureCatalog(
		[]models.Teacher{fixtureTeacher("t-1", "Asha Rao", "Mathematics")},
		fixtureRooms, fixtureSlots,
	)
	// Alternate below/above the 0.6 threshold: half the cells stay empty.
	svc, _, _ := newTimetableFixture(catalog, &scriptedSource{floats: []float64{0.1, 0.9}})

	resp, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		DepartmentID: "dept-1",
		SectionID:    "sec-a",
		TeacherIDs:   []string{"t-1"},
		ClassroomIDs: []string{"room-1"},
		Days:         []string{"Monday", "Tuesday"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Scheduled)
	assert.Empty(t, resp.Conflicts)
}

func TestTimetableGenerateNeverDoubleBooksWithinACell(t *testing.T) {
	teachers := []models.Teacher{
		fixtureTeacher("t-1", "Asha Rao", "Mathematics"),
		fixtureTeacher("t-2", "Vikram Iyer", "Physics"),
	}
	catalog := fixtureCatalog(teachers, fixtureRooms, fixtureSlots)
	svc, _, _ := newTimetableFixture(catalog, random.NewSeeded(42))

	resp, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		DepartmentID: "dept-1",
		SectionID:    "sec-a",
		TeacherIDs:   []string{"t-1", "t-2"},
		ClassroomIDs: []string{"room-1", "room-2"},
		Days:         models.WorkingDays,
	})
	require.NoError(t, err)

	seenTeacher := make(map[string]bool)
	seenRoom := make(map[string]bool)
	for _, entry := range resp.Entries {
		teacherKey := entry.Day + "|" + entry.TimeSlot + "|" + entry.TeacherID
		roomKey := entry.Day + "|" + entry.TimeSlot + "|" + entry.ClassroomID
		assert.False(t, seenTeacher[teacherKey], "teacher double-booked at %s %s", entry.Day, entry.TimeSlot)
		assert.False(t, seenRoom[roomKey], "classroom double-booked at %s %s", entry.Day, entry.TimeSlot)
		seenTeacher[teacherKey] = true
		seenRoom[roomKey] = true
	}
}

func TestTimetableGenerateRecordsConflictWhenNoTeacherAvailable(t *testing.T) {
	// The only teacher never works Mondays, so every attempted Monday cell
	// raises a conflict in generation order.
	catalog := fixtureCatalog(
		[]models.Teacher{fixtureTeacher("t-1", "Asha Rao", "Mathematics", "Tuesday", "Wednesday")},
		fixtureRooms, fixtureSlots,
	)
	svc, _, _ := newTimetableFixture(catalog, &scriptedSource{floats: []float64{0.1}})

	resp, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		DepartmentID: "dept-1",
		SectionID:    "sec-a",
		TeacherIDs:   []string{"t-1"},
		ClassroomIDs: []string{"room-1"},
		Days:         []string{"Monday"},
	})
	require.NoError(t, err)
	assert.Zero(t, resp.Scheduled)
	require.Len(t, resp.Conflicts, 2)
	assert.Equal(t, "No available teachers for Monday 09:00-10:00", resp.Conflicts[0])
	assert.Equal(t, "No available teachers for Monday 10:00-11:00", resp.Conflicts[1])
}

func TestTimetableGenerateRejectsUnknownTeacher(t *testing.T) {
	catalog := fixtureCatalog(
		[]models.Teacher{fixtureTeacher("t-1", "Asha Rao", "Mathematics")},
		fixtureRooms, fixtureSlots,
	)
	svc, _, _ := newTimetableFixture(catalog, &scriptedSource{floats: []float64{0.1}})

	_, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		DepartmentID: "dept-1",
		SectionID:    "sec-a",
		TeacherIDs:   []string{"ghost"},
		ClassroomIDs: []string{"room-1"},
		Days:         []string{"Monday"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTimetableGenerateRejectsEmptyDepartmentPools(t *testing.T) {
	catalog := fixtureCatalog(nil, fixtureRooms, fixtureSlots)
	svc, _, _ := newTimetableFixture(catalog, &scriptedSource{floats: []float64{0.1}})

	_, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		DepartmentID: "dept-1",
		SectionID:    "sec-a",
		TeacherIDs:   []string{"t-1"},
		ClassroomIDs: []string{"room-1"},
		Days:         []string{"Monday"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

func TestTimetableGenerateRejectsEmptySelection(t *testing.T) {
	catalog := fixtureCatalog(
		[]models.Teacher{fixtureTeacher("t-1", "Asha Rao", "Mathematics")},
		fixtureRooms, fixtureSlots,
	)
	svc, _, _ := newTimetableFixture(catalog, &scriptedSource{floats: []float64{0.1}})

	_, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		DepartmentID: "dept-1",
		SectionID:    "sec-a",
		TeacherIDs:   nil,
		ClassroomIDs: []string{"room-1"},
		Days:         []string{"Monday"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimetableSaveReplacesGridAndNotifies(t *testing.T) {
	catalog := fixtureCatalog(
		[]models.Teacher{fixtureTeacher("t-1", "Asha Rao", "Mathematics")},
		fixtureRooms, fixtureSlots,
	)
	svc, store, notifier := newTimetableFixture(catalog, &scriptedSource{floats: []float64{0.1}})

	entries, err := svc.Save(context.Background(), dto.SaveTimetableRequest{
		DepartmentID: "dept-1",
		SectionID:    "sec-a",
		Entries: []dto.TimetableEntryPayload{
			{Day: "Monday", TimeSlot: "09:00-10:00", Subject: "Mathematics", TeacherID: "t-1", TeacherName: "Asha Rao", ClassroomID: "room-1", ClassroomName: "Room 101"},
		},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, store.replaced, 1)
	assert.Equal(t, "dept-1", store.replaced[0].DepartmentID)
	assert.Equal(t, 1, notifier.published)
}

func TestTimetableSaveRejectsUnknownDay(t *testing.T) {
	catalog := fixtureCatalog(
		[]models.Teacher{fixtureTeacher("t-1", "Asha Rao", "Mathematics")},
		fixtureRooms, fixtureSlots,
	)
	svc, store, _ := newTimetableFixture(catalog, &scriptedSource{floats: []float64{0.1}})

	_, err := svc.Save(context.Background(), dto.SaveTimetableRequest{
		DepartmentID: "dept-1",
		SectionID:    "sec-a",
		Entries: []dto.TimetableEntryPayload{
			{Day: "Sunday", TimeSlot: "09:00-10:00", Subject: "Mathematics", TeacherID: "t-1", TeacherName: "Asha Rao", ClassroomID: "room-1", ClassroomName: "Room 101"},
		},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.replaced)
}
