package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcampus/scs-api/internal/models"
)

type teacherReaderStub struct {
	teachers []models.Teacher
	calls    int
}

func (s *teacherReaderStub) ListByDepartment(ctx context.Context, departmentID string) ([]models.Teacher, error) {
	s.calls++
	return s.teachers, nil
}

type classroomReaderStub struct {
	classrooms []models.Classroom
}

func (s *classroomReaderStub) ListByDepartment(ctx context.Context, departmentID string) ([]models.Classroom, error) {
	return s.classrooms, nil
}

type slotReaderStub struct {
	slots []models.TimeSlot
}

func (s *slotReaderStub) ListActive(ctx context.Context) ([]models.TimeSlot, error) {
	return s.slots, nil
}

type cacheStub struct {
	values  map[string]string
	deleted []string
}

func newCacheStub() *cacheStub {
	return &cacheStub{values: make(map[string]string)}
}

func (c *cacheStub) Get(ctx context.Context, key string) (string, error) {
	return c.values[key], nil
}

func (c *cacheStub) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *cacheStub) Delete(ctx context.Context, key string) error {
	delete(c.values, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *cacheStub) DeleteByPrefix(ctx context.Context, prefix string) error {
	for key := range c.values {
		if strings.HasPrefix(key, prefix) {
			delete(c.values, key)
			c.deleted = append(c.deleted, key)
		}
	}
	return nil
}

func TestCatalogSnapshotPopulatesAndReadsCache(t *testing.T) {
	teachers := &teacherReaderStub{teachers: []models.Teacher{fixtureTeacher("t-1", "Asha Rao", "Mathematics")}}
	cache := newCacheStub()
	svc := NewCatalogService(teachers, &classroomReaderStub{classrooms: fixtureRooms}, &slotReaderStub{slots: fixtureSlots}, cache, time.Minute, nil)

	first, err := svc.Snapshot(context.Background(), "dept-1")
	require.NoError(t, err)
	assert.Len(t, first.Teachers, 1)
	assert.Equal(t, 1, teachers.calls)

	second, err := svc.Snapshot(context.Background(), "dept-1")
	require.NoError(t, err)
	assert.Equal(t, first.DepartmentID, second.DepartmentID)
	assert.Equal(t, 1, teachers.calls, "second snapshot must come from cache")
}

func TestCatalogSnapshotSurvivesMalformedCacheEntry(t *testing.T) {
	teachers := &teacherReaderStub{teachers: []models.Teacher{fixtureTeacher("t-1", "Asha Rao", "Mathematics")}}
	cache := newCacheStub()
	cache.values["catalog:dept-1"] = "{not json"
	svc := NewCatalogService(teachers, &classroomReaderStub{classrooms: fixtureRooms}, &slotReaderStub{slots: fixtureSlots}, cache, time.Minute, nil)

	catalog, err := svc.Snapshot(context.Background(), "dept-1")
	require.NoError(t, err)
	assert.Len(t, catalog.Teachers, 1)
	assert.Equal(t, 1, teachers.calls)
}

func TestCatalogInvalidateDropsCachedSnapshot(t *testing.T) {
	teachers := &teacherReaderStub{teachers: []models.Teacher{fixtureTeacher("t-1", "Asha Rao", "Mathematics")}}
	cache := newCacheStub()
	svc := NewCatalogService(teachers, &classroomReaderStub{classrooms: fixtureRooms}, &slotReaderStub{slots: fixtureSlots}, cache, time.Minute, nil)

	_, err := svc.Snapshot(context.Background(), "dept-1")
	require.NoError(t, err)

	svc.Invalidate(context.Background(), "dept-1")
	assert.Contains(t, cache.deleted, "catalog:dept-1")

	_, err = svc.Snapshot(context.Background(), "dept-1")
	require.NoError(t, err)
	assert.Equal(t, 2, teachers.calls, "invalidation must force a database reload")
}

func TestCatalogInvalidateAllFlushesEveryDepartment(t *testing.T) {
	teachers := &teacherReaderStub{teachers: []models.Teacher{fixtureTeacher("t-1", "Asha Rao", "Mathematics")}}
	cache := newCacheStub()
	svc := NewCatalogService(teachers, &classroomReaderStub{classrooms: fixtureRooms}, &slotReaderStub{slots: fixtureSlots}, cache, time.Minute, nil)

	_, err := svc.Snapshot(context.Background(), "dept-1")
	require.NoError(t, err)
	_, err = svc.Snapshot(context.Background(), "dept-2")
	require.NoError(t, err)

	svc.InvalidateAll(context.Background())

	assert.Empty(t, cache.values)
	assert.ElementsMatch(t, []string{"catalog:dept-1", "catalog:dept-2"}, cache.deleted)
}

func TestCatalogSnapshotWithoutCache(t *testing.T) {
	teachers := &teacherReaderStub{teachers: []models.Teacher{fixtureTeacher("t-1", "Asha Rao", "Mathematics")}}
	svc := NewCatalogService(teachers, &classroomReaderStub{classrooms: fixtureRooms}, &slotReaderStub{slots: fixtureSlots}, nil, time.Minute, nil)

	catalog, err := svc.Snapshot(context.Background(), "dept-1")
	require.NoError(t, err)

	raw, err := json.Marshal(catalog)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Asha Rao")
}
