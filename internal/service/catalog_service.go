package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/smartcampus/scs-api/internal/models"
)

type catalogTeacherReader interface {
	ListByDepartment(ctx context.Context, departmentID string) ([]models.Teacher, error)
}

type catalogClassroomReader interface {
	ListByDepartment(ctx context.Context, departmentID string) ([]models.Classroom, error)
}

type catalogSlotReader interface {
	ListActive(ctx context.Context) ([]models.TimeSlot, error)
}

type catalogCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// CatalogService assembles the resource snapshot the allocators consume. The
// snapshot is cached in Redis per department and invalidated whenever a
// teacher, classroom or time slot changes.
type CatalogService struct {
	teachers   catalogTeacherReader
	classrooms catalogClassroomReader
	slots      catalogSlotReader
	cache      catalogCache
	ttl        time.Duration
	logger     *zap.Logger
}

// NewCatalogService wires the catalog dependencies. A nil cache disables
// caching entirely.
func NewCatalogService(
	teachers catalogTeacherReader,
	classrooms catalogClassroomReader,
	slots catalogSlotReader,
	cache catalogCache,
	ttl time.Duration,
	logger *zap.Logger,
) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &CatalogService{
		teachers:   teachers,
		classrooms: classrooms,
		slots:      slots,
		cache:      cache,
		ttl:        ttl,
		logger:     logger,
	}
}

func catalogCacheKey(departmentID string) string {
	return fmt.Sprintf("catalog:%s", departmentID)
}

// Snapshot returns the resource catalog for one department, from cache when
// fresh. Cache failures degrade to a direct database read.
func (s *CatalogService) Snapshot(ctx context.Context, departmentID string) (*models.ResourceCatalog, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, catalogCacheKey(departmentID)); err == nil && raw != "" {
			var catalog models.ResourceCatalog
			if err := json.Unmarshal([]byte(raw), &catalog); err == nil {
				return &catalog, nil
			}
			s.logger.Warn("discarding malformed catalog cache entry", zap.String("department_id", departmentID))
		}
	}

	teachers, err := s.teachers.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("load teachers: %w", err)
	}
	classrooms, err := s.classrooms.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("load classrooms: %w", err)
	}
	slots, err := s.slots.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load time slots: %w", err)
	}

	catalog := &models.ResourceCatalog{
		DepartmentID: departmentID,
		Teachers:     teachers,
		Classrooms:   classrooms,
		ActiveSlots:  slots,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(catalog); err == nil {
			if err := s.cache.Set(ctx, catalogCacheKey(departmentID), string(raw), s.ttl); err != nil {
				s.logger.Warn("catalog cache write failed", zap.String("department_id", departmentID), zap.Error(err))
			}
		}
	}
	return catalog, nil
}

// Invalidate drops the cached snapshot of one department.
func (s *CatalogService) Invalidate(ctx context.Context, departmentID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, catalogCacheKey(departmentID)); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.String("department_id", departmentID), zap.Error(err))
	}
}

// InvalidateAll drops every cached snapshot. Time slots are global, so a slot
// change touches all departments at once.
func (s *CatalogService) InvalidateAll(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPrefix(ctx, "catalog:"); err != nil {
		s.logger.Warn("catalog cache flush failed", zap.Error(err))
	}
}
