package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smartcampus/scs-api/internal/dto"
	"github.com/smartcampus/scs-api/internal/models"
	appErrors "github.com/smartcampus/scs-api/pkg/errors"
	"github.com/smartcampus/scs-api/pkg/export"
)

type exportGridReader interface {
	ListBySection(ctx context.Context, departmentID, sectionID string) ([]models.TimetableEntry, error)
}

type exportArchive interface {
	Save(filename string, data []byte) (string, error)
}

// ExportFile is a rendered document ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders timetables and seating plans to CSV and PDF. Every
// rendered file is also written to local storage as an audit copy.
type ExportService struct {
	grid      exportGridReader
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	archive   exportArchive
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService wires the export dependencies. A nil archive disables
// audit copies.
func NewExportService(grid exportGridReader, archive exportArchive, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		grid:      grid,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		archive:   archive,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// TimetableCSV renders the stored grid of one section as a flat CSV list.
// Substituted entries carry the substitution flag and the original teacher.
func (s *ExportService) TimetableCSV(ctx context.Context, departmentID, sectionID string) (*ExportFile, error) {
	entries, err := s.loadGrid(ctx, departmentID, sectionID)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{
		Headers: []string{"Day", "Time Slot", "Subject", "Teacher", "Classroom", "Substituted", "Original Teacher"},
	}
	for _, entry := range entries {
		substituted := "No"
		original := ""
		if entry.IsSubstituted {
			substituted = "Yes"
			if entry.OriginalTeacherID != nil {
				original = *entry.OriginalTeacherID
			}
		}
		data.Rows = append(data.Rows, []string{
			entry.Day, entry.TimeSlot, entry.Subject, entry.TeacherName, entry.ClassroomName, substituted, original,
		})
	}

	payload, err := s.csv.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render timetable csv")
	}
	return s.finish(fmt.Sprintf("timetable_%s_%s.csv", departmentID, sectionID), "text/csv", payload), nil
}

// TimetablePDF renders the stored grid of one section as a landscape week
// grid: one row per time slot, one column per working day.
func (s *ExportService) TimetablePDF(ctx context.Context, departmentID, sectionID string) (*ExportFile, error) {
	entries, err := s.loadGrid(ctx, departmentID, sectionID)
	if err != nil {
		return nil, err
	}

	byCell := make(map[models.CellKey]models.TimetableEntry, len(entries))
	slotSet := make(map[string]bool)
	for _, entry := range entries {
		byCell[entry.Cell()] = entry
		slotSet[entry.TimeSlot] = true
	}
	slots := make([]string, 0, len(slotSet))
	for slot := range slotSet {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	data := export.Dataset{Headers: append([]string{"Time"}, models.WorkingDays...)}
	for _, slot := range slots {
		row := []string{slot}
		for _, day := range models.WorkingDays {
			entry, ok := byCell[models.CellKey{Day: day, TimeSlot: slot}]
			if !ok {
				row = append(row, "-")
				continue
			}
			cell := fmt.Sprintf("%s\n%s (%s)", entry.Subject, entry.TeacherName, entry.ClassroomName)
			if entry.IsSubstituted {
				cell += " *"
			}
			row = append(row, cell)
		}
		data.Rows = append(data.Rows, row)
	}

	subtitle := fmt.Sprintf("Generated %s  |  * substituted class", s.now().UTC().Format("2006-01-02 15:04 MST"))
	payload, err := s.pdf.Render(data, "Weekly Timetable", subtitle, true)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render timetable pdf")
	}
	return s.finish(fmt.Sprintf("timetable_%s_%s.pdf", departmentID, sectionID), "application/pdf", payload), nil
}

// SeatingCSV renders a seating plan with the exam name as a preamble line.
func (s *ExportService) SeatingCSV(ctx context.Context, req dto.ExportSeatingRequest) (*ExportFile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid seating export request")
	}

	data := export.Dataset{
		Headers: []string{"Classroom", "Seat No", "Roll Number", "Student Name", "Branch"},
	}
	for _, entry := range req.Entries {
		data.Rows = append(data.Rows, []string{
			entry.Classroom,
			fmt.Sprintf("%d", entry.SeatNo),
			entry.RollNumber,
			entry.StudentName,
			entry.Branch,
		})
	}

	preamble := []string{
		fmt.Sprintf("Exam: %s", req.ExamName),
		fmt.Sprintf("Generated: %s", s.now().UTC().Format("2006-01-02 15:04 MST")),
	}
	payload, err := s.csv.Render(data, preamble...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render seating csv")
	}

	slug := strings.ToLower(strings.ReplaceAll(req.ExamName, " ", "_"))
	return s.finish(fmt.Sprintf("seating_%s.csv", slug), "text/csv", payload), nil
}

func (s *ExportService) loadGrid(ctx context.Context, departmentID, sectionID string) ([]models.TimetableEntry, error) {
	if departmentID == "" || sectionID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "department and section are required")
	}
	entries, err := s.grid.ListBySection(ctx, departmentID, sectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load timetable")
	}
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no timetable stored for section")
	}
	return entries, nil
}

func (s *ExportService) finish(filename, contentType string, payload []byte) *ExportFile {
	if s.archive != nil {
		if _, err := s.archive.Save(filename, payload); err != nil {
			s.logger.Warn("export archive write failed", zap.String("filename", filename), zap.Error(err))
		}
	}
	return &ExportFile{Filename: filename, ContentType: contentType, Payload: payload}
}
