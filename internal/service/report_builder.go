package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/cms-report-api/internal/models"
	appErrors "github.com/noah-isme/cms-report-api/pkg/errors"
)

const (
	unknownPlaceholder      = "Unknown"
	missingGradePlaceholder = "N/A"
	courseNotFoundLine      = "Course not found for student."
	studentNotFoundLine     = "Student not found."
)

type courseReader interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (models.Course, bool, error)
}

type moduleReader interface {
	ListByCourse(ctx context.Context, courseID int64) ([]models.Module, error)
	ListByLecturer(ctx context.Context, lecturerID int64) ([]models.Module, error)
	FindByID(ctx context.Context, id int64) (models.Module, bool, error)
}

type lecturerReader interface {
	FindByID(ctx context.Context, id int64) (models.Lecturer, bool, error)
}

type studentReader interface {
	FindByID(ctx context.Context, id int64) (models.Student, bool, error)
}

type enrolmentReader interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.Enrolment, error)
	CountByModule(ctx context.Context, moduleID int64) (int, error)
}

type gradeReader interface {
	FindByStudentAndModule(ctx context.Context, studentID, moduleID int64) (models.Grade, bool, error)
}

// ReportBuilder walks the record store along foreign keys and flattens the
// result into report lines. Dangling references degrade to placeholder text.
type ReportBuilder struct {
	courses    courseReader
	modules    moduleReader
	lecturers  lecturerReader
	students   studentReader
	enrolments enrolmentReader
	grades     gradeReader
	logger     *zap.Logger
}

// NewReportBuilder constructs the builder.
func NewReportBuilder(courses courseReader, modules moduleReader, lecturers lecturerReader, students studentReader, enrolments enrolmentReader, grades gradeReader, logger *zap.Logger) *ReportBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportBuilder{
		courses:    courses,
		modules:    modules,
		lecturers:  lecturers,
		students:   students,
		enrolments: enrolments,
		grades:     grades,
		logger:     logger,
	}
}

// BuildCourseReport lists every course followed by its modules.
func (b *ReportBuilder) BuildCourseReport(ctx context.Context) ([]string, error) {
	courses, err := b.courses.List(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(courses))
	for _, course := range courses {
		lines = append(lines, "Course: "+course.Name)

		modules, err := b.modules.ListByCourse(ctx, course.ID)
		if err != nil {
			return nil, err
		}
		for _, module := range modules {
			count, err := b.enrolments.CountByModule(ctx, module.ID)
			if err != nil {
				return nil, err
			}
			lecturerName := unknownPlaceholder
			lecturer, ok, err := b.lecturers.FindByID(ctx, module.LecturerID)
			if err != nil {
				return nil, err
			}
			if ok {
				lecturerName = lecturer.Name
			} else {
				b.logger.Debug("module references missing lecturer", zap.Int64("module_id", module.ID), zap.Int64("lecturer_id", module.LecturerID))
			}
			lines = append(lines, fmt.Sprintf("\tModule: %s, Enrolled Students: %d, Lecturer: %s, Room: %s", module.Name, count, lecturerName, module.Room))
		}
	}
	return lines, nil
}

// BuildStudentReport summarises a student and their enrolments. The boolean
// is false when the student does not exist; the lines then hold a single
// not-found notice.
func (b *ReportBuilder) BuildStudentReport(ctx context.Context, studentID int64) ([]string, bool, error) {
	student, ok, err := b.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return []string{studentNotFoundLine}, false, nil
	}

	courseName := courseNotFoundLine
	course, ok, err := b.courses.FindByID(ctx, student.CourseID)
	if err != nil {
		return nil, false, err
	}
	if ok {
		courseName = course.Name
	}

	enrolments, err := b.enrolments.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, false, err
	}

	lines := make([]string, 0, len(enrolments)+1)
	lines = append(lines, fmt.Sprintf("Student: %s, Student ID: %d, Course: %s", student.Name, student.ID, courseName))
	for _, enrolment := range enrolments {
		moduleName := unknownPlaceholder
		module, ok, err := b.modules.FindByID(ctx, enrolment.ModuleID)
		if err != nil {
			return nil, false, err
		}
		if ok {
			moduleName = module.Name
		}

		line := fmt.Sprintf("Module: %s, Status: %s", moduleName, enrolment.Status)
		if enrolment.Completed() {
			// the grade is keyed on the enrolment, so a missing module still resolves it
			grade, ok, err := b.grades.FindByStudentAndModule(ctx, student.ID, enrolment.ModuleID)
			if err != nil {
				return nil, false, err
			}
			value := missingGradePlaceholder
			if ok {
				value = strconv.Itoa(grade.Value)
			}
			line += ", Grade: " + value
		}
		lines = append(lines, line)
	}
	return lines, true, nil
}

// BuildLecturerReport describes a lecturer and the modules they teach.
// A missing lecturer yields ErrLecturerNotFound.
func (b *ReportBuilder) BuildLecturerReport(ctx context.Context, lecturerID int64) ([]string, error) {
	lecturer, ok, err := b.lecturers.FindByID(ctx, lecturerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrLecturerNotFound, fmt.Sprintf("lecturer %d not found", lecturerID))
	}

	modules, err := b.modules.ListByLecturer(ctx, lecturer.ID)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(modules)+1)
	lines = append(lines, fmt.Sprintf("Lecturer: %s, Role: %s, Teaching Classes: %s", lecturer.Name, lecturer.Role, lecturer.TeachingTypes))
	for _, module := range modules {
		count, err := b.enrolments.CountByModule(ctx, module.ID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("Module: %s, Enrolled Students: %d", module.Name, count))
	}
	return lines, nil
}

// BuildLecturerSelfReport is the lecturer-facing variant including rooms.
// A missing lecturer yields an empty document.
func (b *ReportBuilder) BuildLecturerSelfReport(ctx context.Context, lecturerID int64) ([]string, error) {
	lecturer, ok, err := b.lecturers.FindByID(ctx, lecturerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}

	modules, err := b.modules.ListByLecturer(ctx, lecturer.ID)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(modules)+3)
	lines = append(lines,
		"Lecturer Report for: "+lecturer.Name,
		"Role: "+lecturer.Role,
		"Teaching Classes: "+lecturer.TeachingTypes,
	)
	for _, module := range modules {
		count, err := b.enrolments.CountByModule(ctx, module.ID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("Module: %s, Enrolled Students: %d, Room: %s", module.Name, count, module.Room))
	}
	return lines, nil
}
