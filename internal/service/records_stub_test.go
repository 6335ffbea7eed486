package service

import (
	"context"

	"github.com/noah-isme/cms-report-api/internal/models"
)

// recordsFixture is an in-memory record store shared by the reader stubs.
// Slices are kept in ID order, mirroring the ORDER BY id of the repositories.
type recordsFixture struct {
	courses    []models.Course
	modules    []models.Module
	lecturers  []models.Lecturer
	students   []models.Student
	enrolments []models.Enrolment
	grades     []models.Grade
	err        error
}

type courseStub struct{ f *recordsFixture }

func (s courseStub) List(ctx context.Context) ([]models.Course, error) {
	if s.f.err != nil {
		return nil, s.f.err
	}
	return append([]models.Course(nil), s.f.courses...), nil
}

func (s courseStub) FindByID(ctx context.Context, id int64) (models.Course, bool, error) {
	if s.f.err != nil {
		return models.Course{}, false, s.f.err
	}
	for _, c := range s.f.courses {
		if c.ID == id {
			return c, true, nil
		}
	}
	return models.Course{}, false, nil
}

type moduleStub struct{ f *recordsFixture }

func (s moduleStub) ListByCourse(ctx context.Context, courseID int64) ([]models.Module, error) {
	if s.f.err != nil {
		return nil, s.f.err
	}
	var out []models.Module
	for _, m := range s.f.modules {
		if m.CourseID == courseID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s moduleStub) ListByLecturer(ctx context.Context, lecturerID int64) ([]models.Module, error) {
	if s.f.err != nil {
		return nil, s.f.err
	}
	var out []models.Module
	for _, m := range s.f.modules {
		if m.LecturerID == lecturerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s moduleStub) FindByID(ctx context.Context, id int64) (models.Module, bool, error) {
	if s.f.err != nil {
		return models.Module{}, false, s.f.err
	}
	for _, m := range s.f.modules {
		if m.ID == id {
			return m, true, nil
		}
	}
	return models.Module{}, false, nil
}

type lecturerStub struct{ f *recordsFixture }

func (s lecturerStub) FindByID(ctx context.Context, id int64) (models.Lecturer, bool, error) {
	if s.f.err != nil {
		return models.Lecturer{}, false, s.f.err
	}
	for _, l := range s.f.lecturers {
		if l.ID == id {
			return l, true, nil
		}
	}
	return models.Lecturer{}, false, nil
}

type studentStub struct{ f *recordsFixture }

func (s studentStub) FindByID(ctx context.Context, id int64) (models.Student, bool, error) {
	if s.f.err != nil {
		return models.Student{}, false, s.f.err
	}
	for _, st := range s.f.students {
		if st.ID == id {
			return st, true, nil
		}
	}
	return models.Student{}, false, nil
}

type enrolmentStub struct{ f *recordsFixture }

func (s enrolmentStub) ListByStudent(ctx context.Context, studentID int64) ([]models.Enrolment, error) {
	if s.f.err != nil {
		return nil, s.f.err
	}
	var out []models.Enrolment
	for _, e := range s.f.enrolments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s enrolmentStub) CountByModule(ctx context.Context, moduleID int64) (int, error) {
	if s.f.err != nil {
		return 0, s.f.err
	}
	total := 0
	for _, e := range s.f.enrolments {
		if e.ModuleID == moduleID {
			total++
		}
	}
	return total, nil
}

type gradeStub struct{ f *recordsFixture }

func (s gradeStub) FindByStudentAndModule(ctx context.Context, studentID, moduleID int64) (models.Grade, bool, error) {
	if s.f.err != nil {
		return models.Grade{}, false, s.f.err
	}
	for _, g := range s.f.grades {
		if g.StudentID == studentID && g.ModuleID == moduleID {
			return g, true, nil
		}
	}
	return models.Grade{}, false, nil
}

func newBuilderForTest(f *recordsFixture) *ReportBuilder {
	return NewReportBuilder(courseStub{f}, moduleStub{f}, lecturerStub{f}, studentStub{f}, enrolmentStub{f}, gradeStub{f}, nil)
}

// sampleRecords is the CS scenario: Dr. A teaches Algo to two students,
// DB points at a lecturer that no longer exists.
func sampleRecords() *recordsFixture {
	return &recordsFixture{
		courses: []models.Course{
			{ID: 1, Name: "CS", Type: models.CourseTypeInClass, Level: 8},
			{ID: 2, Name: "Empty"},
		},
		modules: []models.Module{
			{ID: 10, CourseID: 1, Name: "Algo", LecturerID: 100, Room: "R1"},
			{ID: 11, CourseID: 1, Name: "DB", LecturerID: 999, Room: "R2"},
		},
		lecturers: []models.Lecturer{
			{ID: 100, Name: "Dr. A", Role: "Senior Lecturer", TeachingTypes: "lecture, lab"},
			{ID: 101, Name: "Dr. B", Role: "Lecturer", TeachingTypes: "online"},
		},
		students: []models.Student{
			{ID: 7, Name: "Bo", CourseID: 1},
			{ID: 8, Name: "Cy", CourseID: 1},
			{ID: 9, Name: "Di", CourseID: 42},
		},
		enrolments: []models.Enrolment{
			{ID: 1, StudentID: 7, ModuleID: 10, Status: "completed"},
			{ID: 2, StudentID: 8, ModuleID: 10, Status: "enrolled"},
			{ID: 3, StudentID: 7, ModuleID: 11, Status: "Completed"},
			{ID: 4, StudentID: 7, ModuleID: 55, Status: "completed"},
			{ID: 5, StudentID: 8, ModuleID: 11, Status: "completed"},
		},
		grades: []models.Grade{
			{ID: 1, StudentID: 7, ModuleID: 10, Value: 72},
			{ID: 2, StudentID: 7, ModuleID: 55, Value: 64},
			{ID: 3, StudentID: 7, ModuleID: 10, Value: 10},
		},
	}
}
