package repository

import "github.com/jmoiron/sqlx"

// Store bundles the record repositories the report builder reads from.
type Store struct {
	Courses    *CourseRepository
	Modules    *ModuleRepository
	Lecturers  *LecturerRepository
	Students   *StudentRepository
	Enrolments *EnrolmentRepository
	Grades     *GradeRepository
}

// NewStore builds every repository over the same connection pool.
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		Courses:    NewCourseRepository(db),
		Modules:    NewModuleRepository(db),
		Lecturers:  NewLecturerRepository(db),
		Students:   NewStudentRepository(db),
		Enrolments: NewEnrolmentRepository(db),
		Grades:     NewGradeRepository(db),
	}
}
