package models

// Student is registered on a single course.
type Student struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	CourseID int64  `db:"course_id" json:"course_id"`
}
