package models

// Module is a unit of a course taught by one lecturer in one room.
type Module struct {
	ID         int64  `db:"id" json:"id"`
	CourseID   int64  `db:"course_id" json:"course_id"`
	Name       string `db:"name" json:"name"`
	LecturerID int64  `db:"lecturer_id" json:"lecturer_id"`
	Room       string `db:"room" json:"room"`
}
