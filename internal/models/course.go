package models

// CourseType enumerates delivery modes for a course.
type CourseType string

const (
	CourseTypeInClass CourseType = "in_class"
	CourseTypeOnline  CourseType = "online"
	CourseTypeBlended CourseType = "blended"
)

// Course is a programme of study made up of modules.
type Course struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	Type        CourseType `db:"course_type" json:"type"`
	Level       int        `db:"qqi_level" json:"level"`
}
