package models

// Lecturer teaches modules. TeachingTypes is free text such as "lecture, lab".
type Lecturer struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Email         string `db:"email" json:"email"`
	Role          string `db:"role" json:"role"`
	TeachingTypes string `db:"teaching_types" json:"teaching_types"`
}
