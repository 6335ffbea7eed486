package models

// EnrolmentStatusCompleted is the only status with report semantics: a grade
// is shown for it. Comparison is exact and case-sensitive.
const EnrolmentStatusCompleted = "completed"

// Enrolment links a student to a module. Status is free text.
type Enrolment struct {
	ID        int64  `db:"id" json:"id"`
	StudentID int64  `db:"student_id" json:"student_id"`
	ModuleID  int64  `db:"module_id" json:"module_id"`
	Status    string `db:"status" json:"status"`
}

// Completed reports whether the enrolment status is exactly "completed".
func (e Enrolment) Completed() bool {
	return e.Status == EnrolmentStatusCompleted
}
