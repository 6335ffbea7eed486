package models

// Grade is the mark a student achieved in a module.
type Grade struct {
	ID        int64 `db:"id" json:"id"`
	StudentID int64 `db:"student_id" json:"student_id"`
	ModuleID  int64 `db:"module_id" json:"module_id"`
	Value     int   `db:"grade" json:"value"`
}
