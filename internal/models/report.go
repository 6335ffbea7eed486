package models

// ReportKind enumerates the reports the service can build.
type ReportKind string

const (
	ReportKindCourse       ReportKind = "course"
	ReportKindStudent      ReportKind = "student"
	ReportKindLecturer     ReportKind = "lecturer"
	ReportKindLecturerSelf ReportKind = "lecturer_self"
)
