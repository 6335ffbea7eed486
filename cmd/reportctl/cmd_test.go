package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cms-report-api/internal/models"
	"github.com/noah-isme/cms-report-api/internal/service"
	appErrors "github.com/noah-isme/cms-report-api/pkg/errors"
	"github.com/noah-isme/cms-report-api/pkg/export"
)

type reportCall struct {
	kind    models.ReportKind
	session models.Session
	id      int64
	format  export.Format
}

type reportRunnerStub struct {
	calls    []reportCall
	location string
	err      error
	ttl      time.Duration
	removed  []string
}

func (s *reportRunnerStub) result(call reportCall) (*service.ReportResult, error) {
	s.calls = append(s.calls, call)
	if s.err != nil {
		return nil, s.err
	}
	return &service.ReportResult{Kind: call.kind, Format: call.format, Location: s.location}, nil
}

func (s *reportRunnerStub) CourseReport(ctx context.Context, session models.Session, format export.Format) (*service.ReportResult, error) {
	return s.result(reportCall{kind: models.ReportKindCourse, session: session, format: format})
}

func (s *reportRunnerStub) StudentReport(ctx context.Context, session models.Session, id int64, format export.Format) (*service.ReportResult, error) {
	return s.result(reportCall{kind: models.ReportKindStudent, session: session, id: id, format: format})
}

func (s *reportRunnerStub) LecturerReport(ctx context.Context, session models.Session, id int64, format export.Format) (*service.ReportResult, error) {
	return s.result(reportCall{kind: models.ReportKindLecturer, session: session, id: id, format: format})
}

func (s *reportRunnerStub) LecturerSelfReport(ctx context.Context, session models.Session, format export.Format) (*service.ReportResult, error) {
	return s.result(reportCall{kind: models.ReportKindLecturerSelf, session: session, format: format})
}

func (s *reportRunnerStub) Cleanup(ttl time.Duration) ([]string, error) {
	s.ttl = ttl
	return s.removed, s.err
}

func setup(t *testing.T) (*commandLine, *reportRunnerStub, *bytes.Buffer) {
	t.Helper()
	runner := &reportRunnerStub{}
	out := &bytes.Buffer{}
	return &commandLine{
		reports:       runner,
		tokens:        service.NewTokenService("secret", nil),
		out:           out,
		defaultFormat: "console",
	}, runner, out
}

type cliTest struct {
	name     string
	args     []string // without program name
	wantErr  error
	wantCall *reportCall
}

func Test_commandLine_reports(t *testing.T) {
	office := models.Session{UserID: 1, Role: models.RoleOffice}
	tests := []cliTest{
		{name: "no command", args: nil, wantErr: errHelp},
		{name: "unknown command", args: []string{"feedback"}, wantErr: errHelp},
		{name: "course default format", args: []string{"course"}, wantCall: &reportCall{kind: models.ReportKindCourse, session: office, format: export.FormatConsole}},
		{name: "course csv", args: []string{"course", "-format", "CSV"}, wantCall: &reportCall{kind: models.ReportKindCourse, session: office, format: export.FormatCSV}},
		{name: "student", args: []string{"student", "-id", "7", "-format", "txt"}, wantCall: &reportCall{kind: models.ReportKindStudent, session: office, id: 7, format: export.FormatText}},
		{name: "student without id", args: []string{"student"}, wantErr: errHelp},
		{name: "lecturer unknown format", args: []string{"lecturer", "-id", "100", "-format", "xml"}, wantCall: &reportCall{kind: models.ReportKindLecturer, session: office, id: 100, format: export.FormatRaw}},
		{name: "self", args: []string{"self", "-user-id", "100"}, wantCall: &reportCall{kind: models.ReportKindLecturerSelf, session: models.Session{UserID: 100, Role: models.RoleLecturer}, format: export.FormatConsole}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, runner, _ := setup(t)
			err := cli.run(context.Background(), append([]string{"reportctl"}, tt.args...))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, runner.calls)
				return
			}
			require.NoError(t, err)
			require.Len(t, runner.calls, 1)
			assert.Equal(t, *tt.wantCall, runner.calls[0])
		})
	}
}

func Test_commandLine_reportLocation(t *testing.T) {
	cli, runner, out := setup(t)
	runner.location = "CourseReport_1.csv"

	require.NoError(t, cli.run(context.Background(), []string{"reportctl", "course", "-format", "csv"}))
	assert.Contains(t, out.String(), "saved CourseReport_1.csv")
}

func Test_commandLine_reportError(t *testing.T) {
	cli, runner, _ := setup(t)
	runner.err = appErrors.ErrForbidden

	err := cli.run(context.Background(), []string{"reportctl", "course", "-role", "lecturer"})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.Equal(t, models.RoleLecturer, runner.calls[0].session.Role)
}

func Test_commandLine_cleanup(t *testing.T) {
	cli, runner, out := setup(t)
	runner.removed = []string{"CourseReport_1.csv", "CourseReport_2.txt"}

	require.NoError(t, cli.run(context.Background(), []string{"reportctl", "cleanup", "-older-than", "48h"}))
	assert.Equal(t, 48*time.Hour, runner.ttl)
	assert.Contains(t, out.String(), "removed 2 report files")
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _, out := setup(t)
	orig := migrateFunc
	t.Cleanup(func() { migrateFunc = orig })
	called := false
	migrateFunc = func(db *sql.DB) error {
		called = true
		return nil
	}

	require.NoError(t, cli.run(context.Background(), []string{"reportctl", "migrate"}))
	assert.True(t, called)
	assert.Contains(t, out.String(), "migrations applied")

	migrateFunc = func(db *sql.DB) error { return errors.New("no database") }
	assert.Error(t, cli.run(context.Background(), []string{"reportctl", "migrate"}))
}

func Test_commandLine_token(t *testing.T) {
	cli, _, out := setup(t)

	require.NoError(t, cli.run(context.Background(), []string{"reportctl", "token", "-role", "lecturer", "-user-id", "100"}))
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	session, err := service.NewTokenService("secret", nil).ParseSession(string(lines[0]))
	require.NoError(t, err)
	assert.Equal(t, models.Session{UserID: 100, Role: models.RoleLecturer}, session)

	assert.ErrorIs(t, cli.run(context.Background(), []string{"reportctl", "token"}), appErrors.ErrValidation)
}

func Test_needsStore(t *testing.T) {
	assert.True(t, needsStore([]string{"reportctl", "course"}))
	assert.True(t, needsStore([]string{"reportctl", "migrate"}))
	assert.False(t, needsStore([]string{"reportctl", "token"}))
	assert.False(t, needsStore([]string{"reportctl", "cleanup"}))
	assert.False(t, needsStore([]string{"reportctl"}))
}
