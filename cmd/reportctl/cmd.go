package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/noah-isme/cms-report-api/internal/models"
	"github.com/noah-isme/cms-report-api/internal/service"
	"github.com/noah-isme/cms-report-api/pkg/database"
	"github.com/noah-isme/cms-report-api/pkg/export"
)

var (
	migrateFunc = database.Migrate // mockable

	errHelp = errors.New("help provided")
)

type reportRunner interface {
	CourseReport(ctx context.Context, session models.Session, format export.Format) (*service.ReportResult, error)
	StudentReport(ctx context.Context, session models.Session, studentID int64, format export.Format) (*service.ReportResult, error)
	LecturerReport(ctx context.Context, session models.Session, lecturerID int64, format export.Format) (*service.ReportResult, error)
	LecturerSelfReport(ctx context.Context, session models.Session, format export.Format) (*service.ReportResult, error)
	Cleanup(ttl time.Duration) ([]string, error)
}

type tokenIssuer interface {
	IssueToken(session models.Session, ttl time.Duration) (string, time.Time, error)
}

type commandLine struct {
	reports       reportRunner
	tokens        tokenIssuer
	db            *sql.DB
	out           io.Writer
	defaultFormat string
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  course [-format F]                          - all courses with their modules")
	fmt.Fprintln(cli.out, "  student -id ID [-format F]                  - one student's enrolments and grades")
	fmt.Fprintln(cli.out, "  lecturer -id ID [-format F]                 - one lecturer's modules")
	fmt.Fprintln(cli.out, "  self -user-id ID [-format F]                - report for the lecturer signed in as ID")
	fmt.Fprintln(cli.out, "  cleanup [-older-than DURATION]              - remove persisted report files")
	fmt.Fprintln(cli.out, "  migrate                                     - apply database migrations")
	fmt.Fprintln(cli.out, "  token -role ROLE -user-id ID [-ttl DURATION] - sign an API bearer token")
	fmt.Fprintln(cli.out, "Formats: console, csv, txt; anything else prints raw lines.")
}

// needsStore reports whether the subcommand reads the record store.
func needsStore(args []string) bool {
	if len(args) < 2 {
		return false
	}
	switch args[1] {
	case "course", "student", "lecturer", "self", "migrate":
		return true
	}
	return false
}

type sessionFlags struct {
	role   *string
	userID *int64
	format *string
}

func (cli *commandLine) newFlagSet(name string, defaultRole models.UserRole) (*flag.FlagSet, sessionFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs, sessionFlags{
		role:   fs.String("role", string(defaultRole), "Role of the caller: office or lecturer."),
		userID: fs.Int64("user-id", 1, "ID of the caller. For lecturers this is their lecturer ID."),
		format: fs.String("format", cli.defaultFormat, "Output format: console, csv or txt."),
	}
}

func (f sessionFlags) session() models.Session {
	return models.Session{UserID: *f.userID, Role: models.UserRole(*f.role)}
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "course":
		fs, common := cli.newFlagSet("course", models.RoleOffice)
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		result, err := cli.reports.CourseReport(ctx, common.session(), export.ParseFormat(*common.format))
		return cli.report(result, err)
	case "student", "lecturer":
		fs, common := cli.newFlagSet(args[1], models.RoleOffice)
		id := fs.Int64("id", 0, "ID of the "+args[1]+" to report on.")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		if *id <= 0 {
			fs.Usage()
			return errHelp
		}
		format := export.ParseFormat(*common.format)
		if args[1] == "student" {
			result, err := cli.reports.StudentReport(ctx, common.session(), *id, format)
			return cli.report(result, err)
		}
		result, err := cli.reports.LecturerReport(ctx, common.session(), *id, format)
		return cli.report(result, err)
	case "self":
		fs, common := cli.newFlagSet("self", models.RoleLecturer)
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		result, err := cli.reports.LecturerSelfReport(ctx, common.session(), export.ParseFormat(*common.format))
		return cli.report(result, err)
	case "cleanup":
		fs := flag.NewFlagSet("cleanup", flag.ContinueOnError)
		fs.SetOutput(cli.out)
		olderThan := fs.Duration("older-than", 0, "Remove report files older than this. Defaults to REPORTS_RETENTION.")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		removed, err := cli.reports.Cleanup(*olderThan)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "removed %d report files\n", len(removed))
		return nil
	case "migrate":
		if err := migrateFunc(cli.db); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "migrations applied")
		return nil
	case "token":
		fs := flag.NewFlagSet("token", flag.ContinueOnError)
		fs.SetOutput(cli.out)
		role := fs.String("role", string(models.RoleOffice), "Role carried in the token.")
		userID := fs.Int64("user-id", 0, "User ID carried in the token.")
		username := fs.String("username", "", "Display name carried in the token.")
		ttl := fs.Duration("ttl", time.Hour, "Token lifetime.")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		session := models.Session{UserID: *userID, Username: *username, Role: models.UserRole(*role)}
		token, expiresAt, err := cli.tokens.IssueToken(session, *ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, token)
		fmt.Fprintf(cli.out, "expires %s\n", expiresAt.Format(time.RFC3339))
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) report(result *service.ReportResult, err error) error {
	if err != nil {
		return err
	}
	if result.Location != "" {
		fmt.Fprintf(cli.out, "saved %s\n", result.Location)
	}
	return nil
}
