package main

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/gradebook/apps/api/echo"
	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
	"github.com/trezcool/gradebook/core/settings"
	"github.com/trezcool/gradebook/storage/database/sqlx"
	"github.com/trezcool/gradebook/tests"
)

var (
	periodRepo   grading.Repository
	settingsRepo settings.Repository
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer, *bytes.Buffer) {
	// set up DB & repos
	db := testutil.PrepareDB(t)
	periodRepo = sqlxrepos.NewGradingPeriodRepository(db)
	settingsRepo = sqlxrepos.NewSettingsRepository(db)

	// set up services
	gradingSvc := grading.NewService(periodRepo)
	settingsSvc := settings.NewService(settingsRepo, gradingSvc)

	// start CLI
	in, out := new(bytes.Buffer), new(bytes.Buffer)
	return &commandLine{
		db: db,
		conf: &core.Config{
			AppName:   "Gradebook",
			SecretKey: "secret",
			Server:    core.ServerConfig{JWTExpirationDelta: time.Hour},
		},
		settingsSvc: settingsSvc,
		in:          in,
		out:         out,
	}, in, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _, _ := setup(t)

	defer func(orig func(*sqlx.DB, string, ...string) error) { gooseRunFunc = orig }(gooseRunFunc)
	gooseRunFunc = func(db *sqlx.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "course_notes", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			} else if tt.wantErr != nil || tt.wantErrStr != "" {
				t.Errorf("cli.run() error = nil, wantErr %v%s", tt.wantErr, tt.wantErrStr)
			}
		})
	}
}

func Test_commandLine_recalculate(t *testing.T) {
	cli, in, out := setup(t)
	ctx := context.Background()

	gp := testutil.CreateGradingPeriod(t, periodRepo, "u1", "Fall", []grading.Course{testutil.Course("Calculus", 3, true, 95)})

	// switch to WAM behind the service's back: stored GPAs are stale until recalculated
	s := settings.Default("u1")
	s.GPAScale = grading.ScaleWAM
	if _, err := settingsRepo.SaveSettings(ctx, s); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}

	defer func(orig func(int) bool) { isTerminalFunc = orig }(isTerminalFunc)

	type extra struct {
		terminal bool
		answer   string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"recalculate"}, wantErr: errHelp},
		{name: "blank user", args: []string{"recalculate", "-user", "  "}, wantErr: errHelp},
		{name: "declined", args: []string{"recalculate", "-user", "u1"}, extra: extra{terminal: true, answer: "n\n"}, wantErr: errAborted},
		{name: "no answer", args: []string{"recalculate", "-user", "u1"}, extra: extra{terminal: true}, wantErr: errAborted},
		{name: "confirmed", args: []string{"recalculate", "-user", "u1"}, extra: extra{terminal: true, answer: "Yes\n"}},
		{name: "skip confirmation", args: []string{"recalculate", "-user", "u1", "-yes"}, extra: extra{terminal: true}},
		{name: "not a terminal", args: []string{"recalculate", "-user", "u1"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			ex, _ := tt.extra.(extra)
			isTerminalFunc = func(int) bool { return ex.terminal }
			in.Reset()
			in.WriteString(ex.answer)
			out.Reset()

			err := cli.run(args)
			if err != tt.wantErr {
				t.Fatalf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				assert.Contains(t, out.String(), "1 grading period(s) recalculated")

				got, err := periodRepo.GetGradingPeriod(ctx, "u1", gp.ID)
				assert.NoError(t, err)
				if assert.NotNil(t, got.Courses[0].GPA) {
					assert.Equal(t, 95.0, *got.Courses[0].GPA)
				}
			}
		})
	}
}

func Test_commandLine_token(t *testing.T) {
	cli, _, out := setup(t)

	assert.Equal(t, errHelp, cli.run([]string{"admin", "token"}))

	out.Reset()
	assert.NoError(t, cli.run([]string{"admin", "token", "-user", "u1", "-email", "U1@Test.edu"}))

	claims := new(echoapi.Claims)
	_, err := jwt.ParseWithClaims(strings.TrimSpace(out.String()), claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cli.conf.SecretKey), nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "u1@test.edu", claims.Email)
	assert.Equal(t, "Gradebook", claims.Issuer)
}
