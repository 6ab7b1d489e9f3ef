package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/settings"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp    = errors.New("help provided")
	errAborted = errors.New("aborted")
)

type commandLine struct {
	db          *sqlx.DB
	conf        *core.Config
	settingsSvc *settings.Service
	in          io.Reader
	out         io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose command (up, down, status, version, ...)")
	fmt.Fprintln(cli.out, "  recalculate -user ID [-yes] - recompute the stored grades of a user with their current scale")
	fmt.Fprintln(cli.out, "  token -user ID [-email EMAIL] - print an API token for a user")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	recalculateCmd := flag.NewFlagSet("recalculate", flag.ContinueOnError)
	recalculateCmd.SetOutput(cli.out)
	recalculateUser := recalculateCmd.String("user", "", "The ID of the user whose grading periods are recalculated.")
	recalculateYes := recalculateCmd.Bool("yes", false, "Do not ask for confirmation.")

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenCmd.SetOutput(cli.out)
	tokenUser := tokenCmd.String("user", "", "The ID of the user (token subject).")
	tokenEmail := tokenCmd.String("email", "", "The email of the user.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "recalculate":
		if err := recalculateCmd.Parse(args[2:]); err != nil {
			return err
		}
		userID := core.CleanString(*recalculateUser)
		if userID == "" {
			recalculateCmd.Usage()
			return errHelp
		}
		if !*recalculateYes && isTerminalFunc(int(os.Stdin.Fd())) {
			ok, err := cli.confirm(fmt.Sprintf("Recalculate every grading period of user %q?", userID))
			if err != nil {
				return err
			}
			if !ok {
				return errAborted
			}
		}
		return cli.recalculate(userID)
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		userID := core.CleanString(*tokenUser)
		if userID == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(userID, core.CleanString(*tokenEmail, true /* lower */))
	default:
		cli.printUsage()
		return errHelp
	}
}

// confirm asks a yes/no question; anything but "y" or "yes" is a no.
func (cli *commandLine) confirm(question string) (bool, error) {
	fmt.Fprintf(cli.out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(cli.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
