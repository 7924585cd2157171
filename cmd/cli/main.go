package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/bankapi/infra"
	"github.com/amirasaad/bankapi/infra/initializer"
	"github.com/amirasaad/bankapi/pkg/app"
	"github.com/amirasaad/bankapi/pkg/config"
	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]

Commands:
  create-admin -email <email> [-first <name>] [-last <name>]
  balance <account_id>
  clear <account_id>
  migrate`

var (
	success = color.New(color.FgGreen, color.Bold)
	failure = color.New(color.FgRed, color.Bold)
	label   = color.New(color.FgCyan)
)

// command is a parsed invocation. Parsing never touches the database.
type command struct {
	name      string
	email     string
	firstName string
	lastName  string
	accountID uuid.UUID
}

func main() {
	cmd, err := parseArgs(os.Args[1:])
	if err != nil {
		failure.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err := run(context.Background(), cmd, os.Stdin, os.Stdout); err != nil {
		failure.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func parseArgs(args []string) (*command, error) {
	if len(args) == 0 {
		return nil, errors.New("missing command")
	}
	cmd := &command{name: args[0]}
	switch cmd.name {
	case "create-admin":
		fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		fs.StringVar(&cmd.email, "email", "", "admin email")
		fs.StringVar(&cmd.firstName, "first", "Admin", "first name")
		fs.StringVar(&cmd.lastName, "last", "User", "last name")
		if err := fs.Parse(args[1:]); err != nil {
			return nil, err
		}
		if cmd.email == "" {
			return nil, errors.New("create-admin requires -email")
		}
	case "balance", "clear":
		if len(args) != 2 {
			return nil, fmt.Errorf("%s requires an account ID", cmd.name)
		}
		id, err := uuid.Parse(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid account ID %q", args[1])
		}
		cmd.accountID = id
	case "migrate":
	default:
		return nil, fmt.Errorf("unknown command %q", cmd.name)
	}
	return cmd, nil
}

func run(ctx context.Context, cmd *command, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	logger := initializer.SetupLogger(cfg.Log)
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close() //nolint: errcheck
	}
	if cmd.name == "migrate" {
		// NewDBConnection already migrated the schema
		success.Fprintln(out, "Schema is up to date")
		return nil
	}

	a := app.New(&app.Deps{Uow: infra.NewUoW(db), Logger: logger}, cfg)
	operator := &user.Identity{Roles: user.NewRoles(user.RoleAdmin)}

	switch cmd.name {
	case "create-admin":
		password, err := readPassword(in, out)
		if err != nil {
			return err
		}
		created, err := a.UserService.Create(ctx, dto.UserSignup{
			FirstName: cmd.firstName,
			LastName:  cmd.lastName,
			Email:     cmd.email,
			Password:  password,
			Role:      string(user.RoleAdmin),
		})
		if err != nil {
			return err
		}
		success.Fprintln(out, "Admin created")
		printField(out, "ID", created.ID.String())
		printField(out, "Email", created.Email)
	case "balance":
		acct, err := a.AccountService.Get(ctx, operator, cmd.accountID)
		if err != nil {
			return err
		}
		printField(out, "Account", acct.AccountNumber)
		printField(out, "Balance", acct.Balance.StringFixed(2)+" "+acct.Currency)
		printField(out, "Status", acct.Status)
	case "clear":
		acct, tx, err := a.TransactionService.ClearBalance(ctx, operator, cmd.accountID)
		if err != nil {
			return err
		}
		if tx == nil {
			success.Fprintln(out, "Balance already zero")
		} else {
			success.Fprintln(out, "Balance cleared")
			printField(out, "Transaction", tx.ID.String())
			printField(out, "Type", tx.Type)
			printField(out, "Amount", tx.Amount.StringFixed(2)+" "+tx.Currency)
		}
		printField(out, "Balance", acct.Balance.StringFixed(2)+" "+acct.Currency)
	}
	return nil
}

func printField(out io.Writer, name, value string) {
	label.Fprintf(out, "%-12s", name+":")
	fmt.Fprintln(out, value)
}

// readPassword prompts without echo on a terminal and reads one line
// otherwise.
func readPassword(in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "Password: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("empty password")
	}
	return password, nil
}
