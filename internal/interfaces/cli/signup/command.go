// Package signup registers a customer account from the terminal and waits
// for the confirmation link to be followed before creating the profile.
package signup

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/autocrm/autocrm/internal/application/crm"
	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/infrastructure/database"
	"github.com/autocrm/autocrm/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/autocrm/autocrm/internal/interfaces/http"
	"github.com/autocrm/autocrm/internal/shared/auth"
)

var (
	env        string
	configPath string
	email      string
	firstName  string
	lastName   string
	timeout    time.Duration
)

func NewCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a customer account",
		Long:  `Sign up with email and password, wait for the verification link, then create the customer profile.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, version)
		},
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted when empty)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Minute, "How long to wait for the email to be verified")

	return cmd
}

func run(cmd *cobra.Command, version string) error {
	cfg, log, err := bootstrap.Init(bootstrap.Environment(env), configPath)
	if err != nil {
		return err
	}
	defer database.Close()

	container, err := httpRouter.NewContainer(database.Get(), cfg, log, version)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	p := prompter{in: in, out: out, readPassword: func() (string, error) {
		return readPassword(in)
	}}
	form, err := p.collect(email, firstName, lastName)
	if err != nil {
		return err
	}

	return register(cmd.Context(), container.Service(), form, timeout, out)
}

// form holds what the user typed.
type form struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type prompter struct {
	in           *bufio.Reader
	out          io.Writer
	readPassword func() (string, error)
}

func (p prompter) collect(email, first, last string) (form, error) {
	var f form
	var err error

	if f.Email, err = p.ask("Email", email); err != nil {
		return f, err
	}
	if f.FirstName, err = p.ask("First name", first); err != nil {
		return f, err
	}
	if f.LastName, err = p.ask("Last name", last); err != nil {
		return f, err
	}

	fmt.Fprint(p.out, "Password: ")
	f.Password, err = p.readPassword()
	fmt.Fprintln(p.out)
	if err != nil {
		return f, fmt.Errorf("failed to read password: %w", err)
	}
	if f.Email == "" || f.Password == "" {
		return f, fmt.Errorf("email and password are required")
	}
	return f, nil
}

func (p prompter) ask(label, preset string) (string, error) {
	if preset != "" {
		return preset, nil
	}
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword turns off echo on a terminal and reads a plain line otherwise.
func readPassword(fallback *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := fallback.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
	raw, err := term.ReadPassword(fd)
	return string(raw), err
}

// registrar is the part of the façade signup drives.
type registrar interface {
	Signup(ctx context.Context, in crm.SignupInput) (*auth.Account, error)
	WaitForEmailVerification(ctx context.Context, email, password string, interval time.Duration) (*auth.Session, error)
	UpsertUser(ctx context.Context, in crm.UserInput) (*user.User, error)
}

func register(ctx context.Context, svc registrar, f form, wait time.Duration, out io.Writer) error {
	if _, err := svc.Signup(ctx, crm.SignupInput{Email: f.Email, Password: f.Password}); err != nil {
		return err
	}
	fmt.Fprintf(out, "Check %s for a verification link. Waiting up to %s...\n", f.Email, wait)

	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	session, err := svc.WaitForEmailVerification(waitCtx, f.Email, f.Password, 0)
	if err != nil {
		return fmt.Errorf("email was not verified: %w", err)
	}

	u, err := svc.UpsertUser(ctx, crm.UserInput{
		ID:        session.UserID,
		Email:     f.Email,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Role:      user.RoleCustomer.String(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Welcome, %s. Your account %s is ready.\n", u.DisplayName(), u.ID())
	return nil
}
