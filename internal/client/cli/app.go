// Package cli implements the bioqr terminal client: account signup and login,
// and a guarded bio form that renders QR codes through the API.
package cli

import (
	"bufio"
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bioqr/bioqr-go/internal/client"
	"github.com/bioqr/bioqr-go/internal/client/guard"
	"github.com/bioqr/bioqr-go/internal/model"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrUnknownCommand   = errors.New("unknown command")
)

const usage = `usage: bioqr <command> [flags]

commands:
  signup   create an account
  login    log in and store the session token
  logout   forget the stored session token
  whoami   show the logged-in account
  bio      generate a QR code from bio data
`

// API is the subset of the BioQR API the CLI uses.
type API interface {
	Signup(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, token string) (model.UserResponse, error)
	GenerateQR(ctx context.Context, token string, bio model.BioRequest) (string, error)
}

// TokenStore persists the session token between runs.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Remove() error
}

// App wires the API client, local token storage and route guard together.
type App struct {
	api   API
	store TokenStore
	guard *guard.Guard
	in    *bufio.Reader
	out   io.Writer
}

// NewApp creates an App reading prompts from in and writing to out.
func NewApp(api API, store TokenStore, g *guard.Guard, in io.Reader, out io.Writer) *App {
	return &App{
		api:   api,
		store: store,
		guard: g,
		in:    bufio.NewReader(in),
		out:   out,
	}
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}

	switch args[0] {
	case "signup":
		return a.signup(ctx, args[1:])
	case "login":
		return a.login(ctx)
	case "logout":
		return a.logout()
	case "whoami":
		return a.protect(guard.ViewFunc(a.whoami)).Render(ctx)
	case "bio":
		form, err := parseBioFlags(args[1:], a.out)
		if err != nil {
			return err
		}
		return a.protect(guard.ViewFunc(func(ctx context.Context) error {
			return a.bio(ctx, form)
		})).Render(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
}

// protect gates view behind the route guard. When the guard redirects, the
// login view runs and, on success, the view is tried once more.
func (a *App) protect(view guard.View) guard.View {
	retry := a.guard.Protect(view, guard.ViewFunc(func(context.Context) error {
		return ErrNotLoggedIn
	}))

	return a.guard.Protect(view, guard.ViewFunc(func(ctx context.Context) error {
		if d, ok := guard.FromContext(ctx); ok {
			switch d.Reason {
			case guard.ReasonExpired:
				fmt.Fprintln(a.out, "Your session has expired. Please log in again.")
			case guard.ReasonStore:
				fmt.Fprintf(a.out, "Could not read the stored session (%v). Please log in.\n", d.Err)
			default:
				fmt.Fprintln(a.out, "Please log in to continue.")
			}
		}
		if err := a.login(ctx); err != nil {
			return err
		}
		return retry.Render(ctx)
	}))
}

func (a *App) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	fs.SetOutput(a.out)
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		v, err := prompt(a.in, a.out, "Email")
		if err != nil {
			return err
		}
		*email = v
	}
	password, err := promptPassword(a.in, a.out, "Password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword(a.in, a.out, "Confirm password")
	if err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	msg, err := a.api.Signup(ctx, *email, password)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	fmt.Fprintln(a.out, "Log in with: bioqr login")
	return nil
}

func (a *App) login(ctx context.Context) error {
	email, err := prompt(a.in, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.in, a.out, "Password")
	if err != nil {
		return err
	}

	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.store.Set(token); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", email)
	return nil
}

func (a *App) logout() error {
	if err := a.store.Remove(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) whoami(ctx context.Context) error {
	token, err := a.store.Get()
	if err != nil {
		return err
	}
	me, err := a.api.Me(ctx, token)
	if err != nil {
		return a.serverRejected(err)
	}
	fmt.Fprintf(a.out, "%s (member since %s)\n", me.Email, me.CreatedAt.Format("2006-01-02"))
	return nil
}

func (a *App) bio(ctx context.Context, form bioForm) error {
	token, err := a.store.Get()
	if err != nil {
		return err
	}
	dataURL, err := a.api.GenerateQR(ctx, token, form.bio)
	if err != nil {
		return a.serverRejected(err)
	}

	png, err := decodePNGDataURL(dataURL)
	if err != nil {
		return err
	}
	if err := os.WriteFile(form.output, png, 0o644); err != nil {
		return fmt.Errorf("write qr code: %w", err)
	}
	fmt.Fprintf(a.out, "QR code written to %s\n", form.output)
	return nil
}

// serverRejected clears the local token when the API refuses it; the
// guard's local check passed but the server's verification is authoritative.
func (a *App) serverRejected(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		if rmErr := a.store.Remove(); rmErr != nil {
			return errors.Join(err, rmErr)
		}
		fmt.Fprintln(a.out, "The server rejected your session. Please log in again.")
	}
	return err
}

const pngDataURLPrefix = "data:image/png;base64,"

func decodePNGDataURL(s string) ([]byte, error) {
	if !strings.HasPrefix(s, pngDataURLPrefix) {
		return nil, errors.New("unexpected qr code format")
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s, pngDataURLPrefix))
	if err != nil {
		return nil, fmt.Errorf("decode qr code: %w", err)
	}
	return data, nil
}
