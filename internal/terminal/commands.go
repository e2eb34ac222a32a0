package terminal

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/cherry_dining/internal/client/api"
	"github.com/SscSPs/cherry_dining/internal/client/notify"
	"github.com/SscSPs/cherry_dining/internal/client/realtime"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/google/subcommands"
)

var (
	errNotSignedIn = errors.New("not signed in, use signin or staff-login first")
	errStreamEnded = errors.New("change stream ended, alerts have stopped")
)

// Commands returns every terminal command bound to app.
func Commands(app *App) []subcommands.Command {
	return []subcommands.Command{
		&signInCmd{app: app},
		&signUpCmd{app: app},
		&staffLoginCmd{app: app},
		&whoamiCmd{app: app},
		&menuCmd{app: app},
		&watchOrdersCmd{app: app},
		&watchTransfersCmd{app: app},
		&logoutCmd{app: app},
	}
}

// exit reports err on the terminal and maps it to an exit status.
func (a *App) exit(err error) subcommands.ExitStatus {
	if err == nil {
		return subcommands.ExitSuccess
	}
	a.printf("error: %s\n", err)
	return subcommands.ExitFailure
}

// watch blocks until ctx is cancelled or the change stream behind ended stops.
func (a *App) watch(ctx context.Context, ended <-chan struct{}) subcommands.ExitStatus {
	select {
	case <-ctx.Done():
		return subcommands.ExitSuccess
	case <-ended:
		// cancelling ctx also ends the stream
		if ctx.Err() != nil {
			return subcommands.ExitSuccess
		}
		return a.exit(errStreamEnded)
	}
}

// --- signin ---

type signInCmd struct {
	app      *App
	email    string
	password string
}

func (*signInCmd) Name() string     { return "signin" }
func (*signInCmd) Synopsis() string { return "sign in as an administrator" }
func (*signInCmd) Usage() string {
	return "signin [-email EMAIL] [-password PASSWORD]\n  Prompts for missing values.\n"
}

func (c *signInCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "administrator email")
	f.StringVar(&c.password, "password", "", "administrator password")
}

func (c *signInCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	email, err := c.app.valueOrPrompt(c.email, "Email")
	if err != nil {
		return c.app.exit(err)
	}
	password, err := c.app.valueOrPrompt(c.password, "Password")
	if err != nil {
		return c.app.exit(err)
	}
	res := c.app.Admin.SignIn(ctx, email, password)
	if !res.Success {
		return c.app.exit(errors.New(res.Error))
	}
	c.app.printf("Signed in as %s\n", describe(c.app.Identity()))
	return subcommands.ExitSuccess
}

// --- signup ---

type signUpCmd struct {
	app      *App
	email    string
	password string
	name     string
}

func (*signUpCmd) Name() string     { return "signup" }
func (*signUpCmd) Synopsis() string { return "create an administrator account" }
func (*signUpCmd) Usage() string {
	return "signup [-email EMAIL] [-password PASSWORD] [-name FULL_NAME]\n"
}

func (c *signUpCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "administrator email")
	f.StringVar(&c.password, "password", "", "password, at least 8 characters")
	f.StringVar(&c.name, "name", "", "full name")
}

func (c *signUpCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	email, err := c.app.valueOrPrompt(c.email, "Email")
	if err != nil {
		return c.app.exit(err)
	}
	password, err := c.app.valueOrPrompt(c.password, "Password")
	if err != nil {
		return c.app.exit(err)
	}
	name, err := c.app.valueOrPrompt(c.name, "Full name")
	if err != nil {
		return c.app.exit(err)
	}
	res := c.app.Admin.SignUp(ctx, email, password, name)
	if !res.Success {
		return c.app.exit(errors.New(res.Error))
	}
	c.app.printf("Account created, signed in as %s\n", describe(c.app.Identity()))
	return subcommands.ExitSuccess
}

// --- staff-login ---

type staffLoginCmd struct {
	app      *App
	username string
	password string
}

func (*staffLoginCmd) Name() string     { return "staff-login" }
func (*staffLoginCmd) Synopsis() string { return "start a staff shift session" }
func (*staffLoginCmd) Usage() string {
	return "staff-login [-username USERNAME] [-password PASSWORD]\n  The session lasts 12 hours.\n"
}

func (c *staffLoginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "username", "", "staff username")
	f.StringVar(&c.password, "password", "", "staff password")
}

func (c *staffLoginCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	username, err := c.app.valueOrPrompt(c.username, "Username")
	if err != nil {
		return c.app.exit(err)
	}
	password, err := c.app.valueOrPrompt(c.password, "Password")
	if err != nil {
		return c.app.exit(err)
	}
	res := c.app.Staff.Login(ctx, username, password)
	if !res.Success {
		return c.app.exit(errors.New(res.Error))
	}
	s := c.app.Staff.Current()
	c.app.printf("Welcome %s, session valid until %s\n", s.Staff.FullName, s.ExpiresAt.Local().Format("15:04 Jan 2"))
	return subcommands.ExitSuccess
}

// --- whoami ---

type whoamiCmd struct {
	app *App
}

func (*whoamiCmd) Name() string             { return "whoami" }
func (*whoamiCmd) Synopsis() string         { return "show the effective identity and role" }
func (*whoamiCmd) Usage() string            { return "whoami\n" }
func (*whoamiCmd) SetFlags(_ *flag.FlagSet) {}

func (c *whoamiCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	identity := c.app.Identity()
	if identity == nil {
		c.app.printf("Not signed in\n")
		return subcommands.ExitFailure
	}
	c.app.printf("%s\n", describe(identity))
	return subcommands.ExitSuccess
}

func describe(identity *domain.Identity) string {
	if identity == nil {
		return "nobody"
	}
	role := "no role"
	if identity.Role != nil {
		role = identity.Role.String()
	}
	name := identity.Name
	if name == "" {
		name = identity.Email
	}
	return fmt.Sprintf("%s (%s, %s)", name, identity.Kind, role)
}

// --- menu ---

type menuCmd struct {
	app *App
}

func (*menuCmd) Name() string             { return "menu" }
func (*menuCmd) Synopsis() string         { return "list the screens available to the effective role" }
func (*menuCmd) Usage() string            { return "menu\n" }
func (*menuCmd) SetFlags(_ *flag.FlagSet) {}

func (c *menuCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var role *domain.Role
	if identity := c.app.Identity(); identity != nil {
		role = identity.Role
	}
	filtered := domain.FilterMenu(c.app.Menu, role)
	if len(filtered.Groups) == 0 {
		c.app.printf("No screens available\n")
		return subcommands.ExitSuccess
	}
	for _, group := range filtered.Groups {
		c.app.printf("%s\n", group.Title)
		for _, entry := range group.Entries {
			c.app.printf("  %-20s %s\n", entry.Label, entry.Target)
		}
	}
	return subcommands.ExitSuccess
}

// --- watch-orders ---

type watchOrdersCmd struct {
	app   *App
	scope string
	sound bool
}

func (*watchOrdersCmd) Name() string     { return "watch-orders" }
func (*watchOrdersCmd) Synopsis() string { return "alert on new and ready orders" }
func (*watchOrdersCmd) Usage() string {
	return "watch-orders [-scope all|kitchen|bar] [-sound]\n  Runs until interrupted.\n"
}

func (c *watchOrdersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scope, "scope", string(notify.ScopeAll), "which orders to alert on: all, kitchen or bar")
	f.BoolVar(&c.sound, "sound", false, "ring the terminal bell on alerts")
}

func (c *watchOrdersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	scope := notify.Scope(strings.ToLower(c.scope))
	switch scope {
	case notify.ScopeAll, notify.ScopeKitchen, notify.ScopeBar:
	default:
		c.app.printf("unknown scope %q\n", c.scope)
		return subcommands.ExitUsageError
	}
	token := c.app.Token()
	if token == "" {
		return c.app.exit(errNotSignedIn)
	}

	sub, err := realtime.Dial(ctx, c.app.Client.HTTPClient(), c.app.Client.StreamURL(domain.StreamOrders), token, c.app.Logger)
	if err != nil {
		return c.app.exit(err)
	}
	notifier := notify.NewOrderNotifier(
		notify.OrderNotifierConfig{Scope: scope, SoundEnabled: c.sound},
		&consoleAlerter{out: c.app.Out},
		notify.WithLogger(c.app.Logger),
	)
	notifier.Attach(sub)
	defer notifier.Close()

	c.app.printf("Watching %s orders, press Ctrl+C to stop\n", scope)
	return c.app.watch(ctx, notifier.Done())
}

// --- watch-transfers ---

type watchTransfersCmd struct {
	app   *App
	sound bool
}

func (*watchTransfersCmd) Name() string     { return "watch-transfers" }
func (*watchTransfersCmd) Synopsis() string { return "alert on transfers for the assigned bar" }
func (*watchTransfersCmd) Usage() string {
	return "watch-transfers [-sound]\n  Runs until interrupted.\n"
}

func (c *watchTransfersCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.sound, "sound", false, "ring the terminal bell on alerts")
}

func (c *watchTransfersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	token := c.app.Token()
	if token == "" {
		return c.app.exit(errNotSignedIn)
	}

	barID, assigned := "", false
	assignment, err := c.app.Client.MyAssignment(ctx, token)
	switch {
	case err == nil:
		barID, assigned = assignment.BarID, true
		c.app.printf("Assigned to %s\n", assignment.BarName)
	case api.IsStatus(err, http.StatusNotFound):
		c.app.printf("Not assigned to a bar, only transfer outcomes elsewhere are tracked\n")
	default:
		return c.app.exit(err)
	}

	refs := c.loadReferences(ctx, token)

	sub, err := realtime.Dial(ctx, c.app.Client.HTTPClient(), c.app.Client.StreamURL(domain.StreamTransfers), token, c.app.Logger)
	if err != nil {
		return c.app.exit(err)
	}
	notifier := notify.NewTransferNotifier(
		notify.TransferNotifierConfig{
			BarID:        func() (string, bool) { return barID, assigned },
			SoundEnabled: c.sound,
		},
		&consoleAlerter{out: c.app.Out},
		refs,
		logInvalidator{logger: c.app.Logger},
		notify.WithLogger(c.app.Logger),
	)
	notifier.Attach(sub)
	defer notifier.Close()

	c.app.printf("Watching transfers, press Ctrl+C to stop\n")
	return c.app.watch(ctx, notifier.Done())
}

// loadReferences fetches bar and item names for transfer summaries. Missing names fall back
// to generic labels, so failures are only logged.
func (c *watchTransfersCmd) loadReferences(ctx context.Context, token string) referenceNames {
	refs := referenceNames{items: map[string]string{}, bars: map[string]string{}}

	bars, err := c.app.Client.ListBars(ctx, token)
	if err != nil {
		c.app.Logger.Warn("Failed to load bars", "error", err)
	}
	locations := []*string{nil}
	for _, bar := range bars {
		refs.bars[bar.BarID] = bar.Name
		id := bar.BarID
		locations = append(locations, &id)
	}

	for _, location := range locations {
		items, err := c.app.Client.ListInventory(ctx, token, location)
		if err != nil {
			c.app.Logger.Warn("Failed to load inventory names", "error", err)
			continue
		}
		for _, item := range items {
			refs.items[item.ItemID] = item.Name
		}
	}
	return refs
}

// --- logout ---

type logoutCmd struct {
	app *App
}

func (*logoutCmd) Name() string             { return "logout" }
func (*logoutCmd) Synopsis() string         { return "end the staff session and sign out the administrator" }
func (*logoutCmd) Usage() string            { return "logout\n" }
func (*logoutCmd) SetFlags(_ *flag.FlagSet) {}

func (c *logoutCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c.app.Staff.Logout()
	c.app.Admin.SignOut(ctx)
	c.app.printf("Signed out\n")
	return subcommands.ExitSuccess
}
