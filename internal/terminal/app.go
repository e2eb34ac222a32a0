// Package terminal implements the floor terminal commands on top of the client packages.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/cherry_dining/internal/client/api"
	"github.com/SscSPs/cherry_dining/internal/client/session"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

// App is the state shared by every terminal command.
type App struct {
	Client *api.Client
	Admin  *session.AdminProvider
	Staff  *session.StaffProvider
	Menu   domain.Menu

	In     io.Reader
	Out    io.Writer
	Logger *slog.Logger

	stdin *bufio.Reader
}

func NewApp(client *api.Client, storage session.Storage, menu domain.Menu, in io.Reader, out io.Writer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		Client: client,
		Admin:  session.NewAdminProvider(client, storage, logger),
		Staff:  session.NewStaffProvider(client, storage, logger),
		Menu:   menu,
		In:     in,
		Out:    out,
		Logger: logger,
	}
}

// Restore loads both persisted sessions and waits until the administrator session is resolved.
func (a *App) Restore(ctx context.Context) {
	a.Staff.Init()
	select {
	case <-a.Admin.Init(ctx):
	case <-ctx.Done():
	}
}

// Identity is who the terminal currently acts as, or nil.
func (a *App) Identity() *domain.Identity {
	return session.EffectiveIdentity(a.Staff.Current(), a.Admin.Current(), time.Now())
}

// Token is the bearer token of Identity.
func (a *App) Token() string {
	return session.EffectiveToken(a.Staff.Current(), a.Admin.Current(), time.Now())
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

// prompt reads one line from In after printing label.
func (a *App) prompt(label string) (string, error) {
	if a.stdin == nil {
		a.stdin = bufio.NewReader(a.In)
	}
	a.printf("%s: ", label)
	line, err := a.stdin.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// valueOrPrompt returns v, or asks for it when it is empty.
func (a *App) valueOrPrompt(v, label string) (string, error) {
	if v != "" {
		return v, nil
	}
	return a.prompt(label)
}
