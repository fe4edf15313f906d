// Package app implements the terminal screens that drive the client core,
// playing the role of the mobile UI: every screen fetches what it needs,
// renders it, and forwards user actions to the services.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/soukly/marketplace-client/internal/core/ports"
	"github.com/soukly/marketplace-client/internal/core/service"
)

// Deps carries everything the screens depend on. Screens only ever touch the
// session through the SessionManager, never the store underneath it.
type Deps struct {
	Sessions *service.SessionManager
	Cart     *service.CartService
	Checkout *service.CheckoutSequencer
	Badge    *service.BadgePoller
	Location *service.LocationService
	Auth     ports.AuthGateway
	Catalog  ports.CatalogGateway
	Orders   ports.OrderGateway
	Delivery ports.DeliveryGateway
	Log      zerolog.Logger
	In       io.Reader
	Out      io.Writer
}

type App struct {
	deps  Deps
	in    *bufio.Scanner
	forms *FormValidator
}

func New(deps Deps) *App {
	return &App{
		deps:  deps,
		in:    bufio.NewScanner(deps.In),
		forms: NewFormValidator(),
	}
}

// Run restores the session and loops between the welcome and home screens
// until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.deps.Sessions.Restore(ctx)

	for ctx.Err() == nil {
		state, _ := a.deps.Sessions.Current()
		var again bool
		if state == service.StateAuthenticated {
			again = a.homeScreen(ctx)
		} else {
			again = a.welcomeScreen(ctx)
		}
		if !again {
			return nil
		}
	}
	return nil
}

func (a *App) welcomeScreen(ctx context.Context) bool {
	a.printf("\n== Soukly ==\n")
	a.printf("[1] sign in  [2] create account  [q] quit\n")

	switch a.prompt("> ") {
	case "1":
		a.loginScreen(ctx)
	case "2":
		a.signupScreen(ctx)
	case "q":
		return false
	}
	return true
}

func (a *App) homeScreen(ctx context.Context) bool {
	_, session := a.deps.Sessions.Current()
	a.printf("\n== Soukly: %s (%s) ==  cart[%d]\n", session.DisplayName, session.Role, a.deps.Badge.Count())
	a.printf("[1] browse products  [2] cart  [3] orders  [4] deliverers nearby  [5] sign out  [q] quit\n")

	switch a.prompt("> ") {
	case "1":
		a.browseScreen(ctx)
	case "2":
		a.cartScreen(ctx)
	case "3":
		a.ordersScreen(ctx)
	case "4":
		a.deliverersScreen(ctx)
	case "5":
		a.deps.Sessions.Logout()
		a.printf("Signed out.\n")
	case "q":
		return false
	}
	return true
}

// prompt reads one trimmed line; EOF behaves like quit.
func (a *App) prompt(label string) string {
	a.printf("%s", label)
	if !a.in.Scan() {
		return "q"
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.deps.Out, format, args...)
}

// banner renders a failure as an inline message and keeps the screen
// interactive; nothing here is fatal.
func (a *App) banner(err error) {
	a.printf("! %v\n", err)
}
