package app

import (
	"context"

	"github.com/soukly/marketplace-client/internal/core/domain"
	"github.com/soukly/marketplace-client/internal/core/ports"
)

func (a *App) loginScreen(ctx context.Context) {
	email := a.prompt("email: ")
	password := a.prompt("password: ")

	a.printf("Signing in...\n")
	if err := a.deps.Sessions.Login(ctx, email, password); err != nil {
		a.banner(err)
		return
	}
	_, session := a.deps.Sessions.Current()
	a.printf("Welcome back, %s.\n", session.DisplayName)
}

func (a *App) signupScreen(ctx context.Context) {
	in := ports.SignupInput{
		FirstName: a.prompt("first name: "),
		LastName:  a.prompt("last name: "),
		Email:     a.prompt("email: "),
		Password:  a.prompt("password: "),
		Phone:     a.prompt("phone: "),
	}

	role := a.prompt("role [1] buyer [2] seller [3] deliverer: ")
	switch role {
	case "2":
		in.Role = domain.RoleVendor
	case "3":
		in.Role = domain.RoleDeliverer
	default:
		in.Role = domain.RoleClient
	}

	// Validation failures block submission before any network call.
	if err := a.forms.Validate(in); err != nil {
		a.banner(err)
		return
	}

	// Coordinates ride along only when a fix exists; a denied permission
	// means the field is simply omitted.
	if fix, ok := a.deps.Location.Fix(); ok {
		in.Location = &fix
	}

	a.printf("Creating account...\n")
	if err := a.deps.Auth.Signup(ctx, in); err != nil {
		a.banner(err)
		return
	}
	a.printf("Account created. You can sign in now.\n")
}
