package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"github.com/dmitrijs2005/gameguesser/internal/client/services"
	"github.com/dmitrijs2005/gameguesser/internal/cryptox"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignIn adopts an externally issued account id. The first argument is the
// id and the rest form the display name; without arguments the id is
// prompted for.
func (a *App) SignIn(ctx context.Context, args []string) error {
	var accountID, userName string
	if len(args) > 0 {
		accountID = args[0]
		userName = strings.Join(args[1:], " ")
	} else {
		var err error
		if accountID, err = getSimpleText(a.reader, "Enter account id", a.out); err != nil {
			return err
		}
	}

	id, err := a.auth.SignInAccount(ctx, accountID, userName)
	if err != nil {
		return err
	}
	a.signedIn(ctx, id)
	return nil
}

// Register prompts for an email, a display name and a password and creates
// a local account. The new account is signed in on success.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)

	id, err := a.auth.Register(ctx, email, userName, password)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyRegistered) {
			printlnFn("This email is already registered, use 'login'")
			return nil
		}
		return err
	}

	printlnFn("Success!")
	a.signedIn(ctx, id)
	return nil
}

// Login checks a local account's password and signs it in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)

	id, err := a.auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			printlnFn("Login unsuccessful: invalid email or password")
			return nil
		}
		return err
	}

	a.signedIn(ctx, id)
	return nil
}

// Logout forgets the signed-in identity. Streak records stay on disk.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.identity = nil
	printlnFn("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if a.identity == nil {
		printlnFn("Not signed in")
		return nil
	}
	out := a.ledger.Snapshot(ctx)
	if out.Record != nil && out.Record.UserName != "" {
		printlnFn(fmt.Sprintf("%s (%s, %s)", out.Record.UserName, a.identity.ID, a.identity.Kind))
		return nil
	}
	printlnFn(fmt.Sprintf("%s (%s)", a.identity.ID, a.identity.Kind))
	return nil
}

func (a *App) signedIn(ctx context.Context, id *models.Identity) {
	a.identity = id
	printlnFn("Signed in as", id.ID)
	a.resumeStreaks(ctx)
}
