package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/curriculoxpress/cxpress/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped
// in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, email and password and creates a new
// account. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if email == "" {
		log.Println("Email is required")
		return nil
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	if len(password) == 0 {
		log.Println("Password is required")
		return nil
	}

	user, err := a.api.Register(ctx, name, email, string(password))
	if err != nil {
		a.reportError(err)
		return err
	}

	fmt.Printf("Account created for %s, you can login now\n", user.Email)
	return nil
}

// Login prompts for credentials, authenticates against the server and
// adopts the returned token in the session store, persisting it so the
// next process start restores the session. The password is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if email == "" {
		log.Println("Email is required")
		return nil
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	if len(password) == 0 {
		log.Println("Password is required")
		return nil
	}

	token, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		a.reportError(err)
		return err
	}

	if err := a.session.Login(ctx, token); err != nil {
		log.Printf("Could not persist the session: %s", err.Error())
		return err
	}

	log.Println("Login successful")
	return nil
}

// Logout tears the session down. Safe to call while logged out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		log.Printf("Logout finished with an error: %s", err.Error())
		return err
	}
	fmt.Println("Logged out")
	return nil
}

// Whoami prints the subject and expiry of the held token.
func (a *App) Whoami(_ context.Context) {
	subject, expiresAt, ok := a.session.Claims()
	if !ok {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("User: %s\n", subject)
	if !expiresAt.IsZero() {
		fmt.Printf("Session expires: %s\n", expiresAt.Local())
	}
}
