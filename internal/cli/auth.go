package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/models"
)

// getSimpleText and getPassword are swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for a username, password and preferred language and
// creates the account. The user still has to log in afterwards.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	if userName == "" {
		a.println("Username must not be empty.")
		return common.ErrInvalidCredentials
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	langText, err := getSimpleText(a.reader, "Preferred language ("+languageList()+") [English]", a.out)
	if err != nil {
		return err
	}
	lang := models.English
	if langText != "" {
		if lang, err = models.ParseLanguage(langText); err != nil {
			a.println("Unsupported language:", langText)
			return err
		}
	}

	if _, err := a.store.Register(ctx, userName, string(password), lang); err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			a.println("Username already exists.")
		} else {
			a.println("Registration failed:", err)
		}
		return err
	}

	a.println("Registration successful! Please login.")
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, lang, err := a.store.Authenticate(ctx, userName, string(password))
	if err != nil {
		a.println("Invalid username or password.")
		return err
	}

	a.userID, a.userName, a.lang = id, userName, lang
	a.printf("Welcome, %s!\n", userName)
	return nil
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("Not logged in.")
		return nil
	}
	a.userID, a.userName, a.lang = "", "", ""
	a.println("Logged out.")
	return nil
}

// Lang changes the preferred response language, for example "lang es".
func (a *App) Lang(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return common.ErrUnknownUser
	}
	if len(args) == 0 {
		a.printf("Current language: %s (available: %s)\n", a.lang, languageList())
		return nil
	}

	lang, err := models.ParseLanguage(strings.Join(args, " "))
	if err != nil {
		a.println("Unsupported language. Available:", languageList())
		return err
	}

	if err := a.store.UpdateLanguage(ctx, a.userName, lang); err != nil {
		a.println("Could not save language:", err)
		return err
	}

	a.lang = lang
	a.println("Language set to", lang)
	return nil
}

func languageList() string {
	names := make([]string, 0, 3)
	for _, l := range models.Languages() {
		names = append(names, l.String())
	}
	return strings.Join(names, ", ")
}
