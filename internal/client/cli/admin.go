package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/umsclient/internal/client/models"
)

func (a *App) printUsers(users []models.UserRecord) {
	if len(users) == 0 {
		printlnFn("No users")
		return
	}
	for _, u := range users {
		printlnFn(fmt.Sprintf("%s  %s  %s", u.ID, u.Username, u.Email))
	}
}

// ListUsers prints every user record the server knows about.
func (a *App) ListUsers(ctx context.Context) error {
	users, err := a.adminService.ListUsers(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	a.printUsers(users)
	return nil
}

// SearchUsers fetches the full list and filters it locally by username or
// email, the way the dashboard search box does.
func (a *App) SearchUsers(ctx context.Context, term string) error {
	users, err := a.adminService.SearchUsers(ctx, term)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	a.printUsers(users)
	return nil
}

// DeleteUser removes a user record by id.
func (a *App) DeleteUser(ctx context.Context, id string) error {
	if err := a.adminService.DeleteUser(ctx, id); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("User deleted")
	return nil
}

// AddUser prompts for the new user's details and creates the record.
func (a *App) AddUser(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	rec, err := a.adminService.CreateUser(ctx, username, email, password)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("User created: %s", rec.ID))
	return nil
}
