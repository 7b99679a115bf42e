// Package command provides CLI command definitions for estate-cli.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate and store the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "username",
				Aliases:  []string{"u"},
				Usage:    "Login username",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "password",
				Aliases:  []string{"p"},
				Usage:    "Login password",
				EnvVars:  []string{"NAINALAND_PASSWORD"},
				Required: true,
			},
		},
		Action: loginAction,
	}
}

func loginAction(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}

	user, err := cl.Login(c.Context, c.String("username"), c.String("password"))
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (id %d)\n", user.Username, user.ID)
	return nil
}

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Revoke the session and clear the stored token",
		Action: logoutAction,
	}
}

func logoutAction(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}

	if err := cl.Logout(c.Context); err != nil {
		return err
	}

	fmt.Println("Logged out")
	return nil
}

// StatusCommand returns the status command.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show session status",
		Action: statusAction,
	}
}

func statusAction(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}

	state, err := cl.Refresh(c.Context)
	if err != nil {
		return err
	}

	if c.String("output") == "json" {
		payload := map[string]any{"state": state.String()}
		if user := cl.User(); user != nil {
			payload["user"] = user
		}
		return renderJSON(payload)
	}

	if user := cl.User(); user != nil {
		fmt.Printf("%s as %s (id %d)\n", state, user.Username, user.ID)
	} else {
		fmt.Println(state)
	}
	return nil
}
