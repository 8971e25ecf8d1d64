// cmd/erpctl/auth.go
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate against the backend and store the token",
		Flags: []cli.Flag{
			newBaseURLFlag(),
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "Backend username (prompted when omitted)",
				EnvVars: []string{"ERP_USERNAME"},
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Backend password (prompted when omitted)",
				EnvVars: []string{"ERP_PASSWORD"},
			},
		},
		Before: initAPI,
		Action: func(c *cli.Context) error {
			username := c.String("username")
			if username == "" {
				fmt.Print("Username: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read username: %w", err)
				}
				username = strings.TrimSpace(line)
			}

			password := c.String("password")
			if password == "" {
				fmt.Print("Password: ")
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Println()
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = string(raw)
			}

			user, err := state(c).api.Login(c.Context, username, password)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s)\n", user.FullName(), user.RoleDisplay)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Invalidate the stored token",
		Before: initAPI,
		Action: func(c *cli.Context) error {
			st := state(c)
			st.api.Restore(c.Context)
			st.api.Logout(c.Context)
			fmt.Println("Logged out")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "Show the current session's user",
		Before: requireAuth,
		Action: func(c *cli.Context) error {
			user, err := state(c).accounts.Profile(c.Context)
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s> role=%s\n", user.FullName(), user.Email, user.Role)
			return nil
		},
	}
}
