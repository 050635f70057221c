package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/hansajasandeepabadalge/naiterm/internal/client/nai"
	"github.com/hansajasandeepabadalge/naiterm/internal/config"
	"github.com/hansajasandeepabadalge/naiterm/internal/db"
	"github.com/hansajasandeepabadalge/naiterm/internal/paths"
	"github.com/hansajasandeepabadalge/naiterm/internal/token"
)

// openClient wires the shared plumbing the auth subcommands need. The
// caller owns closing the returned cleanup.
func openClient() (*nai.Client, token.Store, func(), error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read config: %w", err)
	}

	if _, err := paths.EnsureDir(); err != nil {
		return nil, nil, nil, err
	}

	dbPath, err := paths.DB()
	if err != nil {
		return nil, nil, nil, err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	tokens := token.NewSQLiteStore(sqlDB)
	client := nai.New(cfg.APIURL, tokens, nai.WithTimeout(cfg.RequestTimeout))

	return client, tokens, func() { _ = sqlDB.Close() }, nil
}

func loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the backend",
		Long:  "Exchanges your email and password for a token pair and stores it locally.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, cleanup, err := openClient()
			if err != nil {
				return err
			}
			defer cleanup()

			creds, err := promptCredentials(email)
			if err != nil {
				return err
			}

			if err := client.Auth.Login(cmd.Context(), creds); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Println("Signed in.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when omitted)")

	return cmd
}

func registerCmd() *cobra.Command {
	var (
		email   string
		company string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, cleanup, err := openClient()
			if err != nil {
				return err
			}
			defer cleanup()

			creds, err := promptCredentials(email)
			if err != nil {
				return err
			}

			if company == "" {
				company, err = promptLine("Company name: ")
				if err != nil {
					return err
				}
			}

			reg := nai.Registration{
				Email:       creds.Email,
				Password:    creds.Password,
				CompanyName: company,
			}
			if err := client.Auth.Register(cmd.Context(), reg); err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Println("Account created. Run `naiterm login` to sign in.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when omitted)")
	cmd.Flags().StringVarP(&company, "company", "c", "", "company name (prompted when omitted)")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, cleanup, err := openClient()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := client.Auth.Logout(cmd.Context()); err != nil {
				return err
			}

			fmt.Println("Signed out.")
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, tokens, cleanup, err := openClient()
			if err != nil {
				return err
			}
			defer cleanup()

			current, err := tokens.Token(cmd.Context())
			if errors.Is(err, token.ErrNoToken) {
				fmt.Println("Not signed in.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Println("Signed in.")
			if !current.Expiry.IsZero() {
				fmt.Printf("Access token expires: %s\n", current.Expiry.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func promptCredentials(email string) (nai.Credentials, error) {
	var err error
	if email == "" {
		email, err = promptLine("Email: ")
		if err != nil {
			return nai.Credentials{}, err
		}
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(os.Stdin.Fd())
	fmt.Println()
	if err != nil {
		return nai.Credentials{}, fmt.Errorf("failed to read password: %w", err)
	}

	return nai.Credentials{Email: email, Password: string(password)}, nil
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
