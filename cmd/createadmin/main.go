package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/moneyapp/internal/config"
	"github.com/moneyapp/internal/models"
	"github.com/moneyapp/internal/repository"
	"github.com/moneyapp/internal/service"
	"github.com/moneyapp/pkg/crypto"
	"golang.org/x/term"
)

// storeOpener connects the backend named by the configuration
type storeOpener func(cfg *config.Config) (repository.Store, func() error, error)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, repository.Open); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, open storeOpener) error {
	fs := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Username")
	email := fs.String("email", "", "Email address")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	configPath := fs.String("config", "config.yaml", "Path to configuration file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *email == "" {
		fmt.Fprintln(stdout, "Usage: createadmin -user <username> -email <email> [-password <password>] [-config <path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: user, email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, closeStore, err := open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStore()

	// Admin signup is always allowed here; the server flag only guards the public endpoint
	auth := service.NewAuthService(store, crypto.NewBcryptHasher(cfg.Auth.BcryptCost), nil, true)
	user, err := auth.Register(context.Background(), &service.RegisterRequest{
		Username: *username,
		Email:    *email,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return fmt.Errorf("user %s already exists: %w", *username, err)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Fprintf(stdout, "Admin %s created successfully with ID %d\n", user.Username, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
