// Package user provides account seeding commands. The site has no public
// registration, so accounts and role grants are managed from the CLI.
package user

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lumen/internal/domain/user"
	"lumen/internal/infrastructure/auth"
	"lumen/internal/infrastructure/config"
	"lumen/internal/infrastructure/database"
	"lumen/internal/infrastructure/repository"
	"lumen/internal/shared/authorization"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/sanitize"
)

var (
	env      string
	email    string
	name     string
	password string
	admin    bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE:  runCreate,
	}
	createCmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	createCmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	createCmd.Flags().StringVar(&password, "password", "", "Password (required, min 8 characters)")
	createCmd.Flags().BoolVar(&admin, "admin", false, "Grant the admin role")

	grantCmd := &cobra.Command{
		Use:   "grant-admin",
		Short: "Grant the admin role to an existing account",
		RunE:  runRoleChange(func(ctx context.Context, roles user.RoleRepository, userID uint) error {
			return roles.AssignRole(ctx, userID, authorization.RoleAdmin.String())
		}),
	}
	grantCmd.Flags().StringVar(&email, "email", "", "Account email (required)")

	revokeCmd := &cobra.Command{
		Use:   "revoke-admin",
		Short: "Revoke the admin role from an account",
		RunE: runRoleChange(func(ctx context.Context, roles user.RoleRepository, userID uint) error {
			return roles.RevokeRole(ctx, userID, authorization.RoleAdmin.String())
		}),
	}
	revokeCmd.Flags().StringVar(&email, "email", "", "Account email (required)")

	cmd.AddCommand(createCmd, grantCmd, revokeCmd)
	return cmd
}

func setup() (*config.Config, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return cfg, nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	if !sanitize.IsValidEmail(email) {
		return fmt.Errorf("invalid email address")
	}
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	cfg, err := setup()
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepository(database.Get())
	roles := repository.NewRoleRepository(database.Get())

	if _, err := users.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("account %s already exists", email)
	} else if !stderrors.Is(err, user.ErrNotFound) {
		return fmt.Errorf("failed to check existing account: %w", err)
	}

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{Email: email, Name: name, PasswordHash: hash}
	if err := users.Create(ctx, u); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	if err := roles.AssignRole(ctx, u.ID, authorization.RoleUser.String()); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	if admin {
		if err := roles.AssignRole(ctx, u.ID, authorization.RoleAdmin.String()); err != nil {
			return fmt.Errorf("failed to assign admin role: %w", err)
		}
	}

	fmt.Printf("created account %s (id %d, admin=%v)\n", email, u.ID, admin)
	return nil
}

func runRoleChange(change func(ctx context.Context, roles user.RoleRepository, userID uint) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if !sanitize.IsValidEmail(email) {
			return fmt.Errorf("invalid email address")
		}

		if _, err := setup(); err != nil {
			return err
		}
		defer database.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		users := repository.NewUserRepository(database.Get())
		roles := repository.NewRoleRepository(database.Get())

		u, err := users.GetByEmail(ctx, email)
		if err != nil {
			if stderrors.Is(err, user.ErrNotFound) {
				return fmt.Errorf("no account for %s", email)
			}
			return fmt.Errorf("failed to look up account: %w", err)
		}

		if err := change(ctx, roles, u.ID); err != nil {
			return fmt.Errorf("failed to update roles: %w", err)
		}

		fmt.Printf("updated roles for %s (id %d)\n", email, u.ID)
		return nil
	}
}
