package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/notewell/ms-notes-auth/app/entity"
	"github.com/notewell/ms-notes-auth/app/repository"
	"github.com/notewell/ms-notes-auth/app/service"
	"github.com/notewell/ms-notes-auth/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var userCreatePassword string

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <email> <user_name>",
	Short: "Create a user account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if userCreatePassword == "" {
			return errors.New("--password is required")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := sql.Open("mysql", cfg.DSN())
		if err != nil {
			return err
		}
		defer db.Close()

		email, userName := args[0], args[1]

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userCreatePassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		now := time.Now()
		user := &entity.User{
			UserName:           userName,
			NormalizedUserName: service.NormalizeUserName(userName),
			Email:              email,
			NormalizedEmail:    service.NormalizeEmail(email),
			PasswordHash:       string(hashedPassword),
			EmailConfirmed:     true,
			SecurityStamp:      uuid.NewString(),
			CreatedAt:          now,
			UpdatedAt:          now,
		}

		userRepo := repository.NewUserRepository(db)
		if existing, err := userRepo.FindByNormalizedEmail(context.Background(), user.NormalizedEmail); err != nil {
			return err
		} else if existing != nil {
			return fmt.Errorf("user with email %q already exists", email)
		}

		if err := userRepo.Create(context.Background(), user); err != nil {
			return err
		}

		fmt.Printf("user_id: %d\n", user.ID)
		fmt.Printf("email: %s\n", user.Email)
		fmt.Printf("user_name: %s\n", user.UserName)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userCreatePassword, "password", "", "password for the new account")
	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}
