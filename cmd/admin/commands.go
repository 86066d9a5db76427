package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/habitta/internal/auth"
	"github.com/BruksfildServices01/habitta/internal/config"
	dbpkg "github.com/BruksfildServices01/habitta/internal/db"
	"github.com/BruksfildServices01/habitta/internal/domain/access"
	"github.com/BruksfildServices01/habitta/internal/infra/repository"
	"github.com/BruksfildServices01/habitta/internal/jobs"
	"github.com/BruksfildServices01/habitta/internal/models"
	"github.com/BruksfildServices01/habitta/internal/validators"
)

const (
	nameFlag     = "nome"
	emailFlag    = "email"
	cpfFlag      = "cpf"
	passwordFlag = "senha"
	levelFlag    = "nivel"
)

// ======================================================
// MIGRATE
// ======================================================

func newMigrateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables, indexes and establishment types",
		RunE: func(_ *cobra.Command, _ []string) error {
			// NewDB já executa as migrações
			db := dbpkg.NewDB(cfg)
			defer closeDB(db)

			logrus.Info("database migrated")
			return nil
		},
	}
}

// ======================================================
// CREATE USER
// ======================================================

var createUserFlags = map[string]cobraflags.Flag{
	nameFlag: &cobraflags.StringFlag{
		Name:  nameFlag,
		Usage: "Full name",
	},
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Usage: "E-mail address",
	},
	cpfFlag: &cobraflags.StringFlag{
		Name:  cpfFlag,
		Usage: "CPF (11 digits, punctuation allowed)",
	},
	passwordFlag: &cobraflags.StringFlag{
		Name:  passwordFlag,
		Usage: "Initial password (min 6 characters)",
	},
	levelFlag: &cobraflags.StringFlag{
		Name:  levelFlag,
		Value: string(access.LevelComum),
		Usage: "Access level: comum, gerente or admin",
	},
}

func newCreateUserCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a back-office user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, password, err := userFromFlags()
			if err != nil {
				return err
			}

			db := dbpkg.NewDB(cfg)
			defer closeDB(db)

			return createUser(cmd.Context(), repository.NewUserGormRepository(db), user, password)
		},
	}

	cobraflags.RegisterMap(cmd, createUserFlags)
	return cmd
}

func userFromFlags() (*models.User, string, error) {
	name := strings.TrimSpace(createUserFlags[nameFlag].GetString())
	email := strings.ToLower(strings.TrimSpace(createUserFlags[emailFlag].GetString()))
	cpf := validators.NormalizeCPF(createUserFlags[cpfFlag].GetString())
	password := createUserFlags[passwordFlag].GetString()

	if name == "" {
		return nil, "", errors.New("--nome is required")
	}
	if !validators.IsEmailSyntaxValid(email) {
		return nil, "", fmt.Errorf("invalid e-mail: %q", email)
	}
	if !validators.IsCPFValid(cpf) {
		return nil, "", errors.New("CPF must have 11 digits")
	}
	if len(password) < auth.MinPasswordLength {
		return nil, "", fmt.Errorf("password must have at least %d characters", auth.MinPasswordLength)
	}

	level, err := access.ParseLevel(createUserFlags[levelFlag].GetString())
	if err != nil {
		return nil, "", fmt.Errorf("invalid level: %w", err)
	}

	return &models.User{
		Name:  name,
		Email: email,
		CPF:   cpf,
		Level: string(level),
	}, password, nil
}

func createUser(ctx context.Context, users *repository.UserGormRepository, user *models.User, password string) error {
	exists, err := users.ExistsByCPFOrEmail(ctx, user.CPF, user.Email, 0)
	if err != nil {
		return err
	}
	if exists {
		return errors.New("CPF or e-mail already registered")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := users.Create(ctx, user); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"nivel":   user.Level,
	}).Info("user created")
	return nil
}

// ======================================================
// SET LEVEL
// ======================================================

var setLevelFlags = map[string]cobraflags.Flag{
	cpfFlag: &cobraflags.StringFlag{
		Name:  cpfFlag,
		Usage: "CPF of the user",
	},
	levelFlag: &cobraflags.StringFlag{
		Name:  levelFlag,
		Usage: "New access level: comum, gerente or admin",
	},
}

func newSetLevelCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-level",
		Short: "Change the access level of a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cpf := validators.NormalizeCPF(setLevelFlags[cpfFlag].GetString())
			if !validators.IsCPFValid(cpf) {
				return errors.New("CPF must have 11 digits")
			}

			level, err := access.ParseLevel(setLevelFlags[levelFlag].GetString())
			if err != nil {
				return fmt.Errorf("invalid level: %w", err)
			}

			db := dbpkg.NewDB(cfg)
			defer closeDB(db)

			users := repository.NewUserGormRepository(db)

			user, err := users.GetByCPF(cmd.Context(), cpf)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("no user with CPF %s", cpf)
			}
			if err != nil {
				return err
			}

			if err := users.SetLevel(cmd.Context(), user.ID, string(level)); err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"nivel":   level,
			}).Info("user level changed")
			return nil
		},
	}

	cobraflags.RegisterMap(cmd, setLevelFlags)
	return cmd
}

// ======================================================
// PURGE TOKENS
// ======================================================

func newPurgeTokensCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "purge-tokens",
		Short: "Delete expired or used password reset tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db := dbpkg.NewDB(cfg)
			defer closeDB(db)

			return jobs.PurgeResetTokens(cmd.Context(), repository.NewUserGormRepository(db), func(n int64) {
				fmt.Printf("%d token(s) removed\n", n)
			})
		},
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
