// Package main provides the proposals API binary: the HTTP server and the
// account administration commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	_ "github.com/sirpyerre/proposals-api/docs"
	"github.com/sirpyerre/proposals-api/internal/api"
	"github.com/sirpyerre/proposals-api/internal/core/domain"
	"github.com/sirpyerre/proposals-api/internal/core/ports"
	"github.com/sirpyerre/proposals-api/internal/infrastructure/config"
	httpserver "github.com/sirpyerre/proposals-api/internal/infrastructure/http"
	"github.com/sirpyerre/proposals-api/pkg/logger"
)

var (
	Version   = "0.1.0"
	BuildTime = "dev"
)

const appName = "proposals-api"

// @title                       Proposals API
// @version                     1.0
// @description                 Owner-scoped clients and proposals with email or phone number login.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "proposals",
		Short:         "Client and proposal management API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file read before the environment")

	cmd.AddCommand(serveCmd(&envFile), createSuperuserCmd(&envFile), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func serveCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *envFile)
		},
	}
}

func serve(ctx context.Context, envFile string) error {
	cfg, err := config.Load(ctx, envFile)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: appName,
		Env:     cfg.Env,
	})

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	router := api.NewRouter(api.Deps{
		Auth:      a.auth,
		Tokens:    a.tokens,
		Clients:   a.clients,
		Proposals: a.proposals,
		Readiness: a.readiness,
		Logger:    log,
	})

	return httpserver.NewServer(router, cfg.Port, log).Run(ctx)
}

func createSuperuserCmd(envFile *string) *cobra.Command {
	var input ports.CreateUserInput

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create a staff account with superuser rights",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(ctx, *envFile)
			if err != nil {
				return err
			}

			log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: appName, Env: cfg.Env})
			a, err := newApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.close()

			user, err := a.auth.CreateSuperuser(ctx, input)
			if err != nil {
				if verr, ok := domain.IsValidationError(err); ok {
					for field, msg := range verr.Fields {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
					}
					return errors.New("superuser not created")
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Superuser created successfully (id %s).\n", user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&input.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&input.PhoneNumber, "phone", "", "Phone number in E.164 format")
	cmd.Flags().StringVar(&input.Password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
