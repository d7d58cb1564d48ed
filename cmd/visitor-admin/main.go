// Command visitor-admin runs the gate dashboard API and its maintenance tasks.
//
// @title                       Visitor Admin API
// @version                     1.0
// @description                 Gate check-in, overdue alerts, edit audit and operator presence.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/visitorgate/visitor-admin/internal/infrastructure/config"
	"github.com/visitorgate/visitor-admin/pkg/logger"
)

const serviceName = "visitor-admin"

var envFile string

var rootCmd = &cobra.Command{
	Use:           serviceName,
	Short:         "Visitor management admin backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")
	rootCmd.AddCommand(serveCmd, overdueCmd, userCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and initialises the logger.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx, envFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: serviceName,
		Env:     cfg.Env,
	})
	return cfg, log, nil
}
