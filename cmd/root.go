// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glanger-labs/glanger-cli/cmd/deploycmd"
	"github.com/glanger-labs/glanger-cli/cmd/networkcmd"
	"github.com/glanger-labs/glanger-cli/cmd/nftcmd"
	"github.com/glanger-labs/glanger-cli/cmd/verifycmd"
	"github.com/glanger-labs/glanger-cli/pkg/application"
	"github.com/glanger-labs/glanger-cli/pkg/cobrautils"
	"github.com/glanger-labs/glanger-cli/pkg/config"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/logging"
	"github.com/glanger-labs/glanger-cli/pkg/prompts"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

var (
	app *application.Glanger

	logLevel   string
	envFile    string
	configFile string

	Version = ""

	closeLog func() error
)

func NewRootCmd() *cobra.Command {
	// rootCmd represents the base command when called without any subcommands
	rootCmd := &cobra.Command{
		Use: "glanger",
		Long: `Glanger CLI deploys the GlangerNFT contract and drives an already deployed
instance: mint stages, pause, executor and withdrawals.

Networks come from the environment (a .env file is read when present) and
optionally from a yaml file given with --config.

To get started, deploy on a development chain with glanger deploy.`,
		PersistentPreRunE: createApp,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Disable printing the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.DefaultLogLevel, "log level for the application")
	rootCmd.PersistentFlags().StringVar(
		&envFile,
		"env-file",
		"",
		fmt.Sprintf("dotenv file to read, defaults to $%s or %s", constants.DotenvConfigPathEnvVar, constants.DefaultDotenvPath),
	)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "yaml file adding or overriding networks")

	// add sub commands
	rootCmd.AddCommand(deploycmd.NewCmd(app))
	rootCmd.AddCommand(verifycmd.NewCmd(app))
	rootCmd.AddCommand(networkcmd.NewCmd(app))
	rootCmd.AddCommand(nftcmd.NewCmd(app))

	cobrautils.ConfigureRootCmd(rootCmd)
	return rootCmd
}

func createApp(cmd *cobra.Command, _ []string) error {
	baseDir, err := setupEnv()
	if err != nil {
		return err
	}
	log, err := setupLogging(baseDir)
	if err != nil {
		return err
	}
	conf, err := config.Load(config.LoadOptions{
		EnvFile:    envFile,
		ConfigFile: configFile,
		Log:        log,
	})
	if err != nil {
		return err
	}
	app.Setup(baseDir, log, conf, prompts.NewPrompter())
	log.Info("command", zap.String("cmd", cmd.CommandPath()))
	return nil
}

func setupEnv() (string, error) {
	// Set base dir
	usr, err := user.Current()
	if err != nil {
		// no logger here yet
		return "", fmt.Errorf("unable to get system user: %w", err)
	}
	baseDir := filepath.Join(usr.HomeDir, constants.BaseDirName)

	// Create base dir if it doesn't exist
	if err := os.MkdirAll(baseDir, constants.DefaultPerms755); err != nil {
		// no logger here yet
		return "", fmt.Errorf("failed creating the basedir %s: %w", baseDir, err)
	}
	return baseDir, nil
}

func setupLogging(baseDir string) (*zap.Logger, error) {
	config := logging.DefaultConfig(baseDir)
	var err error
	config.DisplayLevel, err = logging.ToLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level configured: %s", logLevel)
	}
	var log *zap.Logger
	log, closeLog, err = logging.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed setting up logging, exiting: %w", err)
	}
	// create the user facing logger as a global var
	ux.NewUserLog(log, os.Stdout)
	return log, nil
}

func closeLogs() {
	if closeLog != nil {
		_ = closeLog()
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	app = application.New()
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	closeLogs()
	cobrautils.HandleErrors(err)
}
