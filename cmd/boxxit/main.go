package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/MarcoPoloResearchLab/boxxit/internal/config"
	"github.com/MarcoPoloResearchLab/boxxit/internal/logging"
	"github.com/MarcoPoloResearchLab/boxxit/internal/model"
	"github.com/MarcoPoloResearchLab/boxxit/internal/seed"
	"github.com/MarcoPoloResearchLab/boxxit/internal/shell"
	"github.com/MarcoPoloResearchLab/boxxit/internal/state"
)

var (
	cfgFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "boxxit",
		Short: "Boxxit shared boards in your terminal",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell()
		},
	}

	setupFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("user-name", defaults.GetString("user.name"), "Display name of the current user")
	cmd.PersistentFlags().String("user-email", defaults.GetString("user.email"), "Email of the current user")
	cmd.PersistentFlags().String("history-file", defaults.GetString("history.file"), "Readline history file")
	cmd.PersistentFlags().Bool("demo", defaults.GetBool("seed.demo"), "Start from the demo dataset")

	bindFlag(cmd, "log.level", "log-level")
	bindFlag(cmd, "user.name", "user-name")
	bindFlag(cmd, "user.email", "user-email")
	bindFlag(cmd, "history.file", "history-file")
	bindFlag(cmd, "seed.demo", "demo")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if cfgFile != "" && errors.As(err, &configNotFound) {
			return err
		}
	}

	return nil
}

func runShell() error {
	appConfig, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(appConfig.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	currentUser := seed.DefaultUser
	currentUser.Name = appConfig.UserName
	currentUser.Email = appConfig.UserEmail

	idProvider := state.UUIDProvider{}
	store := state.New(state.Config{
		Initial:    initialState(appConfig, currentUser),
		IDProvider: idProvider,
		Logger:     logger,
	})

	appShell, err := shell.New(shell.Config{
		Store:      store,
		IDProvider: idProvider,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	lineReader, err := shell.NewLineReader(appConfig.HistoryFile)
	if err != nil {
		return err
	}
	defer lineReader.Close() //nolint:errcheck

	fmt.Printf("Boxxit — signed in as %s <%s>. Type help to get started.\n",
		currentUser.Name, currentUser.Email)
	logger.Info("shell started", zap.String("user", currentUser.ID), zap.Bool("demo", appConfig.Demo))

	return appShell.Run(lineReader)
}

func initialState(appConfig config.AppConfig, currentUser model.User) model.AppState {
	if appConfig.Demo {
		return seed.Demo(time.Now().UnixMilli(), currentUser)
	}
	return seed.Empty(currentUser)
}
