package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bobinette/knowledgehub/log"
	"github.com/bobinette/knowledgehub/render"
)

var (
	// flags
	env          string
	configFile   string
	outputFormat string
	envFile      string

	// logger
	logger log.Logger

	app *App
)

func init() {
	RootCmd.PersistentFlags().StringVar(&env, "env", "dev", "environment, selects config.<env>.toml")
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file")
	RootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: text, json or yaml")
	RootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file of environment variables to load")
}

var RootCmd = cobra.Command{
	Use:           "khub",
	Short:         "Read and write articles on KnowledgeHub",
	Long:          "Read and write articles on KnowledgeHub, with an AI writing assistant",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return err
		}

		level := os.Getenv("KHUB_LOG_LEVEL")
		if level == "" {
			level = "warn"
		}
		logger = log.NewWithOutput(env, cmd.ErrOrStderr(), level)

		path, explicit := configFile, configFile != ""
		if !explicit {
			path = DefaultConfigPath(env)
		}
		cfg, err := LoadConfig(path, explicit)
		if err != nil {
			return err
		}

		format := outputFormat
		if format == "" {
			format = cfg.Output.Format
		}
		format, err = render.ParseFormat(format)
		if err != nil {
			return err
		}

		closeApp()
		app, err = NewApp(cfg, format, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeApp()
	},
}

// closeApp releases the session storage. A failed command skips the post
// run, so it is called again before building a new app and on exit.
func closeApp() error {
	if app == nil {
		return nil
	}
	err := app.Close()
	app = nil
	return err
}

// reportedError is an error the user has already been told about through a
// notice.
type reportedError struct {
	error
}

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err}
}
