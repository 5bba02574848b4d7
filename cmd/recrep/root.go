package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	logwriter "github.com/sirupsen/logrus/hooks/writer"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/recrep/recrep/pkg"
	"github.com/recrep/recrep/pkg/cmd/report"
	"github.com/recrep/recrep/pkg/cmd/versions"
	"github.com/recrep/recrep/pkg/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "recrep",
	Short: "Recycled Crep: Look at your crashes.",
	Long:  `recrep fetches the crashes of a mobile app version from AppCenter and writes them as a newsletter`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error

		// Validate logging level
		loglevel := viper.GetString("log-level")
		logrusLevel, err := log.ParseLevel(loglevel)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)

		// Additional log options
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})

		// stdout is reserved for the report
		log.SetOutput(os.Stderr)
		logFile, err := pkg.LogFilePath()
		if err != nil {
			log.Debugf("no log file available: %v", err)
			return
		}
		fdLog, err := os.OpenFile(logFile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			log.Errorf("error opening file %s: %v", logFile, err)
		} else {
			log.AddHook(&logwriter.Hook{
				Writer: fdLog,
				LogLevels: []log.Level{
					log.PanicLevel,
					log.FatalLevel,
					log.ErrorLevel,
					log.WarnLevel,
					log.InfoLevel,
					log.DebugLevel,
				},
			})
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initBindFlag(flag string) {
	err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag))
	if err != nil {
		log.Warnf("Unable to bind flag %s\n", flag)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default is $XDG_CONFIG_HOME/recrep/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "logging level")
	rootCmd.PersistentFlags().StringP("token", "t", "", "The AppCenter API token. Env: "+pkg.TokenEnv)
	rootCmd.PersistentFlags().StringP("organization", "c", "", "The organization the app belongs to.")
	rootCmd.PersistentFlags().StringP("application", "a", "", "The application identifier as seen in AppCenter urls.")
	rootCmd.PersistentFlags().String("api-url", "", "Override the AppCenter API URL.")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "Timeout of each request to the API.")
	for _, flag := range []string{"config", "log-level", "token", "organization", "application", "api-url", "timeout"} {
		initBindFlag(flag)
	}

	// Link in child commands
	rootCmd.AddCommand(report.NewCmdReport())
	rootCmd.AddCommand(versions.NewCmdVersions())
	rootCmd.AddCommand(version.NewCmdVersion())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix(pkg.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
	if err := viper.BindEnv("token", pkg.TokenEnv, pkg.EnvPrefix+"_TOKEN"); err != nil {
		log.Warnf("Unable to bind token env: %v", err)
	}

	cfgFile := viper.GetString("config")
	if cfgFile == "" {
		path, err := pkg.ConfigFilePath()
		if err != nil {
			// no config file
			return
		}
		cfgFile = path
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		log.Warnf("Unable to read config file %s: %v", cfgFile, err)
		return
	}
	log.Debugf("Using config file %s", viper.ConfigFileUsed())
}
