package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/xsboot/cmd/config"
	"github.com/minepkg/xsboot/cmd/repos"
	"github.com/minepkg/xsboot/internals/commands"
	"github.com/minepkg/xsboot/internals/globals"
	"github.com/minepkg/xsboot/internals/ownhttp"
	"github.com/minepkg/xsboot/internals/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set by main
	Version string
	// Commit is set by main
	Commit string
)

var logger = globals.Logger

var disableColors bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xsboot",
	Short: "Boots scala applications from maven and ivy repositories",
	Long:  "Fetches scala and applications from the configured repositories and prints their class paths",

	Example: `
  xsboot repos list
  xsboot repos check maven-central sonatype-oss-releases
  xsboot fetch org.scala-lang:scala-library:2.13.12
  xsboot scala 3.3.1`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if Version != "" {
		rootCmd.Version = Version
		ownhttp.UserAgent = "xsboot/" + Version
		globals.HTTPClient = ownhttp.New()
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(commands.ErrorBox(err.Error(), ""))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&disableColors, "no-color", "", false, "disable color output")
	rootCmd.PersistentFlags().String("repositories-file", "", "use the repositories of this file (like ~/.sbt/repositories)")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "never ask questions")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print more information")

	viper.BindPFlag("repositoriesfile", rootCmd.PersistentFlags().Lookup("repositories-file"))
	viper.BindPFlag("noninteractive", rootCmd.PersistentFlags().Lookup("non-interactive"))
	viper.BindPFlag("verboselogging", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(config.SubCmd)
	rootCmd.AddCommand(repos.New())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	globals.GlobalDir = filepath.Join(configDir, "xsboot")

	if disableColors || os.Getenv("CI") != "" || os.Getenv("NO_COLOR") != "" {
		gchalk.SetLevel(gchalk.LevelNone)
		logger.DisableColor()
		commands.EmojiEnabled = false
	}

	viper.AddConfigPath(globals.GlobalDir)
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	settings.SetDefaults()

	viper.SetEnvPrefix("XSBOOT")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verboselogging") {
		logger.Log("Using config file: " + viper.ConfigFileUsed())
	}
	logger.Verbose = viper.GetBool("verboselogging")
}
