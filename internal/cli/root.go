// internal/cli/root.go
package autoworker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mwiater/autoworker/internal/appconfig"
	"github.com/mwiater/autoworker/internal/lang"
	"github.com/mwiater/autoworker/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

var boolSettings = []string{"debug", "jsonMode", "wordBoundary", "unescapeCode", "datasetLock", "continueOnError"}

var stringSettings = []string{"testFile", "entityDir", "framework", "language", "output", "casesFile", "entityExt", "logFile"}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "autoworker",
	Short: "Assemble test/entity bundles into a unit-test dataset",
	Long: `autoworker reads a test file, collects the source of every entity it references
from an entity directory, removes duplicate definitions and appends the result
to a JSON dataset of {prompt, framework, code, result} records.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if cfg.Debug {
			debugDump(cmd.OutOrStdout(), "config", cfg)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	err := rootCmd.Execute()
	_ = logging.Close()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := appconfig.Defaults()
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	flags.Bool("debug", false, "print the merged configuration and bundles")
	flags.Bool("jsonMode", false, "print command results as JSON")
	flags.String("logFile", "", "path to the log file (default autoworker.log)")

	flags.String("testFile", "", "test file to bundle; overwritten with the bundle document")
	flags.String("entityDir", "", "directory holding one source file per entity")
	flags.String("framework", "", "test framework name, e.g. pytest or jest")
	flags.String("language", defaults.LanguageTag, "entity language: "+languageChoices())
	flags.String("output", "", "dataset JSON file to append records to")
	flags.String("casesFile", "", "file with many tests, split into cases by run-all")
	flags.String("entityExt", defaults.EntityExt, "entity file extension")
	flags.Bool("wordBoundary", false, "match entity names on word boundaries instead of substrings")
	flags.Bool("unescapeCode", false, `turn literal \\ and \n sequences into backslashes and newlines in records`)
	flags.Bool("datasetLock", defaults.DatasetLock, "hold an advisory lock on <output>.lock while appending; the lock file is left next to the dataset")
	flags.Bool("continueOnError", false, "run-all: keep processing cases after one fails and report every failure at the end")
	flags.Int("cacheSize", defaults.CacheSize, "entity sources cached per run")

	for _, name := range append(append([]string{}, boolSettings...), stringSettings...) {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
	_ = viper.BindPFlag("cacheSize", flags.Lookup("cacheSize"))
}

// languageChoices lists the accepted --language values, e.g. "python|javascript".
func languageChoices() string {
	var tags []string
	for _, l := range lang.Supported() {
		tags = append(tags, l.String())
	}
	return strings.Join(tags, "|")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config file. A missing file is not an error.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// configFor returns the loaded configuration with the test file replaced by
// the first positional argument, if any.
func configFor(args []string) appconfig.Config {
	cfg := appconfig.Defaults()
	if currentConfig != nil {
		cfg = *currentConfig
	}
	if len(args) > 0 && args[0] != "" {
		cfg.TestFile = args[0]
	}
	return cfg
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// JSONModeEnabled returns true if JSON mode is enabled.
func JSONModeEnabled() bool { return viper.GetBool("jsonMode") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
