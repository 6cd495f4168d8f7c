package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/mindfleet/internal/logging"
	"github.com/ppiankov/mindfleet/internal/model"
	"github.com/ppiankov/mindfleet/internal/server"
)

var (
	cfgFile      string
	verbose      bool
	rosterSource string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mindfleet",
	Short: "Mindfleet - emotional well-being analytics for field teams",
	Long: `Mindfleet turns per-employee emotional signals into fleet-level indicators:
a global risk gauge, a fire list of people who need a call today,
an incoherence rate, a resilience ranking, a cohesion index, and
anxiety and anger breakdowns by manager and hour.

An optional LLM writes a short executive briefing on top of the numbers.
The briefing never changes a metric.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mindfleet %s\n", server.Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.mindfleet/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&rosterSource, "roster", "", "roster source: \"mock\" or a YAML/JSON file (overrides roster.source)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("roster.source", rootCmd.PersistentFlags().Lookup("roster"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".mindfleet"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	configureEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// configureEnv maps MINDFLEET_SECTION_KEY variables onto section.key
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("MINDFLEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// loadConfig layers flags, env and the config file over the defaults
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	setDefaults(v, cfg)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so env variables resolve without a config file
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("roster.source", cfg.Roster.Source)
	v.SetDefault("roster.seed", cfg.Roster.Seed)

	v.SetDefault("llm.provider", cfg.LLM.Provider)
	v.SetDefault("llm.model", cfg.LLM.Model)
	v.SetDefault("llm.api_key", cfg.LLM.APIKey)
	v.SetDefault("llm.base_url", cfg.LLM.BaseURL)
	v.SetDefault("llm.timeout", cfg.LLM.Timeout)
	v.SetDefault("llm.max_tokens", cfg.LLM.MaxTokens)
	v.SetDefault("llm.http_proxy", cfg.LLM.HTTPProxy)
	v.SetDefault("llm.https_proxy", cfg.LLM.HTTPSProxy)
	v.SetDefault("llm.no_proxy", cfg.LLM.NoProxy)

	v.SetDefault("briefing.timeout", cfg.Briefing.Timeout)
	v.SetDefault("briefing.retries", cfg.Briefing.Retries)
	v.SetDefault("briefing.requests_per_minute", cfg.Briefing.RequestsPerMinute)
	v.SetDefault("briefing.pending_text", cfg.Briefing.PendingText)
	v.SetDefault("briefing.fallback_text", cfg.Briefing.FallbackText)
	v.SetDefault("briefing.empty_text", cfg.Briefing.EmptyText)

	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	v.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)

	v.SetDefault("concurrency.batch_workers", cfg.Concurrency.BatchWorkers)

	v.SetDefault("output.verbose", cfg.Output.Verbose)
	v.SetDefault("output.log_format", cfg.Output.LogFormat)
}

// setup loads the effective config and builds the logger for a command
func setup() (*model.Config, *logrus.Logger, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.NewLogger(cfg.Output.Verbose, cfg.Output.LogFormat), nil
}
