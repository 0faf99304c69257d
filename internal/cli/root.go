package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dexdogs/physaudit/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "physaudit",
	Short: "physaudit - physics-informed verification for carbon-market audits",
	Long: `physaudit checks the physical constants claimed in a Project Design
Document (PDD) against the published reference standard for its sector.

It syncs a sector's reference constants from the scientific oracle,
extracts the claimed values from the submitted document, and compares the
two under an explicit numeric tolerance. The verdict is a number
comparison, not a certification.

Built for the VVBs and auditors of the world.`,
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
		fmt.Println("physaudit v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.physaudit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

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

		viper.AddConfigPath(home + "/.physaudit")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match PHYSAUDIT_*
	viper.SetEnvPrefix("PHYSAUDIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults overlaid with
// config-file/env values. Flags are applied on top by each command.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("oracle.base_url"); v != "" {
		cfg.Oracle.BaseURL = v
	}
	if v := viper.GetString("oracle.owner"); v != "" {
		cfg.Oracle.Owner = v
	}
	if v := viper.GetString("oracle.repo"); v != "" {
		cfg.Oracle.Repo = v
	}
	if v := viper.GetString("oracle.branch"); v != "" {
		cfg.Oracle.Branch = v
	}
	if viper.IsSet("oracle.respect_robots") {
		cfg.Oracle.RespectRobots = viper.GetBool("oracle.respect_robots")
	}
	if viper.IsSet("http.timeout") {
		cfg.HTTP.Timeout = viper.GetDuration("http.timeout")
	}
	if v := viper.GetString("http.user_agent"); v != "" {
		cfg.HTTP.UserAgent = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetString("extract.mode"); v != "" {
		cfg.Extract.Mode = v
	}
	if viper.IsSet("extract.simulated_latency") {
		cfg.Extract.SimulatedLatency = viper.GetDuration("extract.simulated_latency")
	}
	if v := viper.GetString("extract.llm.model"); v != "" {
		cfg.Extract.LLM.Model = v
	}
	if viper.IsSet("verify.tolerance") {
		cfg.Verify.Tolerance = viper.GetFloat64("verify.tolerance")
	}
	if viper.IsSet("verify.field_map") {
		cfg.Verify.FieldMap = viper.GetStringMapString("verify.field_map")
	}
	if viper.IsSet("concurrency.workers") {
		cfg.Concurrency.Workers = viper.GetInt("concurrency.workers")
	}
	cfg.Output.Verbose = viper.GetBool("output.verbose") || verbose

	return cfg
}
