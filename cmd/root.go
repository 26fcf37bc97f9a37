package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "amirotate",
	Short: "Keep Auto Scaling group launch templates on the latest AMI",
	Long: `amirotate finds the launch template of each configured Auto Scaling group,
looks up the newest AMI matching the group's tag filters, and when the image
differs from the template's default version, creates a new version using it
and makes that version the default.

Commands:
  amirotate run                     # Rotate every group in config.yaml
  amirotate run web-asg --dry-run   # Show what would change for one group
  amirotate resolve --tag env=prod  # Find the latest matching AMI
  amirotate template web-asg        # Show a group's launch template versions
  amirotate promote lt-0abc 7       # Make a version the default
  amirotate status                  # Show AWS identity`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags (available to all subcommands)
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Config file (default config.yaml)")
	flags.StringP("profile", "p", "", "AWS profile to use")
	flags.StringP("region", "r", "", "AWS region to use (overrides AWS_REGION in the config file)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")
	flags.String("timezone", "", "Timezone for displaying image creation times (e.g. Asia/Kolkata)")
	flags.Bool("debug", false, "Enable debug output")

	// Bind flags to viper
	for _, name := range []string{"config", "profile", "region", "log-level", "log-format", "timezone", "debug"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func initConfig() {
	// Read from environment variables, e.g. AMIROTATE_LOG_LEVEL
	viper.SetEnvPrefix("AMIROTATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
