package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vietdv277/amirotate/internal/rotation"
	"github.com/vietdv277/amirotate/internal/ui"
	"github.com/vietdv277/amirotate/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [group...]",
	Short: "Rotate launch templates to the latest AMI",
	Long: `For each configured Auto Scaling group, find its launch template and the
newest AMI matching its tag filters. If the template's default version uses a
different image, create a new version with that image and make it the default.

A failing group is reported and the run continues with the next one.

Examples:
  amirotate run                      # All groups in config.yaml
  amirotate run web-asg api-asg      # Only these groups
  amirotate run --dry-run            # Report what would change
  amirotate run --select             # Pick groups interactively
  amirotate run --output json        # Machine-readable report`,
	RunE: runRotate,
}

var (
	runDryRun      bool
	runSelect      bool
	runOutput      string
	runFailOnError bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Resolve and compare without creating versions")
	runCmd.Flags().BoolVar(&runSelect, "select", false, "Pick groups interactively")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "table", "Report format: table, json, yaml")
	runCmd.Flags().BoolVar(&runFailOnError, "fail-on-error", false, "Exit non-zero if any group failed")
}

func runRotate(cmd *cobra.Command, args []string) error {
	if err := validateOutput(runOutput); err != nil {
		return err
	}

	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}

	specs, err := cfg.Select(args)
	if err != nil {
		return err
	}

	if runSelect {
		specs, err = ui.SelectGroups(specs)
		if err != nil {
			return err
		}
	}

	log := newLogger(cfg)
	ctx := context.Background()

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}

	if identity, err := client.GetCallerIdentity(ctx); err != nil {
		log.Warn("could not verify AWS identity", slog.String("error", err.Error()))
	} else {
		log.Info("starting rotation",
			slog.String("account", identity.Account),
			slog.String("region", client.Region()),
			slog.Int("groups", len(specs)),
			slog.Bool("dry_run", runDryRun),
		)
	}

	opts, err := rotationOptions(cfg, log, runDryRun)
	if err != nil {
		return err
	}

	reports := rotation.NewDriver(client, opts...).Run(ctx, specs)

	if err := writeReports(cmd.OutOrStdout(), runOutput, reports); err != nil {
		return err
	}

	if runFailOnError {
		failed := 0
		for _, r := range reports {
			if r.Failed() {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d groups failed", failed, len(reports))
		}
	}

	return nil
}

func validateOutput(format string) error {
	switch format {
	case "table", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("invalid output format %q (valid: table, json, yaml)", format)
	}
}

func writeReports(w io.Writer, format string, reports []types.GroupReport) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(reports)
	default:
		ui.PrintReportTable(w, reports)
		return nil
	}
}
