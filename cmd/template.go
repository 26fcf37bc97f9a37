package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/amirotate/internal/rotation"
	"github.com/vietdv277/amirotate/internal/ui"
)

var templateCmd = &cobra.Command{
	Use:   "template <group>",
	Short: "Show the launch template versions of an Auto Scaling group",
	Long: `Find the launch template an Auto Scaling group uses and list its versions,
marking the default.

Examples:
  amirotate template web-asg`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplate,
}

func init() {
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}

	opts, err := rotationOptions(cfg, newLogger(cfg), false)
	if err != nil {
		return err
	}

	group, err := rotation.NewLocator(client, opts...).LocateGroup(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to locate launch template: %w", err)
	}

	versions, err := client.DescribeVersions(ctx, group.LaunchTemplateID)
	if err != nil {
		return fmt.Errorf("failed to describe launch template versions: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Auto Scaling Group: %s\n", ui.NameStyle.Render(group.Name))
	fmt.Fprintf(out, "Launch Template:    %s (%s)\n", ui.IDStyle.Render(group.LaunchTemplateID), group.LaunchTemplateName)
	if group.LaunchTemplateVer != "" {
		fmt.Fprintf(out, "Group Uses Version: %s\n", group.LaunchTemplateVer)
	}
	if group.MixedInstances {
		fmt.Fprintln(out, ui.MutedStyle.Render("(from mixed instances policy)"))
	}
	fmt.Fprintln(out)

	ui.PrintVersionTable(out, versions)
	return nil
}
