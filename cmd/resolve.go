package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vietdv277/amirotate/internal/rotation"
	"github.com/vietdv277/amirotate/internal/ui"
	"github.com/vietdv277/amirotate/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Find the latest AMI matching tag filters",
	Long: `Look up the newest AMI whose tags contain every given value.
Matching is a case-sensitive substring match: --tag env=prod matches
"prod-v2" and "preprod".

Examples:
  amirotate resolve --tag Name=web --tag env=prod
  amirotate resolve --group web-asg           # Use the group's filters from config.yaml
  amirotate resolve --parameter /aws/service/ami-amazon-linux-latest/al2023-ami-kernel-default-x86_64`,
	RunE: runResolve,
}

var (
	resolveTags      []string
	resolveGroup     string
	resolveParameter string
)

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringArrayVarP(&resolveTags, "tag", "t", nil, "Tag filter as key=substring (repeatable)")
	resolveCmd.Flags().StringVarP(&resolveGroup, "group", "g", "", "Use the filters of a configured group")
	resolveCmd.Flags().StringVar(&resolveParameter, "parameter", "", "Read the image ID from an SSM parameter")
	resolveCmd.MarkFlagsMutuallyExclusive("tag", "group", "parameter")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	spec := types.GroupSpec{ImageParameter: resolveParameter}
	switch {
	case resolveGroup != "":
		groups, err := cfg.Select([]string{resolveGroup})
		if err != nil {
			return err
		}
		spec = groups[0]
	case len(resolveTags) > 0:
		spec.Tags, err = parseTags(resolveTags)
		if err != nil {
			return err
		}
	case resolveParameter == "":
		return fmt.Errorf("one of --tag, --group or --parameter is required")
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
	resolver := rotation.NewResolver(client, opts...)

	var img *types.Image
	if spec.ImageParameter != "" {
		img, err = resolver.ResolveParameter(ctx, client, spec.ImageParameter)
	} else {
		img, err = resolver.ResolveLatest(ctx, spec.Tags)
	}
	if err != nil {
		return fmt.Errorf("failed to resolve image: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	ui.PrintImageDetails(cmd.OutOrStdout(), img, loc)
	return nil
}

// parseTags turns key=value pairs into a constraint mapping
func parseTags(pairs []string) (map[string]string, error) {
	tags := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("invalid tag filter %q, expected key=value", p)
		}
		tags[key] = value
	}
	return tags, nil
}
