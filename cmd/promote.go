package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vietdv277/amirotate/internal/rotation"
)

var promoteCmd = &cobra.Command{
	Use:   "promote <template-id> <version>",
	Short: "Make a launch template version the default",
	Long: `Set the default version of a launch template.

Use this after a run reports a PartialUpdateFailure: the new version was
created but could not be made the default.

Examples:
  amirotate promote lt-0123456789abcdef0 7
  amirotate promote lt-0123456789abcdef0 7 --yes`,
	Args: cobra.ExactArgs(2),
	RunE: runPromote,
}

var promoteYes bool

func init() {
	rootCmd.AddCommand(promoteCmd)

	promoteCmd.Flags().BoolVarP(&promoteYes, "yes", "y", false, "Skip confirmation")
}

func runPromote(cmd *cobra.Command, args []string) error {
	templateID := args[0]
	version, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || version <= 0 {
		return fmt.Errorf("invalid version %q", args[1])
	}

	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	if !promoteYes {
		fmt.Printf("Launch Template: %s\n", templateID)
		fmt.Printf("New Default:     %d\n", version)
		fmt.Print("\nProceed? [y/N]: ")

		reader := bufio.NewReader(os.Stdin)
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))

		if response != "y" && response != "yes" {
			fmt.Println("Promotion cancelled")
			return nil
		}
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

	if err := rotation.NewUpdater(client, opts...).Promote(ctx, templateID, version); err != nil {
		return fmt.Errorf("failed to promote version: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Version %d is now the default for %s\n", version, templateID)
	return nil
}
