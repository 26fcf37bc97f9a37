package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/amirotate/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show AWS authentication status",
	Long: `Display the profile and region amirotate will use and verify
the credentials with STS.

Examples:
  amirotate status
  amirotate status --profile prod --region ap-southeast-1`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	fmt.Println("Current Status")
	fmt.Println(ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Println()

	profile := cfg.AWSProfile
	if profile == "" {
		profile = "(default)"
	}
	fmt.Printf("Profile:  %s\n", ui.NameStyle.Render(profile))
	fmt.Printf("Region:   %s\n", cfg.AWSRegion)
	fmt.Printf("Groups:   %d configured\n", len(cfg.Groups))
	fmt.Println()

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Print("Auth:     ")
	identity, err := client.GetCallerIdentity(ctx)
	if err != nil {
		fmt.Println(ui.FailedStyle.Render("✗ Not authenticated"))
		fmt.Printf("          %s\n", ui.MutedStyle.Render(err.Error()))
		if cfg.AWSProfile != "" {
			fmt.Println()
			fmt.Println("To authenticate:")
			fmt.Printf("  aws sso login --profile %s\n", cfg.AWSProfile)
		}
		return nil
	}

	fmt.Println(ui.SuccessStyle.Render("✓ Authenticated"))
	fmt.Printf("Account:  %s\n", identity.Account)
	fmt.Printf("User:     %s\n", identity.UserID)
	if identity.Arn != "" {
		fmt.Printf("ARN:      %s\n", ui.MutedStyle.Render(identity.Arn))
	}

	return nil
}
