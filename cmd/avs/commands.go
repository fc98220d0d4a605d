package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/johnayers/aws-vault-shuffle/internal/config"
	"github.com/johnayers/aws-vault-shuffle/internal/inventory"
	"github.com/johnayers/aws-vault-shuffle/internal/logging"
	"github.com/johnayers/aws-vault-shuffle/internal/models"
	"github.com/johnayers/aws-vault-shuffle/internal/output"
	"github.com/johnayers/aws-vault-shuffle/internal/providers/aws/backupvault"
	"github.com/johnayers/aws-vault-shuffle/internal/version"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "avs",
		Short: "Copy AWS Backup recovery points between AWS accounts at scale",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(logLevel)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level: debug, info, warn, or error")

	root.AddCommand(newListCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newListCmd() *cobra.Command {
	var (
		account     string
		regions     []string
		cfgPath     string
		roleARN     string
		externalID  string
		sessionName string
		outputFmt   string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all backup vaults and recovery points",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFmt != "table" && outputFmt != "json" && outputFmt != "summary" {
				return fmt.Errorf("unsupported output format %q (valid: table, json, summary)", outputFmt)
			}

			cfg, err := resolveConfig(cfgPath, account, regions, roleARN, externalID, sessionName)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Dry run: would scan account %s across %d region(s): %s\n",
					cfg.SourceAccount(), cfg.RegionCount(), strings.Join(cfg.Regions(), ", "))
				return nil
			}

			svc := inventory.NewService(backupvault.NewAdapter(cfg))

			s := spinner.New(spinner.CharSets[9], 200*time.Millisecond,
				spinner.WithWriter(cmd.ErrOrStderr()))
			s.Suffix = " Scanning backup vaults ..."
			scanStart := time.Now()
			s.Start()

			vaults, err := svc.ListAllVaults(cmd.Context(), cfg)
			s.Stop()
			if err != nil {
				return err
			}

			log.Info().
				Int("vaults", len(vaults)).
				Dur("elapsed", time.Since(scanStart)).
				Msg("inventory complete")

			out := cmd.OutOrStdout()
			switch outputFmt {
			case "json":
				return output.RenderJSON(out, vaults)
			case "summary":
				output.RenderSummary(out, vaults)
			default:
				output.RenderTable(out, vaults)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "AWS account number (12 digits)")
	cmd.Flags().StringSliceVar(&regions, "regions", nil, "AWS regions to scan (comma separated)")
	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to configuration file (YAML)")
	cmd.Flags().StringVar(&roleARN, "role-arn", "", "IAM role ARN to assume for cross-account access")
	cmd.Flags().StringVar(&externalID, "external-id", "", "External ID for role assumption")
	cmd.Flags().StringVar(&sessionName, "session-name", "",
		fmt.Sprintf("STS session name (default: %s)", models.DefaultSessionName))
	cmd.Flags().StringVar(&outputFmt, "output", "table", "Output format: table, json, or summary")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve configuration and exit without scanning")

	return cmd
}

// resolveConfig builds the RegionConfig from either the config file or the
// account/regions flags. The two sources are mutually exclusive; this is
// enforced here, not in the core.
func resolveConfig(cfgPath, account string, regions []string, roleARN, externalID, sessionName string) (models.RegionConfig, error) {
	if cfgPath != "" {
		if account != "" || len(regions) > 0 {
			return models.RegionConfig{}, errors.New("--config is mutually exclusive with --account and --regions")
		}
		return config.LoadFromYAML(cfgPath)
	}

	if account == "" {
		return models.RegionConfig{}, errors.New("--account is required when --config is not provided")
	}
	if len(regions) == 0 {
		return models.RegionConfig{}, errors.New("--regions is required when --config is not provided")
	}
	return config.LoadFromFlags(account, regions, roleARN, externalID, sessionName)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}
