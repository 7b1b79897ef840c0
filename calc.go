package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tradeline-calculator/domain"
	"tradeline-calculator/repository"
	"tradeline-calculator/service"
)

var (
	calcBalance      string
	calcLimit        string
	calcTarget       string
	calcCustomTarget string
	calcShare        bool
	calcExport       string
	calcOutDir       string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute the additional credit needed from the command line",
	Example: `  tradeline calc --balance 18,000 --limit 18,000 --target standard
  tradeline calc --balance 18000 --limit 18000 --target custom --custom 25 --share --export json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, _, err := setup(); err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		svc := service.NewUtilizationService(repository.NewCalculationRepositoryMemory(1), nil, 0)
		ev, err := svc.Evaluate(ctx, domain.UtilizationInput{
			CurrentBalance:     calcBalance,
			CurrentCreditLimit: calcLimit,
			TargetMode:         domain.TargetMode(calcTarget),
			CustomTarget:       calcCustomTarget,
		})
		if err != nil {
			return err
		}

		printOutcome(out, ev.Outcome())
		if ev.Result == nil {
			return nil
		}

		if calcShare {
			share := service.NewShareService(service.WriterSharer{W: out}, nil)
			if _, err := share.Share(ctx, ev); err != nil && !errors.Is(err, service.ErrNothingToShare) {
				return err
			}
		}

		if calcExport != "" {
			exporter := service.NewExportService(service.FileExporter{Dir: calcOutDir})
			filename, err := exporter.Export(ctx, ev, service.ExportFormat(calcExport))
			switch {
			case errors.Is(err, service.ErrNothingToExport):
			case err != nil:
				return err
			default:
				fmt.Fprintf(out, "Exported to %s\n", filename)
			}
		}
		return nil
	},
}

func init() {
	calcCmd.Flags().StringVar(&calcBalance, "balance", "", "total balance owed across revolving accounts")
	calcCmd.Flags().StringVar(&calcLimit, "limit", "", "total credit limit across revolving accounts")
	calcCmd.Flags().StringVar(&calcTarget, "target", string(domain.TargetOptimal), "target mode: optimal (10%), standard (30%) or custom")
	calcCmd.Flags().StringVar(&calcCustomTarget, "custom", "", "custom target utilization percentage")
	calcCmd.Flags().BoolVar(&calcShare, "share", false, "print the share sentence")
	calcCmd.Flags().StringVar(&calcExport, "export", "", "write the result as json or yaml")
	calcCmd.Flags().StringVar(&calcOutDir, "out", ".", "directory for --export")
}

func printOutcome(w io.Writer, outcome domain.CalculationOutcome) {
	if outcome.Display == nil {
		fmt.Fprintln(w, "Enter your credit information to see results")
		return
	}

	d := outcome.Display
	fmt.Fprintf(w, "Current Utilization:         %s (%s)\n", d.CurrentUtilization, outcome.Band)
	fmt.Fprintf(w, "Target Total Credit Needed:  %s\n", d.RequiredTotalCredit)
	fmt.Fprintf(w, "Additional Credit Required:  %s\n", d.AdditionalCreditNeeded)
	fmt.Fprintln(w, d.Message)
}
