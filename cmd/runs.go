package cmd

import (
	"fmt"

	"enumeration-report/feature/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runsAOIFlag   string
	runsLimitFlag int
)

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recently published products",
	Long:  `Lists the most recent entries of the run ledger, optionally for one AOI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false, true, false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		runs, err := a.ledger.Recent(cmd.Context(), runsAOIFlag, runsLimitFlag)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		fmt.Printf("\n=== Report Runs (%d) ===\n", len(runs))
		for _, r := range runs {
			fmt.Printf("%s  %-40s  TN%-5s rows=%-5d paired=%-4d missing_acq_list=%-4d %s\n",
				r.CreatedAt.Format("2006-01-02 15:04:05"), r.ProductID, r.Track, r.Rows, r.Paired, r.MissingAcqList, r.Location)
		}
		return nil
	},
}

// verifyCmd represents the runs verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that uploaded products are still complete in storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true, true, false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		runs, err := a.ledger.Recent(cmd.Context(), runsAOIFlag, runsLimitFlag)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		a.logger.Info("Verifying uploaded products", zap.Int("runs", len(runs)), zap.String("bucket", a.cfg.Storage.Bucket))
		incomplete, err := report.VerifyUploads(cmd.Context(), a.store, a.cfg.Storage.Bucket, runs)
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}

		fmt.Println("\n=== Upload Verification ===")
		fmt.Printf("Runs Checked: %d\n", len(runs))
		fmt.Printf("Incomplete: %d\n", len(incomplete))
		for _, v := range incomplete {
			fmt.Printf("%s (%s): missing %v\n", v.ProductID, v.Location, v.Missing)
		}
		return nil
	},
}

func init() {
	flags := runsCmd.PersistentFlags()
	flags.StringVar(&runsAOIFlag, "aoi", "", "only consider runs of this AOI")
	flags.IntVar(&runsLimitFlag, "limit", 20, "maximum number of runs")
	runsCmd.AddCommand(verifyCmd)
	RootCmd.AddCommand(runsCmd)
}
