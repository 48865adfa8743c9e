package cmd

import (
	"fmt"
	"time"

	"enumeration-report/core/config"
	"enumeration-report/feature/audit"
	"enumeration-report/feature/enumeration"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	aoiIDFlag     string
	aoiIndexFlag  string
	datePairsFlag string
	contextFlag   string
	uploadFlag    bool
	ledgerFlag    bool
)

// reportCmd groups the report generators
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate AOI product reports",
	Long:  `Generates one workbook per track of an AOI. Inputs come from flags or from a job context file.`,
}

// enumerationCmd represents the report enumeration command
var enumerationCmd = &cobra.Command{
	Use:   "enumeration",
	Short: "Compare pipeline products with the expected date pairs",
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := runContext()
		if err != nil {
			return err
		}

		a, err := newApp(uploadFlag, ledgerFlag, false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		startTime := time.Now()
		svc := enumeration.NewService(a.source, a.publisher, a.cfg.Report, a.logger)
		result, err := svc.Generate(cmd.Context(), enumeration.Request{
			AOIID:     rc.AOIID,
			AOIIndex:  rc.AOIIndex,
			DatePairs: rc.DatePairs,
		})
		if err != nil {
			return fmt.Errorf("enumeration report failed: %w", err)
		}

		fmt.Println("\n=== Enumeration Report ===")
		fmt.Printf("AOI: %s\n", result.AOIID)
		fmt.Printf("Expected Date Pairs: %d\n", len(result.Enumeration))
		for _, t := range result.Tracks {
			if t.Skipped {
				fmt.Printf("Track %s: skipped (no audit trail)\n", t.Track)
				continue
			}
			fmt.Printf("Track %s: %d date pairs, %d paired, %d missing acquisition lists, %d failed -> %s\n",
				t.Track, t.Summary.Total, t.Summary.Paired, t.Summary.MissingAcqList, t.Summary.Failed, t.Artifact.Dir)
		}

		a.logger.Info("Enumeration report completed",
			zap.String("aoi", result.AOIID),
			zap.Int("tracks", len(result.Tracks)),
			zap.Duration("execution_time", time.Since(startTime)),
		)
		return nil
	},
}

// auditCmd represents the report audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit how far each acquisition list got through the pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := runContext()
		if err != nil {
			return err
		}

		a, err := newApp(uploadFlag, ledgerFlag, false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		startTime := time.Now()
		svc := audit.NewService(a.source, a.publisher, a.cfg.Report, a.logger)
		result, err := svc.Generate(cmd.Context(), audit.Request{AOIID: rc.AOIID, AOIIndex: rc.AOIIndex})
		if err != nil {
			return fmt.Errorf("audit report failed: %w", err)
		}

		fmt.Println("\n=== Audit Report ===")
		fmt.Printf("AOI: %s\n", result.AOIID)
		for _, t := range result.Tracks {
			fmt.Printf("Track %s: %d acquisition lists, %d localized, %d ifg-cfgs, %d ifgs, %d missing slcs -> %s\n",
				t.Track, t.Summary.AcqLists, t.Summary.Localized, t.Summary.IfgCfgs, t.Summary.Ifgs, t.Summary.MissingSLCs, t.Artifact.Dir)
		}

		a.logger.Info("Audit report completed",
			zap.String("aoi", result.AOIID),
			zap.Int("tracks", len(result.Tracks)),
			zap.Duration("execution_time", time.Since(startTime)),
		)
		return nil
	},
}

// runContext reads the job context file, if any, and lets flags override it.
func runContext() (config.RunContext, error) {
	var rc config.RunContext
	if contextFlag != "" {
		loaded, err := config.LoadRunContext(contextFlag)
		if err != nil {
			return rc, err
		}
		rc = *loaded
	}
	rc = rc.Merge(aoiIDFlag, aoiIndexFlag, datePairsFlag)
	return rc, rc.Validate()
}

func init() {
	flags := reportCmd.PersistentFlags()
	flags.StringVar(&aoiIDFlag, "aoi-id", "", "AOI id")
	flags.StringVar(&aoiIndexFlag, "aoi-index", "", "index holding the AOI document")
	flags.StringVar(&contextFlag, "context", "", "job context file (e.g. _context.json)")
	flags.BoolVar(&uploadFlag, "upload", false, "upload products to object storage")
	flags.BoolVar(&ledgerFlag, "ledger", false, "record products in the run ledger")

	enumerationCmd.Flags().StringVar(&datePairsFlag, "date-pairs", "", "expected date pairs, comma separated (YYYYMMDD-YYYYMMDD)")

	reportCmd.AddCommand(enumerationCmd)
	reportCmd.AddCommand(auditCmd)
	RootCmd.AddCommand(reportCmd)
}
