/*
generate is the CLI surface the core expects to be wrapped in (spec
§6): `generate --start YEAR --end YEAR --consultants N [--seed S]
[--out PATH]`. It builds a config, runs the driver to completion, flushes
the two in-memory stores plus derived payroll to a SQLite database, and
prints a colored run summary table, following the teacher's cobra +
fatih/color + olekukonko/tablewriter reporting style.
*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/FX93Y2/ConsultFirmDBMockup/config"
	"github.com/FX93Y2/ConsultFirmDBMockup/simulation"
	"github.com/FX93Y2/ConsultFirmDBMockup/store/sqlite"
)

var (
	startYear   int
	endYear     int
	consultants int
	seed        int64
	outPath     string
)

func main() {
	root := &cobra.Command{
		Use:   "generate",
		Short: "Run the workforce and project simulators and write a SQLite database",
		RunE:  runGenerate,
	}
	root.Flags().IntVar(&startYear, "start", 2015, "first simulated year, inclusive")
	root.Flags().IntVar(&endYear, "end", 2015, "last simulated year, inclusive")
	root.Flags().IntVar(&consultants, "consultants", 20, "initial headcount")
	root.Flags().Int64Var(&seed, "seed", 42, "PRNG seed")
	root.Flags().StringVar(&outPath, "out", "consultfirm.db", "output SQLite database path")

	if err := root.Execute(); err != nil {
		color.Red("fatal: %v", err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := config.NewDefault()
	cfg.HorizonStartYear = startYear
	cfg.HorizonEndYear = endYear
	cfg.InitialConsultants = consultants
	cfg.Seed = seed

	driver, err := simulation.New(cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	summary, err := driver.Run()
	if err != nil {
		return fmt.Errorf("simulation aborted: %w", err)
	}

	db, err := sqlite.New(outPath)
	if err != nil {
		return fmt.Errorf("open output database: %w", err)
	}
	defer db.Close()

	if err := db.SeedReferenceData([]string{"client-001", "client-002", "client-003", "client-004", "client-005"}); err != nil {
		return fmt.Errorf("seed reference data: %w", err)
	}
	if err := db.FlushWorkforce(driver.Workforce); err != nil {
		return fmt.Errorf("flush workforce: %w", err)
	}
	if err := db.FlushPayroll(driver.Payroll()); err != nil {
		return fmt.Errorf("flush payroll: %w", err)
	}
	if err := db.FlushProjects(driver.Projects); err != nil {
		return fmt.Errorf("flush projects: %w", err)
	}

	color.Green("simulation complete: %s", outPath)
	printSummary(summary)
	return nil
}

func printSummary(summary simulation.Summary) {
	fmt.Println()
	color.Cyan("YEARLY WORKFORCE SUMMARY")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Year", "Hires", "Promotions", "Attritions", "Layoffs", "Continuations", "Headcount"})
	table.SetBorder(false)
	table.SetHeaderColor(
		tablewriter.Colors{tablewriter.FgMagentaColor, tablewriter.Bold},
		tablewriter.Colors{tablewriter.FgMagentaColor, tablewriter.Bold},
		tablewriter.Colors{tablewriter.FgMagentaColor, tablewriter.Bold},
		tablewriter.Colors{tablewriter.FgMagentaColor, tablewriter.Bold},
		tablewriter.Colors{tablewriter.FgMagentaColor, tablewriter.Bold},
		tablewriter.Colors{tablewriter.FgMagentaColor, tablewriter.Bold},
		tablewriter.Colors{tablewriter.FgMagentaColor, tablewriter.Bold},
	)
	for _, y := range summary.Years {
		table.Append([]string{
			fmt.Sprintf("%d", y.Year),
			fmt.Sprintf("%d", y.Hires),
			fmt.Sprintf("%d", y.Promotions),
			fmt.Sprintf("%d", y.Attritions),
			fmt.Sprintf("%d", y.Layoffs),
			fmt.Sprintf("%d", y.Continuations),
			fmt.Sprintf("%d", y.HeadcountEnd),
		})
	}
	table.Render()

	fmt.Println()
	color.Cyan("PROJECT SUMMARY")
	fmt.Printf("created=%d completed=%d cancelled=%d payroll_records=%d\n",
		summary.ProjectsCreated, summary.ProjectsDone, summary.ProjectsCancelled, summary.PayrollRecords)

	if len(summary.CapacityWarnings) > 0 {
		fmt.Println()
		color.Yellow("CAPACITY WARNINGS (%d)", len(summary.CapacityWarnings))
		for _, w := range summary.CapacityWarnings {
			fmt.Println(" -", w)
		}
	}
}
