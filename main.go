package main

import (
	"fmt"
	"log"
	"os"

	"gohare/app"
	"gohare/internal/config"
	"gohare/internal/errors"
	"gohare/internal/report"
	"gohare/internal/transform"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load environment variables from .env file (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("[Main] No .env file found, using system environment")
	}

	rootCmd := &cobra.Command{
		Use:   "gohare",
		Short: "Exploratory report over juvenile snowshoe hare trapping records",
	}

	rootCmd.AddCommand(
		newReportCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReportCmd() *cobra.Command {
	var input string
	var outDir string
	var xlsx string
	var lenient bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the report from a trapping records file",
		Long: `Load a CSV or XLSX trapping records file, filter to juveniles,
run the analyses, and write the report pages to the output directory.

Example: gohare report --input bonanza_hares.csv --out out/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, input, outDir, xlsx, lenient)
			if err != nil {
				return err
			}

			bundle, err := buildBundle(cfg)
			if err != nil {
				return err
			}

			page, err := report.Write(bundle, cfg.Output.Dir)
			if err != nil {
				return err
			}
			log.Printf("[Main] Report written to %s", page)

			if cfg.Output.ExcelFile != "" {
				if err := report.WriteSummary(bundle, cfg.Output.ExcelFile); err != nil {
					return err
				}
				log.Printf("[Main] Summary workbook written to %s", cfg.Output.ExcelFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Trapping records file (.csv or .xlsx)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory for the report pages")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "Also export the summary tables to this XLSX file")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "Drop unparseable rows with a warning instead of aborting")

	return cmd
}

func newServeCmd() *cobra.Command {
	var input string
	var port string
	var lenient bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the report and serve it over HTTP",
		Long: `Run the full pipeline once at startup, then serve the rendered
report and charts. Nothing is recomputed per request.

Example: gohare serve --input bonanza_hares.csv --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, input, "", "", lenient)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}

			bundle, err := buildBundle(cfg)
			if err != nil {
				return err
			}

			srv, err := report.NewServer(bundle, cfg.Server.Port)
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Trapping records file (.csv or .xlsx)")
	cmd.Flags().StringVar(&port, "port", "", "HTTP port (default from PORT env)")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "Drop unparseable rows with a warning instead of aborting")

	return cmd
}

// loadConfig merges environment configuration with CLI flags; flags
// win when set.
func loadConfig(cmd *cobra.Command, input, outDir, xlsx string, lenient bool) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if input != "" {
		cfg.Input.File = input
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	if xlsx != "" {
		cfg.Output.ExcelFile = xlsx
	}
	if cmd.Flags().Changed("lenient") {
		cfg.Input.Lenient = lenient
	}

	if cfg.Input.File == "" {
		return nil, errors.ConfigInvalid("input file is required (HARE_INPUT or --input)")
	}
	return cfg, nil
}

func buildBundle(cfg *config.Config) (*app.ReportBundle, error) {
	service := app.NewReportService(transform.DefaultOptions(), cfg.Input.Lenient)
	return service.Build(cfg.Input.File)
}
