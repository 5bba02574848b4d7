package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/recrep/recrep/internal/crashes"
	"github.com/recrep/recrep/internal/metrics"
	crashreport "github.com/recrep/recrep/internal/report"
	"github.com/recrep/recrep/pkg/client"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// Input holds the output options of the report command.
type Input struct {
	outfile       string
	format        string
	exportXLSX    string
	exportChart   string
	publishBucket string
	publishKey    string
	publishRegion string
	osConcurrency int
}

func NewCmdReport() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Create the crash newsletter of an app version.",
		Example: `  recrep report -t $TOKEN -c my-org -a my-app
  recrep report -c my-org -a my-app -g "Beta Testers" --threshold 300 --show-os
  recrep report -c my-org -a my-app -v 3.4.1 --arithmetic-mean --omit-errors -o newsletter.txt`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, input, err := loadInput(time.Now())
			if err != nil {
				return err
			}
			manager, err := client.CreateManager(client.ConfigFromViper())
			if err != nil {
				return err
			}
			if err := processReport(cmd.Context(), manager, cfg, input, os.Stdout); err != nil {
				return errors.Wrap(err, "failed to create the crash report")
			}
			return nil
		},
	}

	cmd.Flags().StringP("version", "v", "",
		"The app version. If none is specified, the latest available version will be picked - be aware that the latest version might not have crashes yet.")
	cmd.Flags().StringP("outfile", "o", "",
		"An optional filename to write the report to instead of printing it to the console.")
	cmd.Flags().StringP("group", "g", "",
		"Distribution group used to search for the latest version released into this distribution group.")
	cmd.Flags().StringP("from", "f", "",
		"The start date (YYYY-MM-DD) from when crashes should be included in the report. Defaults to 90 days ago.")
	cmd.Flags().Int64("threshold", 0,
		"Crash count baseline, shows the percentage of it reached by each crash.")
	cmd.Flags().Bool("arithmetic-mean", false,
		"Only report crashes occurring at least as often as the arithmetic mean of all crashes.")
	cmd.Flags().Bool("show-os", false,
		"Show the operating systems affected by each crash.")
	cmd.Flags().Bool("omit-errors", false,
		"Only report crashes, leaving out handled errors.")
	cmd.Flags().Int("top", 20,
		"Maximum number of crash groups requested from the API.")
	cmd.Flags().Int("os-concurrency", 1,
		"Number of operating system lookups running at the same time.")
	cmd.Flags().String("format", formatText,
		"Output format: text, json or yaml.")
	cmd.Flags().String("export-xlsx", "",
		"Also save the reported crashes to this excel file.")
	cmd.Flags().String("export-chart", "",
		"Also save a HTML chart of the reported crashes to this file.")
	cmd.Flags().String("publish-bucket", "",
		"Also upload the report to this S3 bucket.")
	cmd.Flags().String("publish-key", "",
		"Object key of the published report. Defaults to reports/<organization>/<application>/<version>.txt")
	cmd.Flags().String("publish-region", "us-east-1",
		"Region of the S3 bucket.")

	return cmd
}

// loadInput builds the report configuration from the bound flags.
func loadInput(now time.Time) (*crashreport.Configuration, *Input, error) {
	cfg := &crashreport.Configuration{
		Organization:      viper.GetString("organization"),
		Application:       viper.GetString("application"),
		Version:           viper.GetString("version"),
		DistributionGroup: viper.GetString("group"),
		StartDate:         viper.GetString("from"),
		UseArithmeticMean: viper.GetBool("arithmetic-mean"),
		ShowOSInformation: viper.GetBool("show-os"),
		FilterOutErrors:   viper.GetBool("omit-errors"),
	}
	if cfg.StartDate == "" {
		cfg.StartDate = crashreport.DefaultStartDate(now)
	} else if _, err := time.Parse("2006-01-02", cfg.StartDate); err != nil {
		return nil, nil, fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", cfg.StartDate)
	}
	if threshold := viper.GetInt64("threshold"); threshold > 0 {
		cfg.Threshold = &threshold
	} else if threshold < 0 {
		return nil, nil, fmt.Errorf("invalid threshold %d, must be positive", threshold)
	}

	input := &Input{
		outfile:       viper.GetString("outfile"),
		format:        viper.GetString("format"),
		exportXLSX:    viper.GetString("export-xlsx"),
		exportChart:   viper.GetString("export-chart"),
		publishBucket: viper.GetString("publish-bucket"),
		publishKey:    viper.GetString("publish-key"),
		publishRegion: viper.GetString("publish-region"),
		osConcurrency: viper.GetInt("os-concurrency"),
	}
	switch input.format {
	case formatText, formatJSON, formatYAML:
	default:
		return nil, nil, fmt.Errorf("unknown format %q", input.format)
	}
	return cfg, input, nil
}

// processReport runs the pipeline: retrieval, enrichment, transformation,
// rendering and output. Nothing is written when a stage before the output
// fails.
func processReport(ctx context.Context, manager *crashes.Manager, cfg *crashreport.Configuration, input *Input, out io.Writer) error {
	timers := metrics.NewTimers()
	timers.Add("report-total")
	defer timers.Log()

	log.Debug("Retrieving crashes")
	timers.Set("retrieve")
	r, err := manager.CrashList(ctx, cfg.Version, cfg.DistributionGroup, cfg.StartDate)
	if err != nil {
		return errors.Wrap(err, "failed to get list of crashes")
	}
	log.Infof("Found %d crash groups for %s/%s v%s", len(r.CrashList.ErrorGroups), cfg.Organization, cfg.Application, r.Version)

	if cfg.ShowOSInformation {
		timers.Set("enrich")
		if failed := manager.Enrich(ctx, r, input.osConcurrency); failed > 0 {
			log.Warnf("OS information is missing for %d crash groups", failed)
		}
	}

	timers.Set("transform")
	doc := crashreport.Transform(r, cfg)

	timers.Set("render")
	var text string
	switch input.format {
	case formatJSON:
		text, err = doc.ShowJSON()
	case formatYAML:
		text, err = doc.ShowYAML()
	default:
		text, err = crashreport.Render(doc)
	}
	if err != nil {
		return err
	}

	timers.Set("write")
	if err := crashreport.Write(text, input.outfile, out); err != nil {
		return err
	}
	if input.exportXLSX != "" {
		if err := crashreport.ExportSpreadsheet(doc, input.exportXLSX); err != nil {
			return err
		}
	}
	if input.exportChart != "" {
		if err := crashreport.ExportChart(doc, input.exportChart); err != nil {
			return err
		}
	}
	if input.publishBucket != "" {
		timers.Set("publish")
		if err := publish(ctx, cfg, input, r.Version, text); err != nil {
			return err
		}
	}
	timers.Set("report-done")
	timers.Add("report-total")
	return nil
}

func publish(ctx context.Context, cfg *crashreport.Configuration, input *Input, version, text string) error {
	publisher, err := crashreport.NewPublisher(input.publishRegion, input.publishBucket)
	if err != nil {
		return errors.Wrap(err, "failed to create the S3 session")
	}
	key := input.publishKey
	if key == "" {
		key = crashreport.ObjectKey(cfg, version)
	}
	return publisher.Publish(ctx, key, text)
}
