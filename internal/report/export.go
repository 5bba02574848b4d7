package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const crashesSheetName = "crashes"

var crashesSheetHeader = []interface{}{
	"Error_Group_ID", "Count", "Device_Count", "Percentage", "First_Occurrence",
	"App_Version", "App_Build", "Exception_File", "Exception_Class", "Exception_Method",
	"Operating_Systems",
}

// label names a crash in exports.
func (c *Crash) label() string {
	switch {
	case c.ExceptionClassName != "" && c.ExceptionMethod != "":
		return c.ExceptionClassName + "." + c.ExceptionMethod
	case c.ExceptionClassName != "":
		return c.ExceptionClassName
	case c.ErrorGroupID != "":
		return c.ErrorGroupID
	}
	return "unknown"
}

// ExportSpreadsheet saves the retained crash groups of the document to an
// excel file, one row per group.
func ExportSpreadsheet(doc *Document, path string) error {
	sheet := excelize.NewFile()
	defer func() {
		if err := sheet.Close(); err != nil {
			log.Error(err)
		}
	}()

	if err := sheet.SetSheetName("Sheet1", crashesSheetName); err != nil {
		return err
	}
	header := crashesSheetHeader
	if err := sheet.SetSheetRow(crashesSheetName, "A1", &header); err != nil {
		return err
	}
	for idx, c := range doc.Crashes {
		row := []interface{}{
			c.ErrorGroupID, c.Count, c.DeviceCount, c.Percentage, c.FirstOccurrence,
			c.AppVersion, c.AppBuild, c.ExceptionFile, c.ExceptionClassName, c.ExceptionMethod,
			c.OSSummary,
		}
		if err := sheet.SetSheetRow(crashesSheetName, fmt.Sprintf("A%d", idx+2), &row); err != nil {
			return err
		}
	}

	if err := sheet.SaveAs(path); err != nil {
		return fmt.Errorf("couldn't save spreadsheet %s: %w", path, err)
	}
	log.Infof("Spreadsheet written to %s", path)
	return nil
}

// RenderChart writes an HTML bar chart of the occurrences of each crash group.
func RenderChart(doc *Document, w io.Writer) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Crashes of %s/%s v%s", doc.Organization, doc.Application, doc.Version),
			Subtitle: "Occurrences per crash group",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
	)

	labels := make([]string, 0, len(doc.Crashes))
	occurrences := make([]opts.BarData, 0, len(doc.Crashes))
	devices := make([]opts.BarData, 0, len(doc.Crashes))
	for i := range doc.Crashes {
		labels = append(labels, doc.Crashes[i].label())
		occurrences = append(occurrences, opts.BarData{Value: doc.Crashes[i].Count})
		devices = append(devices, opts.BarData{Value: doc.Crashes[i].DeviceCount})
	}
	bar.SetXAxis(labels).
		AddSeries("Occurrences", occurrences).
		AddSeries("Devices", devices)

	return bar.Render(w)
}

// ExportChart saves the chart of RenderChart to path.
func ExportChart(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("couldn't create chart file %s: %w", path, err)
	}
	defer f.Close()

	if err := RenderChart(doc, f); err != nil {
		return fmt.Errorf("couldn't render chart: %w", err)
	}
	log.Infof("Chart written to %s", path)
	return nil
}
