package report

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/recrep/recrep/internal/crashes"
	log "github.com/sirupsen/logrus"
)

const (
	// osPercentageCutoff is the share of affected devices an OS needs to
	// appear in the OS summary.
	osPercentageCutoff = 5.0
	osSummarySeparator = "| "
)

// Transform builds the rendering document of a report. The steps run in a
// fixed order: error filtering, threshold annotation, arithmetic mean
// filtering and OS summaries. The report itself is not modified.
func Transform(r *crashes.Report, cfg *Configuration) *Document {
	doc := &Document{
		Organization: cfg.Organization,
		Application:  cfg.Application,
		Version:      r.Version,
	}

	doc.Crashes = make([]Crash, 0, len(r.CrashList.ErrorGroups))
	for i := range r.CrashList.ErrorGroups {
		g := &r.CrashList.ErrorGroups[i]
		if cfg.FilterOutErrors && !g.IsCrash() {
			continue
		}
		doc.Crashes = append(doc.Crashes, newCrash(g))
	}
	if doc.Empty() {
		log.Debug("No crashes left, skipping transformations")
		return doc
	}

	if cfg.Threshold != nil && *cfg.Threshold > 0 {
		annotateThreshold(doc, *cfg.Threshold)
	}
	if cfg.UseArithmeticMean {
		filterArithmeticMean(doc)
	}
	if cfg.ShowOSInformation {
		for i := range doc.Crashes {
			doc.Crashes[i].OSSummary = osSummary(&doc.Crashes[i])
		}
	}
	return doc
}

func annotateThreshold(doc *Document, threshold int64) {
	doc.Threshold = &threshold
	for i := range doc.Crashes {
		c := &doc.Crashes[i]
		percentage := float64(c.Count) / float64(threshold) * 100
		c.Threshold = &threshold
		c.Percentage = fmt.Sprintf("%.2f%%", percentage)
		if percentage >= 100.0 {
			c.ThresholdExceeded = &threshold
		}
	}
}

// filterArithmeticMean keeps the crashes occurring at least as often as the
// floored mean count. Nothing is filtered when all counts are zero.
func filterArithmeticMean(doc *Document) {
	counts := make(stats.Float64Data, 0, len(doc.Crashes))
	for _, c := range doc.Crashes {
		counts = append(counts, float64(c.Count))
	}
	sum, err := stats.Sum(counts)
	if err != nil || sum == 0 {
		return
	}
	mean := int64(sum) / int64(len(doc.Crashes))
	doc.ArithmeticMean = &mean

	kept := doc.Crashes[:0]
	for _, c := range doc.Crashes {
		if c.Count >= mean {
			kept = append(kept, c)
		}
	}
	doc.Crashes = kept
	log.Debugf("Arithmetic mean %d kept %d crashes", mean, len(kept))
}

// osSummary lists the operating systems holding more than 5% of the affected
// devices, e.g. "iOS 13: 60 crashes (60.00%)| iOS 12: 37 crashes (37.00%)".
func osSummary(c *Crash) string {
	if len(c.OperatingSystems) == 0 || c.DeviceCount <= 0 {
		return ""
	}
	entries := make([]string, 0, len(c.OperatingSystems))
	for _, osc := range c.OperatingSystems {
		percentage := float64(osc.Count) / float64(c.DeviceCount) * 100
		if percentage <= osPercentageCutoff {
			continue
		}
		entries = append(entries, fmt.Sprintf("%s: %d crashes (%.2f%%)", osc.Name, osc.Count, percentage))
	}
	if len(entries) == 0 {
		return ""
	}
	summary := strings.Join(entries, osSummarySeparator)
	if int64(strings.Count(summary, "|")) < c.DeviceCount {
		summary += " and more"
	}
	return summary
}
