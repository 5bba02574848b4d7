package report

import (
	"encoding/json"
	"time"

	"github.com/recrep/recrep/internal/crashes"
	"gopkg.in/yaml.v2"
)

// DefaultLookbackDays is how far back crashes are included when no start
// date is configured.
const DefaultLookbackDays = 90

// Configuration holds the report options of a single run.
type Configuration struct {
	Organization      string
	Application       string
	Version           string
	DistributionGroup string
	StartDate         string

	// Threshold is the crash count baseline, nil when disabled.
	Threshold         *int64
	UseArithmeticMean bool
	ShowOSInformation bool
	FilterOutErrors   bool
}

// DefaultStartDate returns the date DefaultLookbackDays before now as
// YYYY-MM-DD.
func DefaultStartDate(now time.Time) string {
	return now.AddDate(0, 0, -DefaultLookbackDays).Format("2006-01-02")
}

// Document is the rendering-ready report: the retained crash groups plus the
// fields derived by Transform.
type Document struct {
	Organization string `json:"organization"`
	Application  string `json:"application"`
	Version      string `json:"version"`

	Threshold      *int64 `json:"threshold,omitempty"`
	ArithmeticMean *int64 `json:"arithmeticMean,omitempty"`

	Crashes []Crash `json:"errorGroups"`
}

// Empty reports whether no crash group is left to render.
func (d *Document) Empty() bool {
	return len(d.Crashes) == 0
}

// Crash is a retained crash group with its derived fields.
type Crash struct {
	ErrorGroupID       string `json:"errorGroupId,omitempty"`
	ExceptionMethod    string `json:"exceptionMethod,omitempty"`
	AppVersion         string `json:"appVersion,omitempty"`
	AppBuild           string `json:"appBuild,omitempty"`
	FirstOccurrence    string `json:"firstOccurrence,omitempty"`
	ExceptionFile      string `json:"exceptionFile,omitempty"`
	ExceptionClassName string `json:"exceptionClassName,omitempty"`
	DeviceCount        int64  `json:"deviceCount"`
	Count              int64  `json:"count"`
	ExceptionAppCode   *bool  `json:"exceptionAppCode,omitempty"`

	OperatingSystems []crashes.OSCount `json:"operatingSystems,omitempty"`

	Threshold         *int64 `json:"threshold,omitempty"`
	Percentage        string `json:"percentage,omitempty"`
	ThresholdExceeded *int64 `json:"thresholdExceeded,omitempty"`
	OSSummary         string `json:"osSummary,omitempty"`
}

func newCrash(g *crashes.CrashGroup) Crash {
	c := Crash{
		ErrorGroupID:       g.ErrorGroupID,
		ExceptionMethod:    g.ExceptionMethod,
		AppVersion:         g.AppVersion,
		AppBuild:           g.AppBuild,
		FirstOccurrence:    g.FirstOccurrence,
		ExceptionFile:      g.ExceptionFile,
		ExceptionClassName: g.ExceptionClassName,
		DeviceCount:        g.GetDeviceCount(),
		Count:              g.GetCount(),
		ExceptionAppCode:   g.ExceptionAppCode,
	}
	if g.OperatingSystems != nil {
		c.OperatingSystems = append([]crashes.OSCount{}, g.OperatingSystems...)
	}
	return c
}

// ShowJSON returns the document as indented JSON.
func (d *Document) ShowJSON() (string, error) {
	val, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return "", err
	}
	return string(val), nil
}

// ShowYAML returns the document as YAML, keyed like the JSON output.
func (d *Document) ShowYAML() (string, error) {
	val, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	ms := yaml.MapSlice{}
	if err := yaml.Unmarshal(val, &ms); err != nil {
		return "", err
	}
	out, err := yaml.Marshal(ms)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
