package crashes

// DistributionGroup is a named cohort a release was distributed to.
type DistributionGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Version is a release entry as returned by the recent releases endpoint.
// UploadedAt is kept as the raw ISO 8601 string, which sorts lexically.
type Version struct {
	ShortVersion       string              `json:"short_version"`
	UploadedAt         string              `json:"uploaded_at"`
	DistributionGroups []DistributionGroup `json:"distribution_groups,omitempty"`
}

// HasDistributionGroup reports whether the version was released to the group
// with the exact given name.
func (v *Version) HasDistributionGroup(name string) bool {
	for _, g := range v.DistributionGroups {
		if g.Name == name {
			return true
		}
	}
	return false
}

// OSCount is the number of devices affected by an error group on a single
// operating system.
type OSCount struct {
	Name  string `json:"operatingSystemName"`
	Count int64  `json:"errorCount"`
}

// CrashGroup is a bucket of similar crashes or errors.
type CrashGroup struct {
	ErrorGroupID       string `json:"errorGroupId,omitempty"`
	ExceptionMethod    string `json:"exceptionMethod,omitempty"`
	AppVersion         string `json:"appVersion,omitempty"`
	AppBuild           string `json:"appBuild,omitempty"`
	FirstOccurrence    string `json:"firstOccurrence,omitempty"`
	ExceptionFile      string `json:"exceptionFile,omitempty"`
	ExceptionClassName string `json:"exceptionClassName,omitempty"`

	DeviceCount *int64 `json:"deviceCount,omitempty"`

	// ExceptionAppCode is true for crashes and false for handled errors.
	ExceptionAppCode *bool  `json:"exceptionAppCode,omitempty"`
	Count            *int64 `json:"count,omitempty"`

	// OperatingSystems is only set by the enricher.
	OperatingSystems []OSCount `json:"operatingSystems,omitempty"`
}

// GetCount returns the occurrence count, zero when unknown.
func (c *CrashGroup) GetCount() int64 {
	if c.Count == nil {
		return 0
	}
	return *c.Count
}

// GetDeviceCount returns the number of affected devices, zero when unknown.
func (c *CrashGroup) GetDeviceCount() int64 {
	if c.DeviceCount == nil {
		return 0
	}
	return *c.DeviceCount
}

// IsCrash reports whether the group was flagged as an app crash.
func (c *CrashGroup) IsCrash() bool {
	return c.ExceptionAppCode != nil && *c.ExceptionAppCode
}

// Enrichable reports whether an OS breakdown can be looked up for the group.
func (c *CrashGroup) Enrichable() bool {
	return c.ErrorGroupID != ""
}

// CrashList holds the error groups in the order returned by the backend.
type CrashList struct {
	ErrorGroups []CrashGroup `json:"errorGroups"`
}

// ErrorGroupDetails is the per error group OS breakdown payload.
type ErrorGroupDetails struct {
	OperatingSystems []OSCount `json:"operatingSystems"`
	ErrorCount       int64     `json:"errorCount"`
}

// Report is the unit passed from retrieval to rendering.
type Report struct {
	Version   string
	CrashList CrashList
}
