package crashes

import (
	"encoding/json"
	"fmt"
)

// ParseVersions decodes the recent releases payload.
func ParseVersions(data []byte) ([]Version, error) {
	var versions []Version
	if err := json.Unmarshal(data, &versions); err != nil {
		return nil, &ParseError{What: "a version list", Err: err}
	}
	return versions, nil
}

// ParseCrashList decodes the error groups payload. A payload without the
// errorGroups member is rejected, it is what the backend answers for unknown
// apps.
func ParseCrashList(data []byte) (*CrashList, error) {
	var raw struct {
		ErrorGroups *[]CrashGroup `json:"errorGroups"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{What: "a crash list", NoApp: true, Err: err}
	}
	if raw.ErrorGroups == nil {
		return nil, &ParseError{What: "a crash list", NoApp: true, Err: fmt.Errorf("missing field errorGroups")}
	}
	for i := range *raw.ErrorGroups {
		g := &(*raw.ErrorGroups)[i]
		if g.GetCount() < 0 || g.GetDeviceCount() < 0 {
			return nil, &ParseError{What: "a crash list", Err: fmt.Errorf("negative count in error group %q", g.ErrorGroupID)}
		}
	}
	return &CrashList{ErrorGroups: *raw.ErrorGroups}, nil
}

// ParseErrorGroupDetails decodes the per error group OS breakdown payload.
func ParseErrorGroupDetails(data []byte) (*ErrorGroupDetails, error) {
	var raw struct {
		OperatingSystems *[]OSCount `json:"operatingSystems"`
		ErrorCount       int64      `json:"errorCount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{What: "an error group", Err: err}
	}
	if raw.OperatingSystems == nil {
		return nil, &ParseError{What: "an error group", Err: fmt.Errorf("missing field operatingSystems")}
	}
	return &ErrorGroupDetails{OperatingSystems: *raw.OperatingSystems, ErrorCount: raw.ErrorCount}, nil
}
