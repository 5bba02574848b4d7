package crashes

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return data
}

func TestParseCrashList(t *testing.T) {
	list, err := ParseCrashList(readFixture(t, "two_crashes.json"))
	require.NoError(t, err)
	require.Len(t, list.ErrorGroups, 2)

	first := list.ErrorGroups[0]
	assert.Equal(t, "2547896014u", first.ErrorGroupID)
	assert.Equal(t, int64(221), first.GetCount())
	assert.Equal(t, int64(181), first.GetDeviceCount())
	assert.Equal(t, "ReceiptViewController", first.ExceptionClassName)
	assert.True(t, first.IsCrash())
	assert.False(t, list.ErrorGroups[1].IsCrash())
	assert.Empty(t, list.ErrorGroups[1].ExceptionFile)
}

func TestParseCrashListErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		noApp bool
	}{
		{name: "malformed json", data: []byte(`{"errorGroups": [`), noApp: true},
		{name: "unknown app", data: readFixture(t, "no_app.json"), noApp: true},
		{name: "negative count", data: []byte(`{"errorGroups": [{"count": -1}]}`), noApp: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCrashList(tc.data)
			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.noApp, perr.NoApp)
		})
	}
}

func TestParseVersions(t *testing.T) {
	versions, err := ParseVersions(readFixture(t, "versions.json"))
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, "3.4.0", versions[0].ShortVersion)
	assert.Nil(t, versions[2].DistributionGroups)

	_, err = ParseVersions(readFixture(t, "no_app.json"))
	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
	assert.False(t, perr.NoApp)
}

func TestParseErrorGroupDetails(t *testing.T) {
	details, err := ParseErrorGroupDetails(readFixture(t, "operating_systems.json"))
	require.NoError(t, err)
	assert.Equal(t, int64(221), details.ErrorCount)
	assert.Equal(t, []OSCount{
		{Name: "iOS 13.2", Count: 120},
		{Name: "iOS 13.1", Count: 55},
		{Name: "iOS 12.4", Count: 6},
	}, details.OperatingSystems)

	_, err = ParseErrorGroupDetails([]byte(`{"errorCount": 3}`))
	assert.Error(t, err)
}
