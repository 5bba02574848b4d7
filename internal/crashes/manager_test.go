package crashes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves canned payloads and records the calls it receives.
type fakeAPI struct {
	versions    []byte
	versionsErr error
	crashes     []byte
	crashesErr  error
	oses        map[string][]byte

	mu             sync.Mutex
	crashVersion   string
	crashStartDate string
	osCalls        []string
}

func (f *fakeAPI) LatestReleases(_ context.Context, _, _ string) ([]byte, error) {
	return f.versions, f.versionsErr
}

func (f *fakeAPI) ErrorGroups(_ context.Context, _, _, version, startDate string) ([]byte, error) {
	f.crashVersion = version
	f.crashStartDate = startDate
	return f.crashes, f.crashesErr
}

func (f *fakeAPI) ErrorGroupOperatingSystems(_ context.Context, _, _, id string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.osCalls = append(f.osCalls, id)
	data, ok := f.oses[id]
	if !ok {
		return nil, fmt.Errorf("status 500")
	}
	return data, nil
}

func TestManagerCrashList(t *testing.T) {
	api := &fakeAPI{crashes: readFixture(t, "two_crashes.json")}
	m := NewManager(api, "org", "app")

	report, err := m.CrashList(context.Background(), "1.2.3", "", "2019-09-01")
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", report.Version)
	assert.Len(t, report.CrashList.ErrorGroups, 2)
	assert.Equal(t, "1.2.3", api.crashVersion)
	assert.Equal(t, "2019-09-01", api.crashStartDate)
}

func TestManagerCrashListLatestVersion(t *testing.T) {
	tests := []struct {
		name  string
		group string
		want  string
	}{
		{name: "latest overall", want: "3.4.1"},
		{name: "latest of group", group: "Beta Testers", want: "3.4.0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeAPI{
				versions: readFixture(t, "versions.json"),
				crashes:  readFixture(t, "two_crashes.json"),
			}
			report, err := NewManager(api, "org", "app").CrashList(context.Background(), "", tc.group, "2019-09-01")
			require.NoError(t, err)
			assert.Equal(t, tc.want, report.Version)
			assert.Equal(t, tc.want, api.crashVersion)
		})
	}
}

func TestManagerCrashListErrors(t *testing.T) {
	tests := []struct {
		name    string
		api     *fakeAPI
		version string
		group   string
		assert  func(t *testing.T, err error)
	}{
		{
			name:    "transport failure",
			api:     &fakeAPI{crashesErr: errors.New("connection refused")},
			version: "1.0",
			assert: func(t *testing.T, err error) {
				var rerr *RetrievalError
				assert.True(t, errors.As(err, &rerr))
			},
		},
		{
			name:    "unknown app",
			api:     &fakeAPI{crashes: []byte(`{"code":"NotFound"}`)},
			version: "1.0",
			assert: func(t *testing.T, err error) {
				var perr *ParseError
				if assert.True(t, errors.As(err, &perr)) {
					assert.True(t, perr.NoApp)
				}
			},
		},
		{
			name:  "no version in group",
			api:   &fakeAPI{versions: []byte(`[{"short_version":"1.0","uploaded_at":"2019-11-16T22:29:48.000Z"}]`)},
			group: "Store",
			assert: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNoVersionAvailable)
			},
		},
		{
			name: "no versions at all",
			api:  &fakeAPI{versions: []byte(`[]`)},
			assert: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNoVersionAvailable)
			},
		},
		{
			name: "versions transport failure",
			api:  &fakeAPI{versionsErr: errors.New("timeout")},
			assert: func(t *testing.T, err error) {
				var rerr *RetrievalError
				assert.True(t, errors.As(err, &rerr))
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			report, err := NewManager(tc.api, "org", "app").CrashList(context.Background(), tc.version, tc.group, "2019-09-01")
			assert.Nil(t, report)
			require.Error(t, err)
			tc.assert(t, err)
		})
	}
}
