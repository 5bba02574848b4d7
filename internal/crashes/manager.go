package crashes

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// API is the crash reporting backend. Every method returns the raw response
// body, decoding is done by the Manager.
type API interface {
	LatestReleases(ctx context.Context, organization, application string) ([]byte, error)
	ErrorGroups(ctx context.Context, organization, application, version, startDate string) ([]byte, error)
	ErrorGroupOperatingSystems(ctx context.Context, organization, application, errorGroupID string) ([]byte, error)
}

// Manager gets crash data of a single app from the API.
type Manager struct {
	api          API
	organization string
	application  string
}

// NewManager creates a Manager for the app identified by organization and
// application.
func NewManager(api API, organization, application string) *Manager {
	return &Manager{
		api:          api,
		organization: organization,
		application:  application,
	}
}

// Versions returns the recent releases of the app, latest first.
func (m *Manager) Versions(ctx context.Context) ([]Version, error) {
	data, err := m.api.LatestReleases(ctx, m.organization, m.application)
	if err != nil {
		return nil, &RetrievalError{Op: "latest versions json", Err: err}
	}
	versions, err := ParseVersions(data)
	if err != nil {
		return nil, err
	}
	return SortVersions(versions), nil
}

// LatestVersion resolves the version to report on, optionally restricted to
// a distribution group.
func (m *Manager) LatestVersion(ctx context.Context, distributionGroup string) (*Version, error) {
	versions, err := m.Versions(ctx)
	if err != nil {
		return nil, err
	}
	latest := SelectVersion(versions, distributionGroup)
	if latest == nil {
		return nil, ErrNoVersionAvailable
	}
	log.Debugf("Resolved latest version %s uploaded at %s", latest.ShortVersion, latest.UploadedAt)
	return latest, nil
}

// CrashList fetches the error groups first seen since startDate. When version
// is empty the latest version is looked up first.
func (m *Manager) CrashList(ctx context.Context, version, distributionGroup, startDate string) (*Report, error) {
	if version == "" {
		latest, err := m.LatestVersion(ctx, distributionGroup)
		if err != nil {
			return nil, err
		}
		version = latest.ShortVersion
	}
	return m.crashListForVersion(ctx, version, startDate)
}

func (m *Manager) crashListForVersion(ctx context.Context, version, startDate string) (*Report, error) {
	log.Debugf("Fetching error groups of %s/%s v%s since %s", m.organization, m.application, version, startDate)
	data, err := m.api.ErrorGroups(ctx, m.organization, m.application, version, startDate)
	if err != nil {
		return nil, &RetrievalError{Op: "crashes json", Err: err}
	}
	crashList, err := ParseCrashList(data)
	if err != nil {
		return nil, err
	}
	return &Report{Version: version, CrashList: *crashList}, nil
}
