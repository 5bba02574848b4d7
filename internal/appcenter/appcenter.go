// Package appcenter is the HTTP client of the crash reporting backend.
package appcenter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	defaultConnTimeoutSec       = 30
	defaultMaxIdleConns         = 100
	defaultMaxConnsPerHost      = 100
	defaultMaxIddleConnsPerHost = 100
	defaultTop                  = 20

	DefaultBaseURL = "https://api.appcenter.ms"
	apiVersion     = "v0.1"
	tokenHeader    = "X-API-Token"
)

// StatusError is returned when the backend answers with a server error.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invalid status code %d calling %s", e.StatusCode, e.URL)
}

// AppCenter is the API client, authenticated with a static API token.
type AppCenter struct {
	client  *http.Client
	baseURL string
	token   string
	top     int
}

// Option configures an AppCenter client.
type Option func(*AppCenter)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(a *AppCenter) {
		a.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithTimeout sets the deadline of every request.
func WithTimeout(d time.Duration) Option {
	return func(a *AppCenter) {
		a.client.Timeout = d
	}
}

// WithTop limits the number of error groups returned by ErrorGroups.
func WithTop(n int) Option {
	return func(a *AppCenter) {
		if n > 0 {
			a.top = n
		}
	}
}

// NewAppCenter creates a new API setting the http attributes to improve the
// connection reuse.
func NewAppCenter(token string, opts ...Option) *AppCenter {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = defaultMaxIdleConns
	t.MaxConnsPerHost = defaultMaxConnsPerHost
	t.MaxIdleConnsPerHost = defaultMaxIddleConnsPerHost

	a := &AppCenter{
		baseURL: DefaultBaseURL,
		token:   token,
		top:     defaultTop,
		client: &http.Client{
			Timeout:   defaultConnTimeoutSec * time.Second,
			Transport: t,
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LatestReleases returns the recent releases json of the app.
func (a *AppCenter) LatestReleases(ctx context.Context, organization, application string) ([]byte, error) {
	return a.get(ctx, a.appPath(organization, application, "recent_releases"), nil)
}

// ErrorGroups returns the error groups json of a version, ordered by count,
// including groups first seen since startDate.
func (a *AppCenter) ErrorGroups(ctx context.Context, organization, application, version, startDate string) ([]byte, error) {
	params := url.Values{}
	params.Add("start", startDate)
	params.Add("$version", version)
	params.Add("$orderby", "count desc")
	params.Add("$top", strconv.Itoa(a.top))
	return a.get(ctx, a.appPath(organization, application, "errors/errorGroups"), params)
}

// ErrorGroupOperatingSystems returns the per OS counts json of an error group.
func (a *AppCenter) ErrorGroupOperatingSystems(ctx context.Context, organization, application, errorGroupID string) ([]byte, error) {
	path := a.appPath(organization, application, "errors/errorGroups/"+url.PathEscape(errorGroupID)+"/operatingSystems")
	return a.get(ctx, path, nil)
}

func (a *AppCenter) appPath(organization, application, resource string) string {
	return fmt.Sprintf("%s/%s/apps/%s/%s/%s", a.baseURL, apiVersion,
		url.PathEscape(organization), url.PathEscape(application), resource)
}

// get calls the URL and returns the body. Client errors are not failures
// here: the backend describes them in a body the caller can't decode.
func (a *AppCenter) get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("malformed URL: %w", err)
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't create the request: %w", err)
	}
	req.Header.Set(tokenHeader, a.token)
	req.Header.Set("Accept", "application/json")

	res, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("couldn't call URL %s: %w", u.Redacted(), err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("couldn't read response body: %w", err)
	}

	log.Debugf("GET %s: %s", u.Path, res.Status)
	if res.StatusCode >= 500 {
		return nil, &StatusError{StatusCode: res.StatusCode, URL: u.Redacted()}
	}
	return body, nil
}
