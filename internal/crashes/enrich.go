package crashes

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Enrich attaches the OS breakdown to every error group of the report that
// carries an id. Each distinct id is looked up once, with at most concurrency
// lookups in flight. A failing lookup leaves its groups without OS data. It
// returns the number of lookups that failed.
func (m *Manager) Enrich(ctx context.Context, report *Report, concurrency int) int {
	if concurrency < 1 {
		concurrency = 1
	}

	ids := make([]string, 0, len(report.CrashList.ErrorGroups))
	seen := make(map[string]struct{}, len(report.CrashList.ErrorGroups))
	for i := range report.CrashList.ErrorGroups {
		g := &report.CrashList.ErrorGroups[i]
		if !g.Enrichable() {
			continue
		}
		if _, ok := seen[g.ErrorGroupID]; ok {
			continue
		}
		seen[g.ErrorGroupID] = struct{}{}
		ids = append(ids, g.ErrorGroupID)
	}

	var (
		mu      sync.Mutex
		failed  int
		results = make(map[string][]OSCount, len(ids))
	)
	eg := &errgroup.Group{}
	eg.SetLimit(concurrency)
	for _, id := range ids {
		id := id
		eg.Go(func() error {
			details, err := m.errorGroupDetails(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.WithError(err).WithField("errorGroupId", id).Warn("Skipping OS information of error group")
				failed++
				return nil
			}
			results[id] = details.OperatingSystems
			return nil
		})
	}
	// lookups never fail the group
	_ = eg.Wait()

	for i := range report.CrashList.ErrorGroups {
		g := &report.CrashList.ErrorGroups[i]
		if oses, ok := results[g.ErrorGroupID]; ok {
			g.OperatingSystems = oses
		}
	}
	return failed
}

func (m *Manager) errorGroupDetails(ctx context.Context, id string) (*ErrorGroupDetails, error) {
	data, err := m.api.ErrorGroupOperatingSystems(ctx, m.organization, m.application, id)
	if err != nil {
		return nil, &RetrievalError{Op: "error group json", Err: err}
	}
	return ParseErrorGroupDetails(data)
}
