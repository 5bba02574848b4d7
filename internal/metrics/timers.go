// Package metrics measures the duration of the pipeline stages of a run.
package metrics

import (
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
)

type Timers struct {
	Timers map[string]*Timer `json:"Timers,omitempty"`
	last   string
	now    func() time.Time
}

func NewTimers() Timers {
	ts := Timers{Timers: make(map[string]*Timer), now: time.Now}
	return ts
}

// set a timer, stopping it when it already exists.
func (ts *Timers) set(k string) {
	if _, ok := ts.Timers[k]; !ok {
		ts.Timers[k] = &Timer{start: ts.now()}
	} else {
		ts.Timers[k].Total = ts.now().Sub(ts.Timers[k].start).Seconds()
	}
}

// Set stops the last timer started with Set and starts k (lap).
func (ts *Timers) Set(k string) {
	if ts.last != "" {
		ts.set(ts.last)
	}
	ts.set(k)
	ts.last = k
}

// Add starts k, or stops it on the second call.
func (ts *Timers) Add(k string) {
	ts.set(k)
}

// Log writes the collected durations at debug level.
func (ts *Timers) Log() {
	keys := make([]string, 0, len(ts.Timers))
	for k := range ts.Timers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := log.Fields{}
	for _, k := range keys {
		fields[k] = ts.Timers[k].Total
	}
	log.WithFields(fields).Debug("Stage timers (seconds)")
}

type Timer struct {
	start time.Time

	// Total time in seconds
	Total float64 `json:"seconds"`
}
