package checks

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/gastropro/backoffice/internal/app/maintenance"
	"github.com/gastropro/backoffice/internal/monitoring"
)

// MaintenanceSource exposes the last run of each scheduled job.
type MaintenanceSource interface {
	Status() map[string]maintenance.JobStatus
}

// Maintenance reports down while any job's latest run failed and degraded when
// a job has not completed within maxAge. Jobs that have never run are pending, not failing.
func Maintenance(source MaintenanceSource, maxAge time.Duration, now func() time.Time) monitoring.Check {
	if now == nil {
		now = time.Now
	}

	return monitoring.NewCheck("maintenance", func(context.Context) monitoring.ProbeResult {
		if source == nil {
			return monitoring.ProbeResult{Status: monitoring.StatusUp, Details: "maintenance disabled"}
		}

		jobs := source.Status()
		if len(jobs) == 0 {
			return monitoring.ProbeResult{Status: monitoring.StatusUp, Details: "no maintenance jobs registered"}
		}

		names := make([]string, 0, len(jobs))
		for name := range jobs {
			names = append(names, name)
		}
		sort.Strings(names)

		status := monitoring.StatusUp
		var notes []string
		for _, name := range names {
			job := jobs[name]
			switch {
			case job.Runs == 0:
				notes = append(notes, name+": pending first run")
			case job.LastError != "":
				status = monitoring.Worst(status, monitoring.StatusDown)
				notes = append(notes, name+": "+job.LastError)
			case maxAge > 0 && now().Sub(job.LastRun) > maxAge:
				status = monitoring.Worst(status, monitoring.StatusDegraded)
				notes = append(notes, name+": stale run "+job.LastRun.UTC().Format(time.RFC3339))
			}
		}

		return monitoring.ProbeResult{Status: status, Details: strings.Join(notes, "; ")}
	})
}
