package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProfileChildOperations counts profile child mutations by kind, operation and outcome.
	ProfileChildOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hiresynapse_profile_child_operations_total",
		Help: "Profile child operations by kind, operation and outcome",
	}, []string{"kind", "operation", "outcome"})

	// AccessDenied counts ownership checks that rejected the caller.
	AccessDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hiresynapse_access_denied_total",
		Help: "Ownership checks that rejected the requesting account",
	}, []string{"resource", "reason"})

	// JobIngestResults counts catalog ingestion rows by result (added, skipped, errored).
	JobIngestResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hiresynapse_job_ingest_results_total",
		Help: "Job postings processed by catalog ingestion",
	}, []string{"result"})

	// CacheLookups counts cache-aside lookups by cache name and hit/miss.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hiresynapse_cache_lookups_total",
		Help: "Cache-aside lookups by cache and result",
	}, []string{"cache", "result"})

	// AccountsRegistered counts successful signups.
	AccountsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hiresynapse_accounts_registered_total",
		Help: "Accounts created, each with its profile",
	})
)
