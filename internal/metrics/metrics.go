// Package metrics exposes Prometheus counters/gauges for a scan run:
// package-level collectors registered once in init() and a Handler()
// for wiring into an HTTP mux.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BlocksDecoded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "blkscan",
		Name:      "blocks_decoded_total",
		Help:      "Total blocks successfully decoded and verified.",
	})

	TransactionsDecoded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "blkscan",
		Name:      "transactions_decoded_total",
		Help:      "Total transactions decoded across all blocks.",
	})

	BadProofOfWork = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "blkscan",
		Name:      "bad_proof_of_work_total",
		Help:      "Blocks rejected for failing the proof-of-work check.",
	})

	BadMerkleRoot = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "blkscan",
		Name:      "bad_merkle_root_total",
		Help:      "Blocks rejected for a Merkle root mismatch.",
	})

	NonCanonicalVarints = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "blkscan",
		Name:      "non_canonical_varints_total",
		Help:      "Blocks containing at least one non-minimally-encoded varint.",
	})

	BytesRead = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "blkscan",
		Name:      "bytes_read_total",
		Help:      "Total bytes consumed from the input file.",
	})

	ScanDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "blkscan",
		Name:      "scan_duration_seconds",
		Help:      "Wall-clock duration of the most recently completed scan.",
	})
)

func init() {
	prometheus.MustRegister(
		BlocksDecoded,
		TransactionsDecoded,
		BadProofOfWork,
		BadMerkleRoot,
		NonCanonicalVarints,
		BytesRead,
		ScanDuration,
	)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
