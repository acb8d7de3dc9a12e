package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile dumps every metric gathered by g into path in the text exposition format, for the
// node-exporter textfile collector. An empty path is a no-op.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, g)
}
