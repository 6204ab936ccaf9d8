package explode

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// Option configures Solve via functional arguments, matching the teacher's
// bfs.Option/dijkstra.Option idiom.
type Option func(*config)

type config struct {
	cacheErrors bool
	dumpTo      io.Writer
	logger      hclog.Logger
}

func defaultConfig() *config {
	return &config{
		cacheErrors: true,
		logger:      hclog.NewNullLogger(),
	}
}

// WithCacheErrors controls whether diagnostics are buffered on the returned
// ExplodedGraph for later batch narration, or left for the caller to act on
// immediately as they are discovered (spec.md §6, "cache_errors"). Solve
// always buffers into ExplodedGraph.Diagnostics; this option only affects
// whether Solve also logs each diagnostic at Warn level as it is found.
func WithCacheErrors(v bool) Option {
	return func(c *config) { c.cacheErrors = v }
}

// WithDumpExplodedGraph renders the completed graph as DOT to w via package
// render once Solve finishes (spec.md §6, "dump_exploded_graph").
func WithDumpExplodedGraph(w io.Writer) Option {
	return func(c *config) { c.dumpTo = w }
}

// WithLogger sets the structured logger Solve writes its Warn-level
// diagnostic lines to when WithCacheErrors(false) is set. Distinct from
// rulectx.Context's logger, which receives the Debug-level "rule fired"
// lines: one Context may drive several Solve calls over different
// supergraphs.
func WithLogger(l hclog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
