package rulectx

import "github.com/hashicorp/go-hclog"

// Option configures Compile via functional arguments, matching the
// teacher's bfs.Option/dijkstra.Option idiom.
type Option func(*config)

type config struct {
	logger hclog.Logger
}

func defaultConfig() *config {
	return &config{logger: hclog.NewNullLogger()}
}

// WithLogger sets the structured logger Compile attaches to the resulting
// Context. Defaults to a no-op logger.
func WithLogger(l hclog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
