package postprocessors

import (
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tagger/internal/postprocessors/normalise"
)

// DefaultChain is the processor order applied to ranked keywords.
var DefaultChain = []string{normalise.Name}

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(normalise.Name, buildNormaliser)
}

// buildNormaliser creates a normalise processor from generic config.
// Supported config keys:
//   - min_graphemes (int): Shortest non-numeric keyword kept (default: 3)
//   - year_length (int): Length of the only numeric keywords kept (default: 4)
func buildNormaliser(cfg map[string]any) (driven.KeywordProcessor, error) {
	var opts []normalise.Option

	if cfg != nil {
		if n := getIntFromConfig(cfg, "min_graphemes"); n > 0 {
			opts = append(opts, normalise.WithMinGraphemes(n))
		}
		if n := getIntFromConfig(cfg, "year_length"); n > 0 {
			opts = append(opts, normalise.WithYearLength(n))
		}
	}

	return normalise.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
