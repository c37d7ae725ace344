package diagnosis

import (
	"fmt"

	"github.com/kiranshivaraju/fixit/internal/knowledge"
)

// Strategy names accepted by NewStrategy.
const (
	StrategyRules  = "rules"
	StrategyLegacy = "legacy"
)

// NewStrategy constructs the named matching strategy.
// Called once at startup.
func NewStrategy(name string, idx *knowledge.Index) (Strategy, error) {
	switch name {
	case StrategyRules:
		return NewMatcher(idx), nil
	case StrategyLegacy:
		appliances, err := knowledge.Appliances()
		if err != nil {
			return nil, fmt.Errorf("load legacy table: %w", err)
		}
		return NewLegacyMatcher(appliances), nil
	default:
		return nil, fmt.Errorf("%w %q: must be one of %s, %s", ErrUnknownStrategy, name, StrategyRules, StrategyLegacy)
	}
}
