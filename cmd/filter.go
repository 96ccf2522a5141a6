package cmd

import (
	"fmt"

	"github.com/s0up4200/marquee/filter"
)

// Command flags shared by the listing commands
var (
	whereExpr string
	preset    string
)

// resolveFilter returns the --where filter, the --preset filter, or nil
func resolveFilter(where, presetName string, presets map[string]string) (filter.CompiledFilter, error) {
	expression := where
	if expression == "" && presetName != "" {
		var ok bool
		if expression, ok = presets[presetName]; !ok {
			return nil, fmt.Errorf("preset '%s' not found in config", presetName)
		}
	}
	if expression == "" {
		return nil, nil
	}

	f, err := filter.CompileFilter(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return f, nil
}
