package query

import "fmt"

// MaxLimit bounds any single filter's limit; relays truncate beyond it.
const MaxLimit = 500

// ValidationResult reports plan-shape problems before a query is sent.
// Warnings never block a query: an over-broad plan still executes, it
// just tells the caller why results may be truncated or expensive.
type ValidationResult struct {
	OK       bool
	Warnings []string
}

// Validate checks a plan for shapes that waste relay round trips or
// silently truncate results. Pure function, no side effects.
func Validate(filters []Filter) ValidationResult {
	var warnings []string

	if len(filters) == 0 {
		warnings = append(warnings, "empty plan: no filters to send")
	}
	for i, f := range filters {
		if len(f.IDs) == 0 && len(f.Kinds) == 0 && len(f.Authors) == 0 && len(f.Tags) == 0 {
			warnings = append(warnings, fmt.Sprintf("filter %d is unconstrained: matches every record on the relay", i))
		}
		if f.Limit > MaxLimit {
			warnings = append(warnings, fmt.Sprintf("filter %d limit %d exceeds relay cap %d", i, f.Limit, MaxLimit))
		}
		if f.Limit < 0 {
			warnings = append(warnings, fmt.Sprintf("filter %d has negative limit", i))
		}
		if f.Since > 0 && f.Until > 0 && f.Since > f.Until {
			warnings = append(warnings, fmt.Sprintf("filter %d has since after until: empty window", i))
		}
		for name, accepted := range f.Tags {
			if len(accepted) == 0 {
				warnings = append(warnings, fmt.Sprintf("filter %d tag %q has no accepted values", i, name))
			}
		}
	}

	return ValidationResult{OK: len(warnings) == 0, Warnings: warnings}
}
