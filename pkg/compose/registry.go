package compose

import (
	"sort"
	"sync"

	"github.com/blockmail/composer/pkg/core"
)

// globalRegistry is the single global catalog of composition rules.
// Engines snapshot it at construction; they never share the live map.
var globalRegistry = &registry{
	rules: make(map[string]Rule),
}

type registry struct {
	mu    sync.RWMutex
	rules map[string]Rule // keyed by ID
}

// Register adds a rule to the global catalog.
// Call this from init() functions in rule packages.
func Register(rule Rule) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules[rule.ID] = rule
}

// DefaultRules returns a copy of all registered rules, sorted by weight
// descending (ties break on ID so ordering is deterministic).
func DefaultRules() []Rule {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	rules := make([]Rule, 0, len(globalRegistry.rules))
	for _, rule := range globalRegistry.rules {
		rules = append(rules, rule)
	}
	sortRules(rules)
	return rules
}

// GetByID returns a registered rule by its ID.
func GetByID(id string) (Rule, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	rule, ok := globalRegistry.rules[id]
	return rule, ok
}

// GetByCategory returns all registered rules in a category.
func GetByCategory(category Category) []Rule {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	var rules []Rule
	for _, rule := range globalRegistry.rules {
		if rule.Category == category {
			rules = append(rules, rule)
		}
	}
	sortRules(rules)
	return rules
}

// AllRuleInfos returns metadata for every registered rule.
func AllRuleInfos() []core.RuleInfo {
	rules := DefaultRules()
	infos := make([]core.RuleInfo, len(rules))
	for i, rule := range rules {
		infos[i] = rule.Info()
	}
	return infos
}

// Count returns the number of registered rules.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.rules)
}

// Clear removes all registered rules. Used for testing.
func Clear() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules = make(map[string]Rule)
}

// sortRules orders rules by weight descending, then ID ascending.
func sortRules(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Weight != rules[j].Weight {
			return rules[i].Weight > rules[j].Weight
		}
		return rules[i].ID < rules[j].ID
	})
}
