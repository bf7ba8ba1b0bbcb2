package fields

import (
	"regexp"
	"strings"
)

var choiceSeparator = regexp.MustCompile(`\s*\|\s*`)

// Choice is one "key, label" option of a choice field.
type Choice struct {
	Key   string
	Label string
}

// Choices is the ordered option list parsed from
// select_choices_or_calculations. The zero value is an empty list.
type Choices struct {
	items []Choice
	index map[string]int
}

// ParseChoices parses a pipe-delimited "key, label" list. Pairs without a
// comma, or with an empty key or label, are skipped. A repeated key keeps its
// first position and takes the later label.
func ParseChoices(raw string) Choices {
	choices, _ := parseChoices(raw)
	return choices
}

func parseChoices(raw string) (Choices, []string) {
	var (
		choices   Choices
		malformed []string
	)
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return choices, nil
	}
	for _, pair := range choiceSeparator.Split(trimmed, -1) {
		if pair == "" {
			continue
		}
		key, label, ok := strings.Cut(pair, ",")
		key = strings.TrimSpace(key)
		label = strings.TrimSpace(label)
		if !ok || key == "" || label == "" {
			malformed = append(malformed, pair)
			continue
		}
		choices.add(key, label)
	}
	return choices, malformed
}

func (c *Choices) add(key, label string) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if idx, exists := c.index[key]; exists {
		c.items[idx].Label = label
		return
	}
	c.index[key] = len(c.items)
	c.items = append(c.items, Choice{Key: key, Label: label})
}

// Len returns the number of options.
func (c Choices) Len() int { return len(c.items) }

// Items returns a copy of the options in declared order.
func (c Choices) Items() []Choice {
	return append([]Choice(nil), c.items...)
}

// Keys returns the option keys in declared order.
func (c Choices) Keys() []string {
	keys := make([]string, len(c.items))
	for i, item := range c.items {
		keys[i] = item.Key
	}
	return keys
}

// Label returns the label for key.
func (c Choices) Label(key string) (string, bool) {
	idx, ok := c.index[key]
	if !ok {
		return "", false
	}
	return c.items[idx].Label, true
}

// Has reports whether key is a declared option.
func (c Choices) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}
