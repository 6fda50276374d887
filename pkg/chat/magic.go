package chat

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// Colorizer turns templates like "{BLUE}Welcome, {GREEN}%s" into chat messages.
	//
	// Alias substitution is cached per template, so variable parts should be passed
	// as %-arguments rather than joined into the template.
	Colorizer struct {
		// Threshold is the number of cached templates above which Evict is called.
		Threshold int
		// Evict sheds entries from an oversized cache. It is called with the write lock held.
		Evict EvictionPolicy

		mu         sync.RWMutex
		aliases    map[string]string
		cache      map[string]string
		replacer   *strings.Replacer
		generation uint64
	}

	EvictionPolicy func(cache map[string]string)
)

const DefaultThreshold = 5000

func NewColorizer() *Colorizer {
	c := &Colorizer{
		Threshold: DefaultThreshold,
		Evict:     DropFraction(5),
		aliases:   make(map[string]string, 2*len(colorNames)),
		cache:     make(map[string]string),
	}
	for color, name := range colorNames {
		c.aliases["{"+name+"}"] = color.String()
		c.aliases["{"+strings.ToLower(name)+"}"] = color.String()
	}
	return c
}

// DropFraction removes about 1/n of the entries, in map iteration order.
func DropFraction(n int) EvictionPolicy {
	return func(cache map[string]string) {
		toRemove := len(cache) / n
		for key := range cache {
			if toRemove <= 0 {
				return
			}
			delete(cache, key)
			toRemove--
		}
	}
}

// RegisterAlias maps an alias token (brackets included, like "{ERROR}") to a color.
// The lowercase form of the token is registered as well. The template cache is invalidated.
func (c *Colorizer) RegisterAlias(alias string, color Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setAlias(alias, color.String())
}

// RegisterDefaultAlias registers the alias only if it is not already known.
func (c *Colorizer) RegisterDefaultAlias(alias string, color Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.aliases[alias]; !found {
		c.setAlias(alias, color.String())
	}
}

func (c *Colorizer) setAlias(alias, value string) {
	c.aliases[alias] = value
	if lower := strings.ToLower(alias); lower != alias {
		c.aliases[lower] = value
	}
	c.cache = make(map[string]string, len(c.cache))
	c.replacer = nil
	c.generation++
}

// Alias returns the value substituted for the token.
func (c *Colorizer) Alias(alias string) (value string, found bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, found = c.aliases[alias]
	return
}

// Colorize substitutes the aliases in template, then interpolates args with fmt.Sprintf if there are any.
func (c *Colorizer) Colorize(template string, args ...interface{}) string {
	translated := c.translate(template)
	if len(args) > 0 {
		return fmt.Sprintf(translated, args...)
	}
	return translated
}

// Len returns the number of cached templates.
func (c *Colorizer) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func (c *Colorizer) translate(template string) string {
	c.mu.RLock()
	translated, found := c.cache[template]
	replacer, generation := c.replacer, c.generation
	c.mu.RUnlock()
	if found {
		return translated
	}

	if replacer == nil {
		replacer = c.buildReplacer()
	}
	translated = replacer.Replace(template)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		// aliases changed while we were working, do not cache a stale result
		return translated
	}
	c.replacer = replacer
	c.cache[template] = translated
	if c.Threshold > 0 && len(c.cache) > c.Threshold && c.Evict != nil {
		c.Evict(c.cache)
	}
	return translated
}

func (c *Colorizer) buildReplacer() *strings.Replacer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := maps.Keys(c.aliases)
	slices.Sort(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, key, c.aliases[key])
	}
	return strings.NewReplacer(pairs...)
}
