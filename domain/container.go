// Package domain implements the two-layer DomainIntentContainer: a
// domain_engine IntentContainer routing over domain names, and one
// IntentContainer per domain holding that domain's actual intents.
package domain

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/jefflaplante/padatious-go"
	"github.com/jefflaplante/padatious-go/internal/store"
	"github.com/jefflaplante/padatious-go/intents"
)

const engineNamespace = "__domain_engine__"

// DefaultTopK is the number of domains consulted when CalcIntents is called
// without an explicit domain.
const DefaultTopK = 2

// Container routes a query to the right domain before delegating to that
// domain's own IntentContainer, or answers directly when the caller already
// knows which domain to query.
type Container struct {
	backing store.Store
	engine  *intents.IntentContainer
	domains map[string]*intents.IntentContainer

	// samples accumulates each domain's member-intent raw lines so that
	// engine's training set is always the current concatenation, matching
	// the reference's "domain training data is raw text, not tokens".
	samples map[string][]string

	logger *log.Logger
}

// New returns an empty Container. Every domain's IntentContainer, as well
// as the routing engine, persists artifacts through backing, namespaced by
// domain name so that identically named intents in different domains never
// collide on disk. A nil logger defaults to
// log.New(os.Stderr, "", log.LstdFlags) and is shared with every domain's
// own IntentContainer.
func New(backing store.Store, logger *log.Logger) *Container {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &Container{
		backing: backing,
		engine:  intents.New(namespacedStore{backing, engineNamespace}, logger),
		domains: make(map[string]*intents.IntentContainer),
		samples: make(map[string][]string),
		logger:  logger,
	}
}

func (c *Container) domainContainer(domain string) *intents.IntentContainer {
	ic, ok := c.domains[domain]
	if !ok {
		ic = intents.New(namespacedStore{c.backing, domain}, c.logger)
		c.domains[domain] = ic
	}
	return ic
}

// AddIntent registers name within domain, with its sample lines. The raw
// lines are also folded into domain's aggregate entry in the routing
// engine, so the engine distinguishes domains by the union of their
// members' text.
func (c *Container) AddIntent(domain, name string, samples []string) {
	c.domainContainer(domain).AddIntent(name, samples)

	c.samples[domain] = append(c.samples[domain], samples...)
	c.engine.AddIntent(domain, c.samples[domain])
}

// RemoveIntent discards name from domain. The routing engine's aggregate
// sample for domain is not retroactively pruned, matching the reference's
// lack of cascading delete (removing one member intent does not force a
// full re-derivation of the domain's aggregate text). Removing from a
// domain that was never registered is padatious.ErrNoSuchDomain.
func (c *Container) RemoveIntent(domain, name string) error {
	ic, ok := c.domains[domain]
	if !ok {
		return fmt.Errorf("domain: remove %q from %q: %w", name, domain, padatious.ErrNoSuchDomain)
	}
	return ic.RemoveIntent(name)
}

// AddEntity registers rawName within domain.
func (c *Container) AddEntity(domain, rawName string, samples []string) {
	c.domainContainer(domain).AddEntity(rawName, samples)
}

// RemoveEntity discards rawName from domain. Removing from a domain that was
// never registered is padatious.ErrNoSuchDomain.
func (c *Container) RemoveEntity(domain, rawName string) error {
	ic, ok := c.domains[domain]
	if !ok {
		return fmt.Errorf("domain: remove entity %q from %q: %w", rawName, domain, padatious.ErrNoSuchDomain)
	}
	return ic.RemoveEntity(rawName)
}

// Train retrains the routing engine and every domain's container.
func (c *Container) Train() error {
	if err := c.engine.Train(); err != nil {
		return err
	}
	for _, ic := range c.domains {
		if err := ic.Train(); err != nil {
			return err
		}
	}
	c.logger.Printf("[domain] trained %d domain(s)", len(c.domains))
	return nil
}

// DomainNames returns every registered domain name, in no particular order.
func (c *Container) DomainNames() []string {
	names := make([]string, 0, len(c.domains))
	for d := range c.domains {
		names = append(names, d)
	}
	return names
}

// CalcIntent answers query within domain. If domain is empty, the routing
// engine's own best match names the domain first. A domain with no
// registered container (UnknownDomain) yields a zero-confidence,
// empty-name MatchData rather than an error.
func (c *Container) CalcIntent(query, domain string) intents.MatchData {
	if domain == "" {
		domain = c.engine.CalcIntent(query).Name
	}
	ic, ok := c.domains[domain]
	if !ok {
		return intents.MatchData{}
	}
	return ic.CalcIntent(query)
}

// CalcIntents answers query across every intent in domain, or, when domain
// is empty, across the union of the topK domains the routing engine ranks
// highest for query, sorted by confidence descending.
func (c *Container) CalcIntents(query, domain string, topK int) []intents.MatchData {
	if domain != "" {
		ic, ok := c.domains[domain]
		if !ok {
			return nil
		}
		return ic.CalcIntents(query)
	}

	if topK <= 0 {
		topK = DefaultTopK
	}
	ranked := c.engine.CalcIntents(query)
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Conf > ranked[j].Conf })
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	var out []intents.MatchData
	for _, d := range ranked {
		if ic, ok := c.domains[d.Name]; ok {
			out = append(out, ic.CalcIntents(query)...)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Conf > out[j].Conf })
	return out
}
