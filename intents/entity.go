package intents

import (
	"strings"

	"github.com/jefflaplante/padatious-go/internal/lexer"
	"github.com/jefflaplante/padatious-go/internal/simpleintent"
	"github.com/jefflaplante/padatious-go/internal/store"
	"github.com/jefflaplante/padatious-go/internal/traindata"
)

// entityKind is the artifact-suffix namespace for entities:
// "<entity>.entity.ids" / "<entity>.entity.net".
const entityKind = "entity"

// Entity is behaviorally a SimpleIntent with its own persisted hash, used by
// PosIntent's entity.Match(span) path to score whether an extracted span
// belongs to a named entity class.
type Entity struct {
	core *simpleintent.SimpleIntent
}

// newEntity returns an untrained Entity keyed by its already-wrapped storage
// name (see wrapEntityName).
func newEntity(storageName string) *Entity {
	return &Entity{core: simpleintent.NewWithKind(storageName, entityKind)}
}

func (e *Entity) Name() string { return e.core.Name() }

func (e *Entity) Train(td *traindata.TrainData) { e.core.Train(td) }

func (e *Entity) Save(s store.Store) error { return e.core.Save(s) }

func (e *Entity) Load(s store.Store) error { return e.core.Load(s) }

// Match scores how well span matches this entity class. Satisfies
// posintent.EntityMatcher.
func (e *Entity) Match(span []lexer.Token) float64 { return e.core.Match(span) }

// wrapEntityName canonicalizes a raw entity registration name into its
// storage key. A global entity "place" becomes "{place}"; a skill-scoped
// entity "Weather:place" becomes "Weather:{place}", matching the literal
// placeholder token text intents are trained with.
func wrapEntityName(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		skill, rest := name[:i], name[i+1:]
		return skill + ":{" + rest + "}"
	}
	return "{" + name + "}"
}
