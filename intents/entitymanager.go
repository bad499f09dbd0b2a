package intents

import (
	"strings"

	"github.com/jefflaplante/padatious-go/internal/lexer"
	"github.com/jefflaplante/padatious-go/internal/store"
	"github.com/jefflaplante/padatious-go/internal/trainable"
	"github.com/jefflaplante/padatious-go/internal/traindata"
)

// entityManager owns every registered Entity and resolves a placeholder
// token to its entity class, preferring an intent-scoped entity over a
// global one of the same name.
type entityManager struct {
	tm       *trainable.TrainingManager
	entities map[string]*Entity
}

func newEntityManager(backing store.Store) *entityManager {
	return &entityManager{
		tm:       trainable.New(backing, ".entity.hash"),
		entities: make(map[string]*Entity),
	}
}

// add registers rawName (e.g. "place" or "Weather:place") with samples.
func (em *entityManager) add(rawName string, td *traindata.TrainData, samples []string) {
	key := wrapEntityName(rawName)
	e := newEntity(key)
	em.entities[key] = e
	em.tm.Add(e)
	td.AddLines(key, samples)
}

// remove discards rawName's entity and its training sentences.
func (em *entityManager) remove(rawName string, td *traindata.TrainData) error {
	key := wrapEntityName(rawName)
	delete(em.entities, key)
	td.RemoveLines(key)
	return em.tm.Remove(key)
}

// find resolves token (e.g. "{place}") to the entity registered under
// intentName's skill scope, falling back to the global registration.
func (em *entityManager) find(intentName string, token lexer.Token) (*Entity, bool) {
	if i := strings.IndexByte(intentName, ':'); i >= 0 {
		skill := intentName[:i]
		if e, ok := em.entities[skill+":"+token]; ok {
			return e, true
		}
	}
	e, ok := em.entities[token]
	return e, ok
}

func (em *entityManager) train(td *traindata.TrainData) error { return em.tm.Train(td) }

func (em *entityManager) names() []string { return em.tm.Names() }
