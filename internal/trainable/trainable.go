// Package trainable models the Trainable abstraction (an intent or entity
// carrying a content hash of its source lines) as a small interface plus a
// TrainingManager that hash-gates incremental training across a collection
// of them — generalizing the reference implementation's inheritance-based
// Trainable/TrainingManager pair into composition, per the design notes on
// avoiding a dynamic-dispatch class hierarchy.
package trainable

import (
	"fmt"

	"github.com/jefflaplante/padatious-go/internal/store"
	"github.com/jefflaplante/padatious-go/internal/traindata"
)

// Trainable is satisfied by intents.Intent and intents.Entity: an object
// whose state can be (re)trained from a TrainData and persisted to a Store.
type Trainable interface {
	Name() string
	Train(td *traindata.TrainData)
	Save(s store.Store) error
	Load(s store.Store) error
}

// TrainingManager owns a named collection of Trainables and retrains only
// those whose current source-line hash (from TrainData) differs from the
// hash persisted alongside their last save.
type TrainingManager struct {
	backing    store.Store
	hashSuffix string
	objects    map[string]Trainable
}

// New returns an empty TrainingManager. hashSuffix selects the artifact
// suffix content hashes are persisted under (e.g. ".hash" for intents,
// ".entity.hash" for entities).
func New(backing store.Store, hashSuffix string) *TrainingManager {
	return &TrainingManager{
		backing:    backing,
		hashSuffix: hashSuffix,
		objects:    make(map[string]Trainable),
	}
}

// Add registers t, replacing any existing Trainable with the same name.
func (tm *TrainingManager) Add(t Trainable) {
	tm.objects[t.Name()] = t
}

// Remove discards name's Trainable and its persisted hash.
func (tm *TrainingManager) Remove(name string) error {
	delete(tm.objects, name)
	return tm.backing.Remove(name, tm.hashSuffix)
}

// Names returns every registered Trainable's name.
func (tm *TrainingManager) Names() []string {
	names := make([]string, 0, len(tm.objects))
	for name := range tm.objects {
		names = append(names, name)
	}
	return names
}

// Get returns the Trainable registered under name, if any.
func (tm *TrainingManager) Get(name string) (Trainable, bool) {
	t, ok := tm.objects[name]
	return t, ok
}

// Len returns the number of registered Trainables.
func (tm *TrainingManager) Len() int { return len(tm.objects) }

// Train retrains and re-saves every registered Trainable whose current
// lines hash (from td) differs from its persisted hash. The hash file is
// written last for each object, so a crash mid-training never marks a stale
// artifact clean.
func (tm *TrainingManager) Train(td *traindata.TrainData) error {
	for name, obj := range tm.objects {
		current := td.LinesHash(name)
		if persisted, ok := tm.loadHash(name); ok && persisted == current {
			continue
		}

		obj.Train(td)
		if err := obj.Save(tm.backing); err != nil {
			return fmt.Errorf("trainable: save %q: %w", name, err)
		}
		if err := tm.backing.Write(name, tm.hashSuffix, current[:]); err != nil {
			return fmt.Errorf("trainable: persist hash for %q: %w", name, err)
		}
	}
	return nil
}

func (tm *TrainingManager) loadHash(name string) ([4]byte, bool) {
	data, err := tm.backing.Read(name, tm.hashSuffix)
	if err != nil || len(data) != 4 {
		return [4]byte{}, false
	}
	var h [4]byte
	copy(h[:], data)
	return h, true
}
