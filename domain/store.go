package domain

import "github.com/jefflaplante/padatious-go/internal/store"

// namespacedStore prefixes every artifact name with a domain tag before
// delegating to the real backing store, so that two domains' identically
// named intents never collide on disk or in a shared SQLite table.
type namespacedStore struct {
	backing store.Store
	tag     string
}

func (n namespacedStore) key(name string) string { return n.tag + "::" + name }

func (n namespacedStore) Read(name, suffix string) ([]byte, error) {
	return n.backing.Read(n.key(name), suffix)
}

func (n namespacedStore) Write(name, suffix string, data []byte) error {
	return n.backing.Write(n.key(name), suffix, data)
}

func (n namespacedStore) Exists(name, suffix string) bool {
	return n.backing.Exists(n.key(name), suffix)
}

func (n namespacedStore) Remove(name, suffix string) error {
	return n.backing.Remove(n.key(name), suffix)
}

func (n namespacedStore) Close() error { return nil }
