// Package registry manages the codecs used to store messages in chunk data.
package registry

import (
	"slices"
	"sync"
)

// Codec turns a message into chunk data and back.
type Codec interface {
	// Encode returns the chunk data for msg.
	Encode(msg []byte) ([]byte, error)

	// Decode returns the message stored in data. Implementations must fail
	// rather than return more than limit bytes (limit <= 0 means no limit).
	Decode(data []byte, limit int64) ([]byte, error)
}

var (
	mu     sync.RWMutex
	codecs = make(map[string]Codec)
)

// Register registers a codec under name, replacing any previous one.
// This is called by codec packages during initialization (init functions).
func Register(name string, c Codec) {
	mu.Lock()
	defer mu.Unlock()
	codecs[name] = c
}

// Get returns the codec registered under name.
// Returns nil if no codec is registered under that name.
func Get(name string) Codec {
	mu.RLock()
	defer mu.RUnlock()
	return codecs[name]
}

// Names returns the registered codec names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
