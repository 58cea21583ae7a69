package replacer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/zoobzio/replacer/json"
)

var (
	codecs   = defaultCodecs()
	codecsMu sync.RWMutex
)

func defaultCodecs() map[string]Codec {
	m := make(map[string]Codec)
	register(m, json.New())
	return m
}

// Register makes a codec available to Lookup under its content type, the
// content type's subtype (application/yaml → yaml), and any aliases.
// Registering a name again replaces the earlier codec.
func Register(c Codec, aliases ...string) {
	codecsMu.Lock()
	defer codecsMu.Unlock()
	register(codecs, c, aliases...)
}

func register(m map[string]Codec, c Codec, aliases ...string) {
	ct := strings.ToLower(c.ContentType())
	m[ct] = c
	if _, sub, ok := strings.Cut(ct, "/"); ok {
		m[sub] = c
	}
	for _, a := range aliases {
		m[strings.ToLower(a)] = c
	}
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, error) {
	codecsMu.RLock()
	defer codecsMu.RUnlock()

	if c, ok := codecs[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

// Reset restores the registry to its initial state.
// This is primarily useful for test isolation.
func Reset() {
	codecsMu.Lock()
	defer codecsMu.Unlock()
	codecs = defaultCodecs()
}
