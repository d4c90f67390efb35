// =============================================================================
// txcompare - Decoder Registry
// =============================================================================
//
// The registry maps a case-insensitive format identifier to its codec. It is
// built once at process start and read-only afterwards; callers pass it
// explicitly into the comparison pipeline instead of reaching for ambient
// state.
//
// =============================================================================

package registry

import (
	"sort"
	"strings"

	"github.com/ypbank/txcompare/internal/codec"
	"github.com/ypbank/txcompare/internal/codec/bincodec"
	"github.com/ypbank/txcompare/internal/codec/csvcodec"
	"github.com/ypbank/txcompare/internal/codec/jsoncodec"
	"github.com/ypbank/txcompare/internal/codec/textcodec"
	"github.com/ypbank/txcompare/internal/codec/xlsxcodec"
)

// Registry holds the supported codecs keyed by format identifier.
type Registry struct {
	codecs map[string]codec.Codec
}

// New builds a registry from the given codecs, keyed by their lowercase
// names.
func New(codecs ...codec.Codec) *Registry {
	r := &Registry{codecs: make(map[string]codec.Codec, len(codecs))}
	for _, c := range codecs {
		r.codecs[strings.ToLower(c.Name())] = c
	}
	return r
}

// Default returns a registry with every built-in format registered.
func Default() *Registry {
	return New(
		csvcodec.New(),
		textcodec.New(),
		bincodec.New(),
		jsoncodec.New(),
		xlsxcodec.New(),
	)
}

// Lookup resolves a format identifier, ignoring case. An unknown identifier
// fails with *codec.UnsupportedFormat.
func (r *Registry) Lookup(identifier string) (codec.Codec, error) {
	if c, ok := r.codecs[strings.ToLower(identifier)]; ok {
		return c, nil
	}
	return nil, &codec.UnsupportedFormat{Identifier: identifier}
}

// Names returns the registered format identifiers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
