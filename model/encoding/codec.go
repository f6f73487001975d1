package encoding

import (
	"github.com/ledgerd/recordcache/model/encoding/cbor"
)

// Marshaler turns a value into bytes. Equal values must yield equal bytes when the
// output is hashed.
type Marshaler interface {
	// Encode returns an error if the value type is not supported.
	Encode(interface{}) ([]byte, error)
}

// DefaultEncoder is the deterministic encoder used for cache state fingerprints.
var DefaultEncoder Marshaler = cbor.NewEncoder()
