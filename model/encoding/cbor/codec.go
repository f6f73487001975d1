package cbor

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// EncMode encodes in canonical form: map keys are sorted and the shortest encoding is
// used, so equal values always yield equal bytes.
var EncMode = func() cbor.EncMode {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("could not create canonical cbor encoding mode: %v", err))
	}
	return mode
}()

// Encoder encodes values in canonical CBOR.
type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Encode(val interface{}) ([]byte, error) {
	b, err := EncMode.Marshal(val)
	if err != nil {
		return nil, fmt.Errorf("could not encode cbor: %w", err)
	}
	return b, nil
}
