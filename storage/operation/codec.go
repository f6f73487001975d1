package operation

import (
	"encoding/binary"
	"errors"

	"github.com/golang/snappy"
	"github.com/vmihailenco/msgpack/v4"

	"github.com/ledgerd/recordcache/module/irrecoverable"
)

var errUncompressedValue = errors.New("could not uncompress data")

var compressEnabled = true

func setCompressDisabled() {
	compressEnabled = false
}

// encodeEntity encodes the given entity using msgpack and then compresses the
// value depending on the global flag.
// possible error to return is irrecoverable.exception
func encodeEntity(entity interface{}) ([]byte, error) {
	val, err := msgpack.Marshal(entity)
	if err != nil {
		return nil, irrecoverable.NewExceptionf("could not encode entity: %w", err)
	}
	if !compressEnabled {
		return val, nil
	}
	return snappy.Encode(nil, val), nil
}

// decodeValue decodes the given value into the given entity using msgpack.
// possible error to return is irrecoverable.exception
func decodeValue(val []byte, entity interface{}) error {
	if compressEnabled {
		uncompressed, err := snappy.Decode(nil, val)
		if err != nil {
			return irrecoverable.NewExceptionf("%s: %w", err, errUncompressedValue)
		}
		val = uncompressed
	}
	err := msgpack.Unmarshal(val, entity)
	if err != nil {
		return irrecoverable.NewExceptionf("could not decode entity: %w", err)
	}
	return nil
}

func isErrUncompressedValue(err error) bool {
	return errors.Is(err, errUncompressedValue)
}

// encodeCounter and decodeCounter keep queue bounds uncompressed so they can be
// inspected with generic database tools.
func encodeCounter(v uint64) []byte {
	return EncodeKeyPart(v)
}

func decodeCounter(val []byte) (uint64, error) {
	if len(val) != 8 {
		return 0, irrecoverable.NewExceptionf("invalid counter length: expected 8 bytes, got %d", len(val))
	}
	return binary.BigEndian.Uint64(val), nil
}
