package operation

import (
	"encoding/binary"
	"fmt"
)

const (
	// codes for the receipt queue bounds
	codeReceiptQueueHead = 1
	codeReceiptQueueTail = 2

	// codes for the queued rounds
	codeRoundReceipts = 10
)

// MakePrefix builds a key from a one byte code followed by the encoded key parts.
func MakePrefix(code byte, keys ...interface{}) []byte {
	prefix := make([]byte, 1)
	prefix[0] = code
	for _, key := range keys {
		prefix = append(prefix, EncodeKeyPart(key)...)
	}
	return prefix
}

// EncodeKeyPart encodes a key part so that numerically smaller values are
// lexicographically smaller keys.
func EncodeKeyPart(v interface{}) []byte {
	switch i := v.(type) {
	case uint8:
		return []byte{i}
	case uint32:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, i)
		return b
	case uint64:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, i)
		return b
	case string:
		return []byte(i)
	case []byte:
		return i
	default:
		panic(fmt.Sprintf("unsupported type to convert (%T)", v))
	}
}
