package json

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// IndentEncoder encodes values as indented JSON for humans.
type IndentEncoder struct{}

func NewIndentEncoder() *IndentEncoder {
	return &IndentEncoder{}
}

func (e *IndentEncoder) Encode(val interface{}) ([]byte, error) {
	b, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("could not encode json: %w", err)
	}
	return b, nil
}
