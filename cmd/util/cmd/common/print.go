package common

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ledgerd/recordcache/model/encoding/json"
)

var prettyEncoder = json.NewIndentEncoder()

// PrettyPrint writes v to stdout as indented JSON.
func PrettyPrint(v interface{}) {
	b, err := prettyEncoder.Encode(v)
	if err != nil {
		log.Fatal().Err(err).Msg("could not encode output")
	}
	fmt.Println(string(b))
}
