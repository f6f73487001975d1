package main

import (
	"github.com/ledgerd/recordcache/cmd/util/cmd"
)

func main() {
	cmd.Execute()
}
