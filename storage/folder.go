package storage

import (
	"fmt"
	"os"
	"strings"
)

// FolderContent describes the database found in a data directory.
type FolderContent int

const (
	FolderEmpty FolderContent = iota
	FolderBadger
	FolderPebble
	FolderUnknown
)

func (c FolderContent) String() string {
	switch c {
	case FolderEmpty:
		return "empty"
	case FolderBadger:
		return "badger"
	case FolderPebble:
		return "pebble"
	default:
		return "unknown"
	}
}

// CheckFolder inspects the files of the data directory to tell which database, if any,
// it holds. A missing directory is empty, since the databases create it on open.
func CheckFolder(dir string) (FolderContent, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return FolderEmpty, nil
	}
	if err != nil {
		return FolderUnknown, err
	}
	if !info.IsDir() {
		return FolderUnknown, fmt.Errorf("%s is not a directory", dir)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return FolderUnknown, err
	}
	if len(files) == 0 {
		return FolderEmpty, nil
	}

	var pebbleManifest, badgerManifest, keyRegistry, current, log, vlog bool
	for _, file := range files {
		name := file.Name()
		switch {
		case strings.HasPrefix(name, "MANIFEST-"):
			pebbleManifest = true
		case name == "MANIFEST":
			badgerManifest = true
		case name == "CURRENT":
			current = true
		case name == "KEYREGISTRY":
			keyRegistry = true
		case strings.HasSuffix(name, ".log"):
			log = true
		case strings.HasSuffix(name, ".vlog"):
			vlog = true
		}
	}

	switch {
	case pebbleManifest && current && log:
		return FolderPebble, nil
	case badgerManifest && keyRegistry && vlog:
		return FolderBadger, nil
	default:
		return FolderUnknown, nil
	}
}
