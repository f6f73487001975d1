package common

import (
	"fmt"

	"github.com/spf13/pflag"
)

// BackendFlag is a flag value accepting the supported receipt log backends.
type BackendFlag string

var _ pflag.Value = (*BackendFlag)(nil)

func (f *BackendFlag) String() string {
	return string(*f)
}

func (f *BackendFlag) Set(value string) error {
	switch value {
	case BackendBadger, BackendPebble:
		*f = BackendFlag(value)
		return nil
	default:
		return fmt.Errorf("unsupported backend %q, expected %s or %s", value, BackendBadger, BackendPebble)
	}
}

func (f *BackendFlag) Type() string {
	return "backend"
}

// InitBackendFlag registers the receipt log backend flag, defaulting to badger.
func InitBackendFlag(flags *pflag.FlagSet, backend *BackendFlag) {
	*backend = BackendBadger
	flags.Var(backend, "backend", fmt.Sprintf("receipt log backend: %s or %s", BackendBadger, BackendPebble))
}

// InitDataDirFlag registers the data directory flag.
func InitDataDirFlag(flags *pflag.FlagSet, dir *string) {
	flags.StringVar(dir, "data-dir", "", "directory of the receipt log database")
}
