package metrics

const (
	LabelResult  = "result"
	LabelBackend = "backend"
	LabelOp      = "operation"
)

const (
	BackendBadger   = "badger"
	BackendPebble   = "pebble"
	BackendInMemory = "inmemory"
)

const (
	OpAdd    = "add"
	OpPoll   = "poll"
	OpCommit = "commit"
)
