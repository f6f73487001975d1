package encoding

// Domain separation tags prepended to encoded values before hashing, so that digests of
// different kinds of values never collide.

func tag(domain string) string {
	return tagPrefix + domain
}

const tagPrefix = "LEDGER-V1_"

var (
	// RecordCacheDigestTag is used for fingerprints of the record cache state
	RecordCacheDigestTag = tag("Record-Cache-Digest")
)
