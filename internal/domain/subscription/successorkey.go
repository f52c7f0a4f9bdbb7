package subscription

import (
	"fmt"
	"regexp"
	"strconv"
)

var versionSuffixRe = regexp.MustCompile(`^(.*)-v(\d+)$`)

// SuccessorKey derives the key for the subscription opened when an expired one
// is transitioned. A trailing "-v<digits>" suffix is treated as a version
// counter and incremented; any other key gets "-v1" appended.
//
//	SuccessorKey("sub")          = "sub-v1"
//	SuccessorKey("sub-v42")      = "sub-v43"
//	SuccessorKey("foo-v1-bar")   = "foo-v1-bar-v1"
func SuccessorKey(key string) string {
	if m := versionSuffixRe.FindStringSubmatch(key); m != nil {
		n, err := strconv.Atoi(m[2])
		if err == nil {
			return fmt.Sprintf("%s-v%d", m[1], n+1)
		}
	}
	return key + "-v1"
}
