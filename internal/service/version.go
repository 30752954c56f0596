package service

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/msaedi/instructly-sub007/internal/bitmap"
)

// versionTokenLen is the length of the emitted concurrency token.
const versionTokenLen = 16

// ComputeWeekVersion derives the optimistic-concurrency token for a week:
// a content hash over the seven day vectors in canonical Monday-to-Sunday
// order. Identical bits always produce an identical token; the token is
// never derived from wall-clock time and is not meant for display.
func ComputeWeekVersion(days []bitmap.DayBits) string {
	h := sha256.New()
	for _, d := range days {
		h.Write([]byte(d.Hex()))
	}
	return hex.EncodeToString(h.Sum(nil))[:versionTokenLen]
}
