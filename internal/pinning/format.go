package pinning

import (
	"math"
	"strconv"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count with base-1024 scaling and two-decimal
// rounding, choosing the largest unit where the scaled value is at least 1.
// Trailing zeros are trimmed, so 1536 is "1.5 KB" and 1024 is "1 KB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	exp := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if exp >= len(sizeUnits) {
		exp = len(sizeUnits) - 1
	}

	scaled := float64(bytes) / math.Pow(1024, float64(exp))
	rounded := math.Round(scaled*100) / 100

	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[exp]
}
