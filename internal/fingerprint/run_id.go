package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ComputeRunID computes a deterministic run identifier using SHA256.
// Formula: SHA256(parameter_set_id|generated_at_unix)
// Returns hex-encoded hash (64 characters).
func ComputeRunID(parameterSetID string, generatedAt time.Time) string {
	data := fmt.Sprintf("%s|%d",
		parameterSetID,
		generatedAt.Unix(),
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
