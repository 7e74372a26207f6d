// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package crosschain

import (
	"crypto/sha256"
	"time"
)

// KiB is 1024 bytes
const KiB = 1024

// ComputeHash256Array computes SHA256 hash and returns as array
func ComputeHash256Array(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// UnixNow returns the current wall clock time in seconds, the resolution
// message timestamps are kept at.
func UnixNow(now time.Time) uint64 {
	sec := now.Unix()
	if sec < 0 {
		return 0
	}
	return uint64(sec)
}
