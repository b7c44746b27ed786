// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

var reDuration = regexp.MustCompile(`^(\d+\.?\d*)([µa-z]+)$`)

// FormatDuration pretty prints a duration with at most two decimal places, e.g.: "1.23ms".
// Durations with more than one unit (like "1m30s") are returned as is.
func FormatDuration(d time.Duration) string {
	s := d.String()
	matches := reDuration.FindStringSubmatch(s)
	if len(matches) != 3 {
		return s
	}
	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(math.Round(num*100)/100, 'f', -1, 64) + matches[2]
}
