// Copyright 2026 Paysum Users
// SPDX-License-Identifier: Apache-2.0

package txurl

import (
	"net/url"
	"strings"
)

// ExplorerHost is the only host transaction URLs are accepted from.
const ExplorerHost = "stellar.expert"

// Extract pulls a transaction ID out of an explorer URL. It succeeds
// only when the host is ExplorerHost and the path contains a "tx"
// segment followed by the identifier. Any other host, a missing "tx"
// segment, or a malformed URL is a non-match, not an error.
func Extract(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	if u.Hostname() != ExplorerHost {
		return "", false
	}

	parts := strings.Split(u.Path, "/")
	for i, part := range parts {
		if part == "tx" && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1], true
		}
	}

	return "", false
}
