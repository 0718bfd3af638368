package ingest

import (
	"strings"

	"github.com/D-dracula/merchantlens/internal/model"
)

// platformKeywords are matched case-insensitively against header names and
// first-row values. First platform to score a hit wins; detection order is
// stable.
var platformKeywords = []struct {
	platform model.Platform
	keywords []string
}{
	{model.PlatformSalla, []string{"salla", "سلة"}},
	{model.PlatformZid, []string{"zid", "zidship", "زد شيب"}},
	{model.PlatformShopify, []string{"shopify", "fulfillment status", "lineitem", "financial status"}},
}

// detectPlatform scans headers and the first data row for platform-specific
// keywords. Returns PlatformUnknown when nothing matches.
func detectPlatform(headers []string, firstRow model.RawRow) model.Platform {
	haystack := make([]string, 0, len(headers)+len(firstRow))
	for _, h := range headers {
		haystack = append(haystack, strings.ToLower(h))
	}
	for _, v := range firstRow {
		haystack = append(haystack, strings.ToLower(v))
	}

	for _, entry := range platformKeywords {
		for _, keyword := range entry.keywords {
			for _, candidate := range haystack {
				if strings.Contains(candidate, keyword) {
					return entry.platform
				}
			}
		}
	}
	return model.PlatformUnknown
}
