package riotapi

import (
	"fmt"
	"sort"
	"strings"
)

// platformHosts maps a user-facing region code to the platform routing value
// used as the API subdomain, e.g. "na" -> na1.api.riotgames.com.
var platformHosts = map[string]string{
	"br":   "br1",
	"eune": "eun1",
	"euw":  "euw1",
	"jp":   "jp1",
	"kr":   "kr",
	"lan":  "la1",
	"las":  "la2",
	"na":   "na1",
	"oce":  "oc1",
	"tr":   "tr1",
	"ru":   "ru",
	"pbe":  "pbe1",
}

// PlatformHost resolves a region code to its platform routing value.
func PlatformHost(region string) (string, error) {
	host, ok := platformHosts[strings.ToLower(region)]
	if !ok {
		return "", fmt.Errorf("unknown region %q (valid: %s)", region, strings.Join(Regions(), ", "))
	}
	return host, nil
}

// ValidRegion reports whether the given region code is known.
func ValidRegion(region string) bool {
	_, ok := platformHosts[strings.ToLower(region)]
	return ok
}

// Regions returns all known region codes in alphabetical order.
func Regions() []string {
	regions := make([]string, 0, len(platformHosts))
	for r := range platformHosts {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}
