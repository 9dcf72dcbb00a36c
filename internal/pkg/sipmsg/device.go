package sipmsg

import (
	"regexp"
	"strings"
)

// Identity and device side-channels carried in signaling headers.

var (
	// userAgentDeviceRE matches the vendor convention of packing device
	// identity into User-Agent as MANUFACTURER---MODEL---OSVERSION.
	userAgentDeviceRE = regexp.MustCompile(`^(.*?)---(.*?)---(.*)$`)

	quotedNameRE = regexp.MustCompile(`"([^"]+)"`)

	verstatRE = regexp.MustCompile(`(?i)verstat=([A-Za-z0-9_-]+)`)
)

// DeviceInfo is the device identity recovered from a User-Agent header.
type DeviceInfo struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	OSVersion    string `json:"osVersion"`
}

// Device extracts device identity from the User-Agent header when it follows
// the triple-dash vendor convention.
func (m *Message) Device() (DeviceInfo, bool) {
	if m == nil || m.Parsed == nil {
		return DeviceInfo{}, false
	}
	ua, ok := m.Parsed.Headers.Get("User-Agent")
	if !ok {
		return DeviceInfo{}, false
	}
	match := userAgentDeviceRE.FindStringSubmatch(ua)
	if match == nil {
		return DeviceInfo{}, false
	}
	return DeviceInfo{
		Manufacturer: strings.TrimSpace(match[1]),
		Model:        strings.TrimSpace(match[2]),
		OSVersion:    strings.TrimSpace(match[3]),
	}, true
}

// AssertedDisplayName returns the quoted display name from the
// P-Asserted-Identity header.
func (m *Message) AssertedDisplayName() (string, bool) {
	if m == nil || m.Parsed == nil {
		return "", false
	}
	pai, ok := m.Parsed.Headers.Get("P-Asserted-Identity")
	if !ok {
		return "", false
	}
	match := quotedNameRE.FindStringSubmatch(pai)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// AccessNetworkInfo returns the P-Access-Network-Info header value, which
// may embed a cell identifier.
func (m *Message) AccessNetworkInfo() (string, bool) {
	if m == nil || m.Parsed == nil {
		return "", false
	}
	return m.Parsed.Headers.Get("P-Access-Network-Info")
}

// VerificationStatus returns the STIR/SHAKEN verstat parameter, scanned
// across the headers that carry it in the wild.
func (m *Message) VerificationStatus() (string, bool) {
	if m == nil || m.Parsed == nil {
		return "", false
	}
	for _, name := range []string{"From", "P-Asserted-Identity", "Verstat"} {
		if val, ok := m.Parsed.Headers.Get(name); ok {
			if match := verstatRE.FindStringSubmatch(val); match != nil {
				return match[1], true
			}
		}
	}
	return "", false
}
