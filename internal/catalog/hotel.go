package catalog

import (
	"fmt"
	"net"
	"strings"
)

// Hotel identifies the regional site whose reference data matches a game host.
type Hotel struct {
	Code   string
	Domain string
}

var hotels = map[string]string{
	"us": "www.habbo.com",
	"br": "www.habbo.com.br",
	"es": "www.habbo.es",
	"fi": "www.habbo.fi",
	"it": "www.habbo.it",
	"nl": "www.habbo.nl",
	"de": "www.habbo.de",
	"fr": "www.habbo.fr",
	"tr": "www.habbo.com.tr",
	"s2": "sandbox.habbo.com",
}

// HotelFromHost maps a game host such as "game-us.habbo.com:30001" to its hotel.
func HotelFromHost(host string) (Hotel, error) {
	h := strings.ToLower(strings.TrimSpace(host))
	if hostOnly, _, err := net.SplitHostPort(h); err == nil {
		h = hostOnly
	}

	label, _, _ := strings.Cut(h, ".")
	code, ok := strings.CutPrefix(label, "game-")
	if !ok {
		return Hotel{}, fmt.Errorf("unrecognised game host %q", host)
	}

	domain, ok := hotels[code]
	if !ok {
		return Hotel{}, fmt.Errorf("unknown hotel %q for host %q", code, host)
	}

	return Hotel{Code: code, Domain: domain}, nil
}
