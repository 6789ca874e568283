// Package sms delivers text messages through carrier email-to-SMS gateways.
package sms

import (
	"math/rand/v2"
	"slices"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

var ErrUnknownCarrier = errors.New("unknown sms carrier")

// gatewayDomains maps a carrier name to its gateway domains, each with the
// leading "@". Carriers with several working gateways list all of them.
var gatewayDomains = map[string][]string{
	"AT&T":          {"@txt.att.net"},
	"Alltel":        {"@message.alltel.com"},
	"Boost Mobile":  {"@myboostmobile.com"},
	"Cricket":       {"@sms.mycricket.com"},
	"Metro PCS":     {"@mymetropcs.com"},
	"Nextel":        {"@messaging.nextel.com"},
	"Ptel":          {"@ptel.com"},
	"Qwest":         {"@qwestmp.com"},
	"Sprint":        {"@messaging.sprintpcs.com", "@pm.sprint.com"},
	"Suncom":        {"@tms.suncom.com"},
	"T-Mobile":      {"@tmomail.net"},
	"Tracfone":      {"@mmst5.tracfone.com"},
	"U.S. Cellular": {"@email.uscc.net"},
	"Verizon":       {"@vtext.com"},
	"Virgin Mobile": {"@vmobl.com"},
}

// GatewayDomain returns the "@domain" suffix of carrier's email-to-SMS gateway.
// When a carrier has several equivalent gateways one is picked at random on
// every call, so callers must not rely on a stable answer.
func GatewayDomain(carrier string) (string, error) {
	domains, ok := gatewayDomains[carrier]
	if !ok {
		return "", errors.Wrap(ErrUnknownCarrier, carrier)
	}
	if len(domains) == 1 {
		return domains[0], nil
	}
	return domains[rand.IntN(len(domains))], nil
}

// Carriers returns the recognized carrier names in sorted order.
func Carriers() []string {
	names := make([]string, 0, len(gatewayDomains))
	for name := range gatewayDomains {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func IsCarrier(carrier string) bool {
	_, ok := gatewayDomains[carrier]
	return ok
}

// Address builds the gateway email address for phone on carrier. Everything
// but digits is stripped from phone. An empty phone or carrier yields "".
func Address(phone, carrier string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if digits == "" || carrier == "" {
		return "", nil
	}

	domain, err := GatewayDomain(carrier)
	if err != nil {
		return "", err
	}
	return digits + domain, nil
}
