package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/yakoovad/buoy-notify/internal/mail"
)

// SiteLinks builds the URLs and addresses that notifications point back to.
type SiteLinks struct {
	// Prefix namespaces post types, admin pages and query parameters.
	Prefix          string
	SiteName        string
	ServerName      string
	AdminURL        string
	HomeURL         string
	RegistrationURL string
	// FromLocal is the local part of the site's own sender address.
	FromLocal string
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + path
}

// TeamMembershipURL is the admin page where a user reviews team invitations.
func (s SiteLinks) TeamMembershipURL() string {
	return joinURL(s.AdminURL, fmt.Sprintf("edit.php?post_type=%s_team&page=%s_team_membership", s.Prefix, s.Prefix))
}

// AlertReviewURL is the responder deep link carrying the full alert hash.
func (s SiteLinks) AlertReviewURL(hash string) string {
	return joinURL(s.AdminURL, fmt.Sprintf("?page=%s_review_alert&%s_hash=%s", s.Prefix, s.Prefix, url.QueryEscape(hash)))
}

// AlertShortURL is the public short link carrying the short alert hash.
func (s SiteLinks) AlertShortURL(shortHash string) string {
	return joinURL(s.HomeURL, fmt.Sprintf("?%s_alert=%s", s.Prefix, url.QueryEscape(shortHash)))
}

// FromDomain is the lower-cased server name without a leading "www.".
func (s SiteLinks) FromDomain() string {
	return strings.TrimPrefix(strings.ToLower(s.ServerName), "www.")
}

// FromAddress is the site's own sender address. Alerts are sent from it
// rather than from the alerter's mailbox so that relays accept them.
func (s SiteLinks) FromAddress() string {
	return s.FromLocal + "@" + s.FromDomain()
}

// FromHeader displays name while using the site's own address.
func (s SiteLinks) FromHeader(name string) string {
	return mail.FormatAddress(name, s.FromAddress())
}
