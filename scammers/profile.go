package scammers

import "strings"

// UnknownProfile is displayed when a profile link carries no /in/ handle
const UnknownProfile = "Unknown Profile"

// ProfileHandle extracts the path segment following "/in/" in a profile link
func ProfileHandle(profileLink string) string {
	_, rest, found := strings.Cut(profileLink, "/in/")
	if !found {
		return UnknownProfile
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return UnknownProfile
	}
	return rest
}

// ProfileURL returns the outbound link for a profile, adding https:// when the
// stored link has no http(s) scheme
func ProfileURL(profileLink string) string {
	lower := strings.ToLower(profileLink)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return profileLink
	}
	return "https://" + profileLink
}
