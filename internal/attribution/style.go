package attribution

import (
	"fmt"
	"strings"
)

// TagStyle selects the vocabulary of classification tags written to orders.
type TagStyle string

const (
	// StylePlain writes "Paid" or "Organic".
	StylePlain TagStyle = "plain"
	// StyleDetailed writes platform-qualified labels such as
	// "Paid - Facebook Ad Order" and "Organic Order".
	StyleDetailed TagStyle = "detailed"
)

const (
	tagPaid           = "Paid"
	tagOrganic        = "Organic"
	tagOrganicOrder   = "Organic Order"
	tagPaidUnknownAd  = "Paid - Ad Order"
	detailedAdPattern = "Paid - %s Ad Order"
)

var platformLabels = map[Platform]string{
	PlatformFacebook:  "Facebook",
	PlatformInstagram: "Instagram",
	PlatformMeta:      "Meta",
	PlatformGoogle:    "Google",
	PlatformTikTok:    "TikTok",
	PlatformSnapchat:  "Snapchat",
	PlatformPinterest: "Pinterest",
	PlatformLinkedIn:  "LinkedIn",
	PlatformTwitter:   "Twitter",
	PlatformYouTube:   "YouTube",
}

// classificationTags holds every tag literal TagFor can produce in any style.
var classificationTags = buildClassificationTags()

func buildClassificationTags() map[string]struct{} {
	tags := map[string]struct{}{
		tagPaid:          {},
		tagOrganic:       {},
		tagOrganicOrder:  {},
		tagPaidUnknownAd: {},
	}
	for _, label := range platformLabels {
		tags[fmt.Sprintf(detailedAdPattern, label)] = struct{}{}
	}
	return tags
}

// ParseTagStyle validates a configured style name. Empty selects StylePlain.
func ParseTagStyle(s string) (TagStyle, error) {
	switch TagStyle(strings.ToLower(strings.TrimSpace(s))) {
	case "", StylePlain:
		return StylePlain, nil
	case StyleDetailed:
		return StyleDetailed, nil
	default:
		return "", fmt.Errorf("unknown tag style: %q", s)
	}
}

// TagFor renders the tag for a verdict.
func TagFor(v Verdict, style TagStyle) string {
	if style != StyleDetailed {
		if v.Paid() {
			return tagPaid
		}
		return tagOrganic
	}

	if !v.Paid() {
		return tagOrganicOrder
	}
	if label, ok := platformLabels[v.Platform]; ok {
		return fmt.Sprintf(detailedAdPattern, label)
	}
	return tagPaidUnknownAd
}

// IsClassificationTag reports whether tag is one this package writes.
// Matching is exact so that user tags like "paid-shipping" survive.
func IsClassificationTag(tag string) bool {
	_, ok := classificationTags[tag]
	return ok
}
