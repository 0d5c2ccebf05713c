package attribution

// Source is the top-level traffic verdict.
type Source string

const (
	SourceOrganic Source = "Organic"
	SourcePaid    Source = "Paid"
)

// Platform refines a Paid verdict to the advertising network that produced it.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformMeta      Platform = "meta"
	PlatformGoogle    Platform = "google"
	PlatformTikTok    Platform = "tiktok"
	PlatformSnapchat  Platform = "snapchat"
	PlatformPinterest Platform = "pinterest"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTwitter   Platform = "twitter"
	PlatformYouTube   Platform = "youtube"
	PlatformUnknown   Platform = "unknown"
)

// platformTokens is matched in order; the first substring hit names the platform.
var platformTokens = []Platform{
	PlatformFacebook,
	PlatformInstagram,
	PlatformMeta,
	PlatformGoogle,
	PlatformTikTok,
	PlatformSnapchat,
	PlatformPinterest,
	PlatformLinkedIn,
	PlatformTwitter,
	PlatformYouTube,
}

// Platforms returns the named advertising platforms in match order.
func Platforms() []Platform {
	out := make([]Platform, len(platformTokens))
	copy(out, platformTokens)
	return out
}

// Rule identifies which heuristic produced a Paid verdict.
type Rule string

const (
	RuleSourceName  Rule = "source_name"
	RuleClickID     Rule = "click_id"
	RuleUTMMedium   Rule = "utm_medium"
	RuleUTMSource   Rule = "utm_source"
	RuleUTMCampaign Rule = "utm_campaign"
	RuleSite        Rule = "site"
)

// Order fields that evidence can point at.
const (
	FieldSourceName    = "source_name"
	FieldLandingSite   = "landing_site"
	FieldReferringSite = "referring_site"
)

// Evidence records the signal behind a Paid verdict.
type Evidence struct {
	Rule  Rule   `json:"rule"`
	Field string `json:"field"`
	Param string `json:"param,omitempty"`
	Value string `json:"value,omitempty"`
	Match string `json:"match,omitempty"`
}

// Verdict is the classification of a single order. It has no identity and is
// recomputed on every delivery.
type Verdict struct {
	Source   Source    `json:"source"`
	Platform Platform  `json:"platform,omitempty"`
	Evidence *Evidence `json:"evidence,omitempty"`
}

// Paid reports whether the verdict attributes the order to advertising.
func (v Verdict) Paid() bool {
	return v.Source == SourcePaid
}
