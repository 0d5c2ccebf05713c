package attribution

import "strings"

// Substrings of utm_medium that mark paid placements.
var paidMediumTokens = []string{"cpc", "ppc", "paid", "social", "display", "cpv"}

// Substrings of utm_campaign that mark paid campaigns.
var paidCampaignTokens = []string{"ads", "cpc", "ppc", "promo", "sale", "conversion", "retargeting"}

// Options toggles the optional heuristics of a Classifier.
type Options struct {
	// MatchSiteHosts also treats a referring or landing site that contains a
	// platform name as paid traffic. Off by default: it tags organic social
	// referrals as paid.
	MatchSiteHosts bool `json:"match_site_hosts"`
}

// Classifier maps orders to verdicts. The zero value is ready to use.
//
// Every comparison is a case-insensitive substring match. This is permissive
// on purpose and produces false positives, e.g. a campaign named
// "Instagram Feedback" or a source name containing "meta".
type Classifier struct {
	opts Options
}

// NewClassifier creates a Classifier with the given options.
func NewClassifier(opts Options) *Classifier {
	return &Classifier{opts: opts}
}

// Classify returns the verdict for o using the default options.
func Classify(o Order) Verdict {
	var c Classifier
	return c.Classify(o)
}

// Classify evaluates the paid-traffic rules in precedence order. The first rule
// that fires supplies the evidence; the platform is refined separately.
func (c *Classifier) Classify(o Order) Verdict {
	p := extractParams(o)

	evidence := c.evidence(o, p)
	if evidence == nil {
		return Verdict{Source: SourceOrganic}
	}

	return Verdict{
		Source:   SourcePaid,
		Platform: c.platform(o, p),
		Evidence: evidence,
	}
}

func (c *Classifier) evidence(o Order, p params) *Evidence {
	if tok, ok := matchPlatform(o.SourceName); ok {
		return &Evidence{
			Rule:  RuleSourceName,
			Field: FieldSourceName,
			Value: o.SourceName,
			Match: string(tok),
		}
	}

	for _, name := range clickIDParams {
		if prm, ok := p[name]; ok {
			return &Evidence{
				Rule:  RuleClickID,
				Field: prm.field,
				Param: name,
				Value: prm.value,
			}
		}
	}

	if ev := matchParam(p, ParamUTMMedium, RuleUTMMedium, paidMediumTokens); ev != nil {
		return ev
	}

	if prm, ok := p[ParamUTMSource]; ok {
		if tok, ok := matchPlatform(prm.value); ok {
			return &Evidence{
				Rule:  RuleUTMSource,
				Field: prm.field,
				Param: ParamUTMSource,
				Value: prm.value,
				Match: string(tok),
			}
		}
	}

	if ev := matchParam(p, ParamUTMCampaign, RuleUTMCampaign, paidCampaignTokens); ev != nil {
		return ev
	}

	if c.opts.MatchSiteHosts {
		if field, value, tok, ok := matchSite(o); ok {
			return &Evidence{
				Rule:  RuleSite,
				Field: field,
				Value: value,
				Match: string(tok),
			}
		}
	}

	return nil
}

// platform picks the network for a Paid verdict: platform-specific click
// identifiers, then utm_source, then source_name, then the site URLs.
func (c *Classifier) platform(o Order, p params) Platform {
	for _, name := range clickIDParams {
		if platform, ok := clickIDPlatforms[name]; ok {
			if _, present := p[name]; present {
				return platform
			}
		}
	}

	if tok, ok := matchPlatform(p.value(ParamUTMSource)); ok {
		return tok
	}

	if tok, ok := matchPlatform(o.SourceName); ok {
		return tok
	}

	if c.opts.MatchSiteHosts {
		if _, _, tok, ok := matchSite(o); ok {
			return tok
		}
	}

	return PlatformUnknown
}

func matchParam(p params, name string, rule Rule, tokens []string) *Evidence {
	prm, ok := p[name]
	if !ok {
		return nil
	}
	if tok, ok := containsAny(prm.value, tokens); ok {
		return &Evidence{
			Rule:  rule,
			Field: prm.field,
			Param: name,
			Value: prm.value,
			Match: tok,
		}
	}
	return nil
}

func matchSite(o Order) (field, value string, tok Platform, ok bool) {
	if tok, ok := matchPlatform(o.ReferringSite); ok {
		return FieldReferringSite, o.ReferringSite, tok, true
	}
	if tok, ok := matchPlatform(o.LandingSite); ok {
		return FieldLandingSite, o.LandingSite, tok, true
	}
	return "", "", "", false
}

func matchPlatform(s string) (Platform, bool) {
	if s == "" {
		return "", false
	}
	lower := strings.ToLower(s)
	for _, tok := range platformTokens {
		if strings.Contains(lower, string(tok)) {
			return tok, true
		}
	}
	return "", false
}

func containsAny(s string, tokens []string) (string, bool) {
	if s == "" {
		return "", false
	}
	lower := strings.ToLower(s)
	for _, tok := range tokens {
		if strings.Contains(lower, tok) {
			return tok, true
		}
	}
	return "", false
}
