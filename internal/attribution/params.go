package attribution

import (
	"net/url"
	"slices"
	"strings"
)

// Click identifiers appended by ad networks to outbound links.
const (
	ParamFBCLID     = "fbclid"
	ParamGCLID      = "gclid"
	ParamTTCLID     = "ttclid"
	ParamMSCLKID    = "msclkid"
	ParamSCCLID     = "scclid"
	ParamCampaignID = "campaign_id"
	ParamAdID       = "ad_id"
)

// UTM campaign parameters.
const (
	ParamUTMSource   = "utm_source"
	ParamUTMMedium   = "utm_medium"
	ParamUTMCampaign = "utm_campaign"
	ParamUTMTerm     = "utm_term"
	ParamUTMContent  = "utm_content"
	ParamUTMID       = "utm_id"
)

var clickIDParams = []string{
	ParamFBCLID,
	ParamGCLID,
	ParamTTCLID,
	ParamMSCLKID,
	ParamSCCLID,
	ParamCampaignID,
	ParamAdID,
}

var utmParams = []string{
	ParamUTMSource,
	ParamUTMMedium,
	ParamUTMCampaign,
	ParamUTMTerm,
	ParamUTMContent,
	ParamUTMID,
}

// clickIDPlatforms maps click identifiers that belong to a single network.
// msclkid, campaign_id and ad_id signal paid traffic without naming one.
var clickIDPlatforms = map[string]Platform{
	ParamFBCLID: PlatformFacebook,
	ParamGCLID:  PlatformGoogle,
	ParamTTCLID: PlatformTikTok,
	ParamSCCLID: PlatformSnapchat,
}

type param struct {
	name  string
	value string
	field string
}

type params map[string]param

func (p params) value(name string) string {
	return p[name].value
}

// extractParams collects the attribution parameters from both order URLs.
// The referring site wins when both carry the same parameter.
func extractParams(o Order) params {
	referring := parseQuery(o.ReferringSite)
	landing := parseQuery(o.LandingSite)

	out := make(params)
	for _, name := range slices.Concat(clickIDParams, utmParams) {
		if v := referring[name]; v != "" {
			out[name] = param{name: name, value: v, field: FieldReferringSite}
			continue
		}
		if v := landing[name]; v != "" {
			out[name] = param{name: name, value: v, field: FieldLandingSite}
		}
	}
	return out
}

// parseQuery returns the first non-empty value of every query key, with keys
// lowercased. Unparseable input yields nil.
func parseQuery(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}

	// ParseQuery keeps every well-formed pair even when it reports an error.
	values, _ := url.ParseQuery(u.RawQuery)
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		key := strings.ToLower(strings.TrimSpace(k))
		if _, seen := out[key]; seen {
			continue
		}
		for _, v := range values[k] {
			if v = strings.TrimSpace(v); v != "" {
				out[key] = v
				break
			}
		}
	}
	return out
}
