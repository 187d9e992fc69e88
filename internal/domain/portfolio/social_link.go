package portfolio

import "strings"

// FallbackIcon is used for platforms without a known icon.
const FallbackIcon = "Mail"

var platformIcons = map[string]string{
	"github":    "GitHub",
	"linkedin":  "LinkedIn",
	"mail":      "Mail",
	"instagram": "Instagram",
}

// IconFor matches a free-text platform name against the known icons,
// ignoring case and surrounding space.
func IconFor(platform string) string {
	if icon, ok := platformIcons[strings.ToLower(strings.TrimSpace(platform))]; ok {
		return icon
	}
	return FallbackIcon
}

type SocialLink struct {
	Base
	Platform   string `json:"platform"`
	URL        string `json:"url"`
	Icon       string `json:"icon"`
	OrderIndex int    `json:"order_index"`
}

func (s *SocialLink) OrderKey() int { return s.OrderIndex }

func (s *SocialLink) Normalize() {
	trim(&s.Platform, &s.URL, &s.Icon)
}

func (s *SocialLink) Validate() error {
	if err := checkRequired(required("platform", s.Platform), required("url", s.URL)); err != nil {
		return err
	}
	return checkURL("url", s.URL)
}

// ResolvedIcon prefers the stored icon and falls back to the platform lookup.
func (s *SocialLink) ResolvedIcon() string {
	if s.Icon != "" {
		return s.Icon
	}
	return IconFor(s.Platform)
}
