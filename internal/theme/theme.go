// Package theme derives the dashboard's visual theme from the dark-mode
// preference, the calendar season and the current weather condition. The
// resolver is a pure function so presentation can call it freely and tests
// can pin its output exactly.
package theme

import (
	"strings"
	"time"
)

// Token is a bundle of named style roles consumed by presentation. Role
// values are style-system class fragments; the core never interprets them.
type Token struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Background    string `json:"background"`
	Card          string `json:"card"`
	Text          string `json:"text"`
	TextSecondary string `json:"textSecondary"`
	Border        string `json:"border"`
	Shadow        string `json:"shadow"`
}

// SeasonalMode selects the seasonal theme layer.
type SeasonalMode string

const (
	SeasonalAuto SeasonalMode = "auto"
	SeasonalNone SeasonalMode = "none"
	SeasonSpring SeasonalMode = "spring"
	SeasonSummer SeasonalMode = "summer"
	SeasonAutumn SeasonalMode = "autumn"
	SeasonWinter SeasonalMode = "winter"
)

// WeatherMode selects the weather theme layer.
type WeatherMode string

const (
	WeatherAuto    WeatherMode = "auto"
	WeatherNone    WeatherMode = "none"
	WeatherRainy   WeatherMode = "rainy"
	WeatherSnowy   WeatherMode = "snowy"
	WeatherStormy  WeatherMode = "stormy"
	WeatherCloudy  WeatherMode = "cloudy"
	WeatherSunny   WeatherMode = "sunny"
	WeatherFoggy   WeatherMode = "foggy"
	WeatherDefault WeatherMode = "default"
)

// conditionClass pairs substring needles with the weather mode they map to.
// Order matters: the first match wins, so storm checks run before cloud
// checks and "cloudy with thunderstorms" resolves stormy.
type conditionClass struct {
	needles []string
	mode    WeatherMode
}

var conditionClasses = []conditionClass{
	{[]string{"rain", "drizzle"}, WeatherRainy},
	{[]string{"snow", "sleet"}, WeatherSnowy},
	{[]string{"storm", "thunder"}, WeatherStormy},
	{[]string{"cloud", "overcast"}, WeatherCloudy},
	{[]string{"clear", "sunny"}, WeatherSunny},
	{[]string{"fog", "mist"}, WeatherFoggy},
}

// ClassifyCondition maps a free-text condition descriptor onto a weather
// mode using case-insensitive substring matching in fixed priority order.
func ClassifyCondition(conditionText string) WeatherMode {
	condition := strings.ToLower(conditionText)
	for _, class := range conditionClasses {
		for _, needle := range class.needles {
			if strings.Contains(condition, needle) {
				return class.mode
			}
		}
	}
	return WeatherDefault
}

// SeasonForMonth returns the season for a month using fixed boundaries:
// Mar-May spring, Jun-Aug summer, Sep-Nov autumn, Dec-Feb winter.
func SeasonForMonth(month time.Month) SeasonalMode {
	switch {
	case month >= time.March && month <= time.May:
		return SeasonSpring
	case month >= time.June && month <= time.August:
		return SeasonSummer
	case month >= time.September && month <= time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// Resolve derives the theme token set. Layers apply in order, later layers
// overriding earlier ones role by role: dark/light base, then seasonal,
// then weather. It performs no I/O and is deterministic in its inputs.
func Resolve(isDark bool, seasonal SeasonalMode, weather WeatherMode, now time.Time, conditionText string) Token {
	token := lightTokens
	if isDark {
		token = darkTokens
	}

	switch seasonal {
	case SeasonalNone:
		// skip the seasonal layer entirely
	case SeasonalAuto:
		token = overlay(token, seasonalTokens[SeasonForMonth(now.Month())])
	default:
		if layer, ok := seasonalTokens[seasonal]; ok {
			token = overlay(token, layer)
		}
	}

	switch weather {
	case WeatherNone:
		// skip the weather layer entirely
	case WeatherAuto:
		if conditionText != "" {
			token = overlay(token, weatherTokens[ClassifyCondition(conditionText)])
		}
	default:
		if layer, ok := weatherTokens[weather]; ok {
			token = overlay(token, layer)
		}
	}

	return token
}

// overlay merges src over dst role by role; empty roles in src leave dst
// untouched.
func overlay(dst, src Token) Token {
	if src.Primary != "" {
		dst.Primary = src.Primary
	}
	if src.Secondary != "" {
		dst.Secondary = src.Secondary
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.Card != "" {
		dst.Card = src.Card
	}
	if src.Text != "" {
		dst.Text = src.Text
	}
	if src.TextSecondary != "" {
		dst.TextSecondary = src.TextSecondary
	}
	if src.Border != "" {
		dst.Border = src.Border
	}
	if src.Shadow != "" {
		dst.Shadow = src.Shadow
	}
	return dst
}
