package theme

// Token tables for every layer. Values are the style-system fragments the
// web presentation applies as-is.

var lightTokens = Token{
	Primary:       "from-blue-400 to-blue-600",
	Secondary:     "from-purple-400 to-purple-600",
	Background:    "from-blue-50 to-blue-100",
	Card:          "bg-white/80",
	Text:          "text-gray-800",
	TextSecondary: "text-gray-600",
	Border:        "border-gray-200",
	Shadow:        "shadow-lg",
}

var darkTokens = Token{
	Primary:       "from-blue-900 to-purple-900",
	Secondary:     "from-indigo-900 to-purple-900",
	Background:    "from-gray-900 to-black",
	Card:          "bg-gray-800/80",
	Text:          "text-white",
	TextSecondary: "text-gray-300",
	Border:        "border-gray-700",
	Shadow:        "shadow-2xl",
}

var seasonalTokens = map[SeasonalMode]Token{
	SeasonSpring: {
		Primary:       "from-green-400 to-pink-400",
		Secondary:     "from-yellow-400 to-green-400",
		Background:    "from-green-50 to-pink-50",
		Card:          "bg-white/80",
		Text:          "text-green-800",
		TextSecondary: "text-green-600",
		Border:        "border-green-200",
		Shadow:        "shadow-lg",
	},
	SeasonSummer: {
		Primary:       "from-yellow-400 to-orange-500",
		Secondary:     "from-red-400 to-yellow-400",
		Background:    "from-yellow-50 to-orange-50",
		Card:          "bg-white/80",
		Text:          "text-orange-800",
		TextSecondary: "text-orange-600",
		Border:        "border-orange-200",
		Shadow:        "shadow-lg",
	},
	SeasonAutumn: {
		Primary:       "from-orange-500 to-red-600",
		Secondary:     "from-yellow-500 to-orange-500",
		Background:    "from-orange-50 to-red-50",
		Card:          "bg-white/80",
		Text:          "text-red-800",
		TextSecondary: "text-red-600",
		Border:        "border-red-200",
		Shadow:        "shadow-lg",
	},
	SeasonWinter: {
		Primary:       "from-blue-400 to-indigo-600",
		Secondary:     "from-cyan-400 to-blue-400",
		Background:    "from-blue-50 to-cyan-50",
		Card:          "bg-white/80",
		Text:          "text-blue-800",
		TextSecondary: "text-blue-600",
		Border:        "border-blue-200",
		Shadow:        "shadow-lg",
	},
}

var weatherTokens = map[WeatherMode]Token{
	WeatherRainy: {
		Primary:       "from-gray-600 to-blue-800",
		Secondary:     "from-blue-600 to-gray-700",
		Background:    "from-gray-100 to-blue-100",
		Card:          "bg-white/90",
		Text:          "text-gray-800",
		TextSecondary: "text-gray-600",
		Border:        "border-blue-300",
		Shadow:        "shadow-lg",
	},
	WeatherSnowy: {
		Primary:       "from-blue-300 to-cyan-500",
		Secondary:     "from-cyan-400 to-blue-300",
		Background:    "from-cyan-50 to-blue-50",
		Card:          "bg-white/95",
		Text:          "text-blue-800",
		TextSecondary: "text-blue-600",
		Border:        "border-cyan-300",
		Shadow:        "shadow-lg",
	},
	WeatherStormy: {
		Primary:       "from-gray-800 to-purple-900",
		Secondary:     "from-purple-800 to-gray-900",
		Background:    "from-gray-200 to-purple-100",
		Card:          "bg-white/80",
		Text:          "text-gray-800",
		TextSecondary: "text-gray-600",
		Border:        "border-purple-300",
		Shadow:        "shadow-xl",
	},
	WeatherCloudy: {
		Primary:       "from-gray-500 to-blue-600",
		Secondary:     "from-blue-500 to-gray-600",
		Background:    "from-gray-100 to-blue-50",
		Card:          "bg-white/85",
		Text:          "text-gray-700",
		TextSecondary: "text-gray-500",
		Border:        "border-gray-300",
		Shadow:        "shadow-lg",
	},
	WeatherSunny: {
		Primary:       "from-yellow-400 to-orange-500",
		Secondary:     "from-orange-400 to-yellow-500",
		Background:    "from-yellow-50 to-orange-50",
		Card:          "bg-white/90",
		Text:          "text-orange-800",
		TextSecondary: "text-orange-600",
		Border:        "border-orange-300",
		Shadow:        "shadow-lg",
	},
	WeatherFoggy: {
		Primary:       "from-gray-400 to-gray-600",
		Secondary:     "from-gray-500 to-gray-700",
		Background:    "from-gray-100 to-gray-200",
		Card:          "bg-white/70",
		Text:          "text-gray-700",
		TextSecondary: "text-gray-500",
		Border:        "border-gray-400",
		Shadow:        "shadow-md",
	},
	WeatherDefault: {
		Primary:       "from-blue-400 to-purple-600",
		Secondary:     "from-purple-400 to-blue-600",
		Background:    "from-blue-50 to-purple-50",
		Card:          "bg-white/80",
		Text:          "text-gray-800",
		TextSecondary: "text-gray-600",
		Border:        "border-gray-200",
		Shadow:        "shadow-lg",
	},
}
