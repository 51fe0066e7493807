package theme

import (
	"strconv"

	"github.com/ahmedebrahem0/weatherdash/internal/kvstore"
)

// darkPrefKey is the fixed key the dark-mode flag is persisted under.
const darkPrefKey = "weather-theme-dark"

// LoadDarkPreference reads the persisted dark-mode flag. A missing or
// corrupt value defaults to dark mode.
func LoadDarkPreference(store kvstore.Interface) bool {
	value, ok, err := store.Get(darkPrefKey)
	if err != nil || !ok {
		return true
	}
	isDark, err := strconv.ParseBool(value)
	if err != nil {
		return true
	}
	return isDark
}

// SaveDarkPreference persists the dark-mode flag.
func SaveDarkPreference(store kvstore.Interface, isDark bool) error {
	return store.Set(darkPrefKey, strconv.FormatBool(isDark))
}
