/*
names.go - per-business-unit locale name/phone generation (spec §4.D
step 6). Grounded on _examples/original_source's use of a Faker-style
name generator per new hire; this repo keeps the factory fully offline
and deterministic by drawing from a small built-in per-locale name
corpus through simrand instead of calling out to a library that seeds
from the system clock.

Non-Latin-script locales (ja_JP, zh_CN) are transliterated to their
romanized form, since the Consultant schema carries plain name fields
and nothing downstream renders non-Latin script.
*/
package workforce

import (
	"fmt"
	"math"
	"strings"

	"github.com/FX93Y2/ConsultFirmDBMockup/simrand"
)

type localeNames struct {
	given   []string
	family  []string
	phoneFmt string // fmt verb pattern, filled with random digits
}

var namesByLocale = map[string]localeNames{
	"en_US": {
		given:    []string{"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda", "David", "Elizabeth"},
		family:   []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"},
		phoneFmt: "+1-%03d-%03d-%04d",
	},
	"en_GB": {
		given:    []string{"Oliver", "Amelia", "George", "Isla", "Harry", "Ava", "Jack", "Emily", "Jacob", "Sophie"},
		family:   []string{"Smith", "Jones", "Taylor", "Brown", "Williams", "Wilson", "Evans", "Thomas", "Roberts", "Walker"},
		phoneFmt: "+44-%04d-%03d-%03d",
	},
	"de_DE": {
		given:    []string{"Hans", "Anna", "Lukas", "Lena", "Felix", "Mia", "Paul", "Emma", "Max", "Sophie"},
		family:   []string{"Mueller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner", "Becker", "Schulz", "Hoffmann"},
		phoneFmt: "+49-%03d-%04d-%03d",
	},
	"ja_JP": {
		// Romanized (transliterated) given/family names.
		given:    []string{"Haruto", "Yui", "Sota", "Aoi", "Yuto", "Hina", "Riku", "Mio", "Ren", "Sakura"},
		family:   []string{"Sato", "Suzuki", "Takahashi", "Tanaka", "Watanabe", "Ito", "Yamamoto", "Nakamura", "Kobayashi", "Kato"},
		phoneFmt: "+81-%02d-%04d-%04d",
	},
	"zh_CN": {
		// Romanized (pinyin) given/family names.
		given:    []string{"Wei", "Fang", "Jun", "Min", "Lei", "Na", "Yang", "Li", "Chao", "Juan"},
		family:   []string{"Wang", "Li", "Zhang", "Liu", "Chen", "Yang", "Huang", "Zhao", "Wu", "Zhou"},
		phoneFmt: "+86-%03d-%04d-%04d",
	},
}

var fallbackLocale = "en_US"

// DrawName generates a given/family name pair from the named locale
// pool, falling back to en_US if the locale is unknown.
func DrawName(rng *simrand.Source, locale string) (given, family string) {
	l, ok := namesByLocale[locale]
	if !ok {
		l = namesByLocale[fallbackLocale]
	}
	given = l.given[rng.IntInRange(0, len(l.given)-1)]
	family = l.family[rng.IntInRange(0, len(l.family)-1)]
	return given, family
}

// DrawPhone generates a locale-formatted phone number.
func DrawPhone(rng *simrand.Source, locale string) string {
	l, ok := namesByLocale[locale]
	if !ok {
		l = namesByLocale[fallbackLocale]
	}
	// Each "%0Nd" verb gets a draw from [0, 10^N - 1] so it prints exactly N digits.
	var args []any
	for _, verb := range strings.Split(l.phoneFmt, "%0")[1:] {
		args = append(args, rng.IntInRange(0, int(math.Pow10(int(verb[0]-'0')))-1))
	}
	return fmt.Sprintf(l.phoneFmt, args...)
}

// Email derives a deterministic-looking email from a name.
func Email(given, family string) string {
	return strings.ToLower(given) + "." + strings.ToLower(family) + "@consultfirm.example"
}
