// Package catalog holds the fixed country data the quiz draws from.
package catalog

import "strings"

// names maps ISO 3166-1 alpha-2 codes (lower case) to display names.
// Every code appearing in a difficulty pool must be present here.
var names = map[string]string{
	"ua": "Ukraine",
	"us": "United States",
	"fr": "France",
	"de": "Germany",
	"it": "Italy",
	"jp": "Japan",
	"br": "Brazil",
	"ca": "Canada",
	"es": "Spain",
	"gb": "United Kingdom",
	"np": "Nepal",
	"bt": "Bhutan",
	"kz": "Kazakhstan",
	"za": "South Africa",
	"ar": "Argentina",
	"ch": "Switzerland",
	"tr": "Turkey",
	"eg": "Egypt",
	"se": "Sweden",
	"nz": "New Zealand",
}

// BeginnerPool lists the ten countries offered in beginner mode.
var BeginnerPool = []string{"ua", "us", "fr", "de", "it", "jp", "br", "ca", "es", "gb"}

// HardPool lists the ten countries offered in hard mode.
var HardPool = []string{"np", "bt", "kz", "za", "ar", "ch", "tr", "eg", "se", "nz"}

// Name returns the display name for a country code.
func Name(code string) (string, bool) {
	name, ok := names[strings.ToLower(code)]
	return name, ok
}

// Code resolves a display name back to its country code, case-insensitively.
func Code(name string) (string, bool) {
	for code, n := range names {
		if strings.EqualFold(n, name) {
			return code, true
		}
	}
	return "", false
}
