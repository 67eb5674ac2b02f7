package hares

// AgeJuvenile is the age-class code retained by the juvenile filter.
const AgeJuvenile = "j"

// Alpha is the fixed significance level for the two-sample test.
// It is a compile-time constant, not user-configurable.
const Alpha = 0.05

// SiteLabels maps trapping-grid codes to display names. The tables are
// fixed values handed explicitly to the transform step so the transform
// stays pure and testable with substitute tables.
var SiteLabels = map[string]string{
	"bonrip": "Bonanza Riparian",
	"bonmat": "Bonanza Mature",
	"bonbs":  "Bonanza Black Spruce",
}

// SexLabels maps sex codes to display labels. Codes outside the table
// (including missing values) recode to SexUnknown.
var SexLabels = map[string]Sex{
	"f": SexFemale,
	"m": SexMale,
}
