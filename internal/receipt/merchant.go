package receipt

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Patterns for cleaning merchant names as printed on receipts
	merchantPrefix = regexp.MustCompile(`(?i)^(pos |eftpos |visa |mastercard |amex |sq \*|paypal \*)`)
	merchantSuffix = regexp.MustCompile(`(?i)\s+(pty|ltd|inc|corp|llc|au|us|uk|nz|sg)\.?$`)
	longNumbers    = regexp.MustCompile(`\d{6,}`)
	specialChars   = regexp.MustCompile(`[*#]+`)
)

// DisplayMerchantName cleans a raw merchant string for presentation: strips
// card-terminal prefixes, company suffixes, long digit runs and symbol noise,
// then title-cases the remainder. Display-only; the stored merchant field is
// never rewritten.
func DisplayMerchantName(raw string) string {
	cleaned := merchantPrefix.ReplaceAllString(raw, "")
	cleaned = merchantSuffix.ReplaceAllString(cleaned, "")
	cleaned = longNumbers.ReplaceAllString(cleaned, "")
	cleaned = specialChars.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	caser := cases.Title(language.English)
	words := strings.Fields(cleaned)
	for i, word := range words {
		if len(word) > 2 {
			words[i] = caser.String(strings.ToLower(word))
		} else {
			words[i] = strings.ToUpper(word)
		}
	}

	result := strings.Join(words, " ")
	if len(result) > 50 {
		result = result[:50]
	}
	return result
}

// merchantKeywords maps merchant-name keywords to a likely category. Used for
// advisory suggestions only; item categories come from the extraction service.
var merchantKeywords = map[string]Category{
	"restaurant": CategoryFood,
	"cafe":       CategoryFood,
	"coffee":     CategoryFood,
	"grocer":     CategoryFood,
	"market":     CategoryFood,
	"bakery":     CategoryFood,
	"pizza":      CategoryFood,

	"fuel":    CategoryTransport,
	"petrol":  CategoryTransport,
	"parking": CategoryTransport,
	"toll":    CategoryTransport,
	"taxi":    CategoryTransport,
	"train":   CategoryTransport,
	"bus":     CategoryTransport,

	"cinema":  CategoryEntertainment,
	"movie":   CategoryEntertainment,
	"theatre": CategoryEntertainment,
	"concert": CategoryEntertainment,
	"gaming":  CategoryEntertainment,

	"store":       CategoryShopping,
	"shop":        CategoryShopping,
	"electronics": CategoryShopping,
	"clothing":    CategoryShopping,

	"pharmacy": CategoryHealthcare,
	"chemist":  CategoryHealthcare,
	"doctor":   CategoryHealthcare,
	"medical":  CategoryHealthcare,
	"dental":   CategoryHealthcare,
	"hospital": CategoryHealthcare,

	"electric":  CategoryUtilities,
	"internet":  CategoryUtilities,
	"phone":     CategoryUtilities,
	"mobile":    CategoryUtilities,
	"broadband": CategoryUtilities,

	"school":     CategoryEducation,
	"university": CategoryEducation,
	"college":    CategoryEducation,
	"tuition":    CategoryEducation,
	"course":     CategoryEducation,
}

// GuessMerchantCategory suggests a category from merchant-name keywords,
// falling back to CategoryOther.
func GuessMerchantCategory(merchant string) Category {
	lower := strings.ToLower(merchant)
	for keyword, category := range merchantKeywords {
		if strings.Contains(lower, keyword) {
			return category
		}
	}
	return CategoryOther
}
