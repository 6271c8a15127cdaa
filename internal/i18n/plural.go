package i18n

// PluralForm returns the suffix of the plural key for count: "0" for one,
// "1" for counts ending in 2-4 outside the teens, "2" otherwise. The rule
// follows Polish grammar and degrades to singular/plural for English.
func PluralForm(count int) string {
	if count == 1 {
		return "0"
	}
	mod10 := count % 10
	mod100 := count % 100
	if mod10 > 1 && mod10 < 5 && !(mod100 >= 10 && mod100 <= 21) {
		return "1"
	}
	return "2"
}
