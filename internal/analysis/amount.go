package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hmartins/capitolpulse/internal/domain/models"
)

var amountDigits = regexp.MustCompile(`\d+`)

// ParseAmountRange parses a declared disclosure amount such as
// "$15,001 - $50,000" or "$1,000,000 +" into its numeric bounds.
//
// Rules:
//   - currency symbols and thousands separators are stripped
//   - all embedded integers are extracted in order
//   - one integer  -> {low: n, high: n}
//   - two or more  -> {low: first, high: second}
//   - none         -> nil (unparseable, not an error)
func ParseAmountRange(s string) *models.AmountRange {
	cleaned := strings.ReplaceAll(s, ",", "")
	nums := amountDigits.FindAllString(cleaned, -1)
	if len(nums) == 0 {
		return nil
	}

	low, err := strconv.ParseFloat(nums[0], 64)
	if err != nil {
		return nil
	}
	high := low
	if len(nums) > 1 {
		h, err := strconv.ParseFloat(nums[1], 64)
		if err != nil {
			return nil
		}
		high = h
	}

	return &models.AmountRange{Low: low, High: high}
}
