package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var (
	propertyTypeRE = regexp.MustCompile(`(?i)\b([1-9](?:\.[05])?\s?BHK|studio|villa|bungalow)\b`)

	areaRE      = regexp.MustCompile(`(?i)\b([\d,]+)\s?(sq\.? ?ft|sft|sqft|sq ft|acres?|guntas?)\b`)
	plotSizeRE  = regexp.MustCompile(`\b\d{1,3}\s?x\s?\d{1,3}\b`)
	phoneRE     = regexp.MustCompile(`\b\d{10}\b`)
	intlPhoneRE = regexp.MustCompile(`\+91[-\s]?(\d{10})\b`)

	furnishingRE = regexp.MustCompile(`(?i)\b(fully|semi|un)?\s*furnished\b`)
	floorRE      = regexp.MustCompile(`(?i)\b(?:ground|lower|middle|upper|higher|\d{1,2})(?:st|nd|rd|th)?\s+floor\b`)
	facingRE     = regexp.MustCompile(`(?i)\b(north|south|east|west)\s*facing\b`)
)

// priceFamily is one price pattern and the submatch holding the number.
type priceFamily struct {
	re    *regexp.Regexp
	group int
}

// priceFamilies are scanned in order; the first qualifying value wins.
var priceFamilies = []priceFamily{
	{regexp.MustCompile(`(?i)(rent|price|rs|₹|rental|asking|lakhs?|cr|crore)[^\d]{0,10}([\d,\.]+)`), 2},
	{regexp.MustCompile(`(?i)([\d,\.]+)\s*(lakhs?|cr|crore|l|k)`), 1},
	{regexp.MustCompile(`₹\s?([\d,\.]+)`), 1},
}

// MinPrice is the smallest scaled amount accepted as a rent or price.
const MinPrice = 10000

// maxPrice bounds scaled amounts to what fits in an int64.
const maxPrice = 1 << 63

var nonNumericRE = regexp.MustCompile(`[^\d.]`)

// PropertyType returns the first BHK count or property kind, uppercased
// with spaces removed ("3 bhk" becomes "3BHK").
func PropertyType(text string) *string {
	m := propertyTypeRE.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return ptr(strings.ReplaceAll(strings.ToUpper(m[1]), " ", ""))
}

type dimension struct {
	value int64
	text  string
}

// Dimensions returns the largest area found in text. Area values carry a
// unit and are rendered with thousands separators; bare plot sizes such as
// "30x40" score zero and only win when no area is present. Areas too large
// for an int64 are skipped.
func Dimensions(text string) *string {
	var found []dimension

	for _, m := range areaRE.FindAllStringSubmatch(text, -1) {
		val, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
		if err != nil {
			continue
		}
		unit := strings.NewReplacer(".", "", " ", "").Replace(m[2])
		found = append(found, dimension{value: val, text: humanize.Comma(val) + " " + unit})
	}
	for _, m := range plotSizeRE.FindAllString(text, -1) {
		found = append(found, dimension{text: m})
	}

	if len(found) == 0 {
		return nil
	}
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].value != found[j].value {
			return found[i].value > found[j].value
		}
		return found[i].text > found[j].text
	})
	return ptr(found[0].text)
}

// RentOrPrice returns the first amount, after magnitude scaling, that is at
// least MinPrice. Candidates whose digits do not parse or overflow an int64
// are skipped.
func RentOrPrice(text string) *int64 {
	for _, fam := range priceFamilies {
		for _, m := range fam.re.FindAllStringSubmatch(text, -1) {
			num := nonNumericRE.ReplaceAllString(m[fam.group], "")
			if num == "" {
				continue
			}
			val, err := strconv.ParseFloat(num, 64)
			if err != nil {
				continue
			}
			val *= scale(strings.ToLower(m[0]))
			if val >= maxPrice {
				continue
			}
			if val >= MinPrice {
				v := int64(val)
				return &v
			}
		}
	}
	return nil
}

// scale returns the multiplier implied by the matched span.
func scale(span string) float64 {
	switch {
	case strings.Contains(span, "cr"):
		return 1e7
	case strings.Contains(span, "lakh"), strings.HasSuffix(span, "l"):
		return 1e5
	case strings.Contains(span, "k"):
		return 1e3
	default:
		return 1
	}
}

// Phone returns the first standalone 10-digit number, falling back to the
// digits after a +91 prefix.
func Phone(text string) *string {
	if m := phoneRE.FindString(text); m != "" {
		return ptr(m)
	}
	if m := intlPhoneRE.FindStringSubmatch(text); m != nil {
		return ptr(m[1])
	}
	return nil
}

// Furnishing returns the furnishing state, e.g. "semi furnished".
func Furnishing(text string) *string {
	return firstMatch(furnishingRE, text)
}

// Floor returns the floor descriptor, e.g. "2nd floor".
func Floor(text string) *string {
	return firstMatch(floorRE, text)
}

// Facing returns the facing direction, e.g. "east facing".
func Facing(text string) *string {
	return firstMatch(facingRE, text)
}

func firstMatch(re *regexp.Regexp, text string) *string {
	m := re.FindString(text)
	if m == "" {
		return nil
	}
	return ptr(strings.ToLower(strings.TrimSpace(m)))
}

func ptr(s string) *string {
	return &s
}
