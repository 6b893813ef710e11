package stbjson

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// compareDouble reports whether a and b are equal within an epsilon
// scaled to their magnitude, matching the source library's
// compare_double (epsilon = DBL_EPSILON * max(|a|, |b|), or an exact
// test when both are effectively zero).
func compareDouble(a, b float64) bool {
	if math.Abs(a-b) <= math.SmallestNonzeroFloat64 {
		return true
	}
	d := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= d*2.2204460492503131e-16
}

// formatNumber renders f the way the source library's print_number
// does: as the bare saturated int32 projection numInt when f equals
// numInt exactly (matching `d == (double)item->valueint`), otherwise as
// the shortest of %.15g / %.17g that round-trips back to f exactly (by
// epsilon comparison). A value whose magnitude exceeds the int32 range
// saturates numInt away from f, so it correctly falls through to the
// %g path instead of printing a truncated integer.
func formatNumber(f float64, numInt int32) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if float64(numInt) == f {
		return strconv.FormatInt(int64(numInt), 10)
	}
	s := strconv.FormatFloat(f, 'g', 15, 64)
	if v, err := strconv.ParseFloat(s, 64); err == nil && compareDouble(v, f) {
		return s
	}
	return strconv.FormatFloat(f, 'g', 17, 64)
}

// parseNumberLiteral parses the raw digits of a JSON number token
// (as scanned by lexNumber, which already accepted a superset including
// a leading '+') into a float64. A leading '+' is rejected unless
// opts.AllowLeadingPlus is set; the rest is handed to strconv.ParseFloat,
// so other literals RFC 8259 forbids, such as leading zeros before
// further digits, are accepted.
func parseNumberLiteral(raw string, opts ParseOptions) (float64, error) {
	s := raw
	if len(s) > 0 && s[0] == '+' {
		if !opts.AllowLeadingPlus {
			return 0, errors.Wrap(ErrSyntax, "leading '+' not allowed in number")
		}
		s = s[1:]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(ErrSyntax, "invalid number literal "+strconv.Quote(raw))
	}
	return f, nil
}
