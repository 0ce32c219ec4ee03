package cron

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// specials is the full set of cron special characters. Each field kind allows
// only a subset; anything outside that subset is rejected at construction.
const specials = "*/%,-LW#?"

// bounds fixes the valid integer range and allowed special characters of a
// field kind. It is immutable and shared by every Field of that kind.
type bounds struct {
	name     string
	min, max int
	allowed  string
}

var (
	secondBounds     = bounds{"second", 0, 59, "*/,-"}
	minuteBounds     = bounds{"minute", 0, 59, "*/,-"}
	hourBounds       = bounds{"hour", 0, 23, "*/,-"}
	dayOfMonthBounds = bounds{"day", 1, 31, "*/,-?LW"}
	monthBounds      = bounds{"month", 1, 12, "*/,-"}
	dayOfWeekBounds  = bounds{"weekday", 0, 6, "*/-?L#"}
	yearBounds       = bounds{"year", 1970, 2099, "*/,-"}
)

// phrases maps lowercased English weekday and month names, full and
// three-letter, to their integer values. Weekdays start at Monday=0, months at
// January=1.
var phrases = map[string]int{
	"monday": 0, "tuesday": 1, "wednesday": 2, "thursday": 3,
	"friday": 4, "saturday": 5, "sunday": 6,
	"mon": 0, "tue": 1, "wed": 2, "thu": 3, "fri": 4, "sat": 5, "sun": 6,
	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5,
	"june": 6, "july": 7, "august": 8, "september": 9, "october": 10,
	"november": 11, "december": 12,
	"jan": 1, "feb": 2, "mar": 3, "apr": 4,
	"jun": 6, "jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

var phraseRegexp = compilePhraseRegexp()

// compilePhraseRegexp builds a case-insensitive alternation over all known
// phrases, longest first so "monday" wins over "mon".
func compilePhraseRegexp() *regexp.Regexp {
	keys := make([]string, 0, len(phrases))
	for k := range phrases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return regexp.MustCompile("(?i)(?:" + strings.Join(keys, "|") + ")")
}

// subPhrases replaces every English month/weekday phrase in value with its
// integer equivalent.
func subPhrases(value string) string {
	return phraseRegexp.ReplaceAllStringFunc(value, func(m string) string {
		return strconv.Itoa(phrases[strings.ToLower(m)])
	})
}

type fieldRep int

const (
	repExact fieldRep = iota
	repPattern
	repSet
)

// Field matches a single cron field against candidate integers. It holds one
// of three representations, fixed at construction: an exact integer, a pattern
// string, or an explicit set.
type Field struct {
	bounds bounds
	rep    fieldRep

	exact   int
	pattern string
	set     []int
}

// Second builds a seconds field (0-59).
func Second(value interface{}) (Field, error) { return newField(value, secondBounds) }

// Minute builds a minutes field (0-59).
func Minute(value interface{}) (Field, error) { return newField(value, minuteBounds) }

// Hour builds an hours field (0-23).
func Hour(value interface{}) (Field, error) { return newField(value, hourBounds) }

// DayOfMonth builds a day-of-month field (1-31).
func DayOfMonth(value interface{}) (Field, error) { return newField(value, dayOfMonthBounds) }

// Month builds a month field (1-12). English month names and abbreviations are
// accepted in pattern values.
func Month(value interface{}) (Field, error) { return newField(value, monthBounds) }

// DayOfWeek builds a day-of-week field (0-6, Monday=0). English weekday names
// and abbreviations are accepted in pattern values.
func DayOfWeek(value interface{}) (Field, error) { return newField(value, dayOfWeekBounds) }

// Year builds a year field (1970-2099).
func Year(value interface{}) (Field, error) { return newField(value, yearBounds) }

// newField validates value against b and fixes its representation. Accepted
// value types are int (exact), string (pattern) and []int (set).
func newField(value interface{}, b bounds) (Field, error) {
	f := Field{bounds: b}

	switch v := value.(type) {
	case int:
		if v < b.min || v > b.max {
			return Field{}, errors.Errorf("cron: %s value %d must be between %d and %d", b.name, v, b.min, b.max)
		}
		f.rep = repExact
		f.exact = v
	case string:
		pattern := subPhrases(v)
		if invalid := invalidSpecials(pattern, b.allowed); invalid != "" {
			return Field{}, errors.Errorf("cron: %s field %q contains invalid special characters: %s", b.name, v, invalid)
		}
		f.rep = repPattern
		f.pattern = pattern
	case []int:
		f.rep = repSet
		f.set = sortedUnique(v)
	default:
		return Field{}, errors.Errorf("cron: unsupported %s field value of type %T", b.name, value)
	}
	return f, nil
}

// invalidSpecials returns the special characters present in pattern but absent
// from allowed, comma-joined, or "" if the pattern is clean.
func invalidSpecials(pattern, allowed string) string {
	var invalid []string
	for _, r := range specials {
		if strings.ContainsRune(allowed, r) {
			continue
		}
		if strings.ContainsRune(pattern, r) {
			invalid = append(invalid, string(r))
		}
	}
	return strings.Join(invalid, ",")
}

func sortedUnique(values []int) []int {
	out := append([]int(nil), values...)
	sort.Ints(out)
	dedup := out[:0]
	for i, v := range out {
		if i == 0 || v != out[i-1] {
			dedup = append(dedup, v)
		}
	}
	return dedup
}

// Matches reports whether candidate falls within the times denoted by this
// field.
func (f Field) Matches(candidate int) bool {
	switch f.rep {
	case repExact:
		return f.exact == candidate
	case repSet:
		i := sort.SearchInts(f.set, candidate)
		return i < len(f.set) && f.set[i] == candidate
	}

	// Comma-separated clauses combine with OR.
	for _, clause := range strings.Split(f.pattern, ",") {
		if f.clauseMatches(clause, candidate) {
			return true
		}
	}
	return false
}

// clauseMatches evaluates one comma clause: a bare wildcard, a single integer,
// a range "a-b", a stepped wildcard "*/n" or a stepped range "a-b/n".
func (f Field) clauseMatches(clause string, candidate int) bool {
	parts := strings.FieldsFunc(clause, func(r rune) bool {
		return r == '-' || r == '/'
	})
	if len(parts) == 0 {
		return false
	}

	if len(parts) == 1 {
		if parts[0] == "*" {
			return f.bounds.min <= candidate && candidate <= f.bounds.max
		}
		n, err := strconv.Atoi(parts[0])
		return err == nil && n == candidate
	}

	// "*/n" expands to the full range with that step.
	if parts[0] == "*" {
		parts = []string{strconv.Itoa(f.bounds.min), strconv.Itoa(f.bounds.max), parts[1]}
	}

	a, errA := strconv.Atoi(parts[0])
	b, errB := strconv.Atoi(parts[1])
	if errA != nil || errB != nil {
		return false
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if candidate < lo || candidate > hi {
		return false
	}
	if len(parts) < 3 {
		return true
	}
	step, err := strconv.Atoi(parts[2])
	if err != nil || step == 0 {
		return false
	}
	// The step test adds the range's lower bound before taking the modulus.
	// This diverges from conventional cron ((candidate-lo)%step) and is kept
	// as-is: changing it would alter which timestamps existing schedules match.
	return (candidate+lo)%step == 0
}

// String renders the field value. Sets of five or more elements are
// abbreviated as [first...last].
func (f Field) String() string {
	switch f.rep {
	case repExact:
		return strconv.Itoa(f.exact)
	case repSet:
		if len(f.set) >= 5 {
			return fmt.Sprintf("[%d...%d]", f.set[0], f.set[len(f.set)-1])
		}
		return fmt.Sprintf("%v", f.set)
	}
	return f.pattern
}
