package match

import (
	"regexp"
	"sort"
)

// FilenamePattern is the strict waiver filename convention:
// {EYF ID}_{Client name}_KCS Records Consent_{previous file name}_{date}.pdf
var FilenamePattern = regexp.MustCompile(`^[0-9]+_[A-Za-z ]+_KCS Records Consent_.*\.pdf$`)

// ValidateFilenames splits names into those matching the pattern and those
// that do not. Batch tooling refuses to run when any name is invalid; the
// interactive flow tolerates arbitrary names and just prefix-matches.
func ValidateFilenames(names []string, pattern *regexp.Regexp) (valid, invalid []string) {
	if pattern == nil {
		pattern = FilenamePattern
	}
	for _, name := range names {
		if pattern.MatchString(name) {
			valid = append(valid, name)
		} else {
			invalid = append(invalid, name)
		}
	}
	sort.Strings(invalid)
	return valid, invalid
}
