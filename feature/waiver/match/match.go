package match

import "sort"

// File is a candidate document confirmed to belong to exactly one student.
type File struct {
	ID   string
	Name string
	Data []byte
}

// Conflict records a student with two or more candidate documents.
type Conflict struct {
	ID    string
	Names []string
}

// Result is the full three-way classification of a roster against a pool of
// candidate documents. Every identifier lands in exactly one of Matched,
// Missing, or Duplicates; Orphans lists pool files claiming no roster ID.
type Result struct {
	Matched    []File
	Missing    []string
	Duplicates []Conflict
	Orphans    []string
}

// Match classifies every identifier against the candidate pool. A candidate
// belongs to an identifier when its name starts with exactly "{id}_", so ID
// "12" never claims "123_x.pdf". The function is pure: an empty pool simply
// reports every identifier as missing.
//
// The scan is O(identifiers × candidates), which is fine at roster scale.
func Match(candidates map[string][]byte, ids []string) Result {
	res := Result{}
	claimed := make(map[string]bool, len(candidates))

	for _, id := range ids {
		prefix := id + "_"
		var names []string
		for name := range candidates {
			if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
				names = append(names, name)
			}
		}
		sort.Strings(names)

		switch len(names) {
		case 0:
			res.Missing = append(res.Missing, id)
		case 1:
			claimed[names[0]] = true
			res.Matched = append(res.Matched, File{
				ID:   id,
				Name: names[0],
				Data: candidates[names[0]],
			})
		default:
			for _, n := range names {
				claimed[n] = true
			}
			res.Duplicates = append(res.Duplicates, Conflict{ID: id, Names: names})
		}
	}

	for name := range candidates {
		if !claimed[name] {
			res.Orphans = append(res.Orphans, name)
		}
	}
	sort.Strings(res.Orphans)

	return res
}
