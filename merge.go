package localemap

import (
	"fmt"
	"strings"
)

// fetchedBase pairs a base file name with its raw dictionary.
type fetchedBase struct {
	name string
	raw  RawDictionary
}

// mergeBases combines the raw dictionaries of one locale into a single
// per-locale dictionary. Keys are namespaced by their base file name with
// path separators converted to dots, so the key "message_id" from base
// "common" becomes "common.message_id".
//
// A key claimed by two base files is ambiguous authoring and fails the
// merge with ErrDuplicateKey. The input dictionaries are not mutated.
func mergeBases(bases []fetchedBase) (map[string]string, error) {
	size := 0
	for _, b := range bases {
		size += len(b.raw)
	}

	merged := make(map[string]string, size)
	owner := make(map[string]string, size)

	for _, b := range bases {
		prefix := strings.ReplaceAll(b.name, "/", ".")
		for key, tmpl := range b.raw {
			full := prefix + "." + key
			if prev, ok := owner[full]; ok {
				return nil, fmt.Errorf("%w: %q defined by both %q and %q", ErrDuplicateKey, full, prev, b.name)
			}
			owner[full] = b.name
			merged[full] = tmpl
		}
	}

	return merged, nil
}

// layerChain flattens per-locale dictionaries ordered most-specific first
// into one merged view: the first locale to define a key wins, later chain
// members only contribute keys still absent. A nil dictionary (tolerated
// fetch failure) contributes nothing. The inputs are never mutated; the
// result is a fresh map safe to publish to concurrent readers.
func layerChain(dicts []map[string]string) map[string]string {
	size := 0
	for _, d := range dicts {
		size += len(d)
	}

	merged := make(map[string]string, size)
	for _, d := range dicts {
		for key, tmpl := range d {
			if _, ok := merged[key]; !ok {
				merged[key] = tmpl
			}
		}
	}

	return merged
}
