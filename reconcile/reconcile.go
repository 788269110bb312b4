// Package reconcile merges keys extracted from source code into an
// existing locale tree.
//
//   - Keys in both trees keep the existing translation.
//   - Keys only in the source are added with a placeholder value and
//     reported as new.
//   - Keys only in the locale are reported as unused, or removed when
//     DeleteExpired is set.
//   - Leaves still holding their placeholder are reported as needing
//     translation.
package reconcile

import (
	"github.com/minios-linux/langgen/keytree"
)

// Options control a reconciliation pass.
type Options struct {
	// DeleteExpired removes unused keys instead of reporting them.
	DeleteExpired bool
}

// Result is the outcome of reconciling one locale.
type Result struct {
	// Merged is the sorted locale tree to persist.
	Merged *keytree.Tree
	// Report lists unused, new and untranslated keys.
	Report *Report
	// Added are keys found in the source but not in the locale.
	Added []string
	// Removed are keys deleted from the locale (DeleteExpired only).
	Removed []string
}

// Changed reports whether Merged differs in keys from the existing locale
// and must be written back.
func (r *Result) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// Reconcile compares the extracted tree with the existing locale tree.
// Neither argument is modified.
func Reconcile(extracted, existing *keytree.Tree, opts Options) *Result {
	report := NewReport()
	res := &Result{Report: report}

	localeKeys := keytree.Flatten(existing)
	resultKeys := keytree.Flatten(extracted)
	inLocale := toSet(localeKeys)
	inResult := toSet(resultKeys)

	for _, key := range localeKeys {
		if inResult[key] {
			continue
		}
		if opts.DeleteExpired {
			res.Removed = append(res.Removed, key)
		} else {
			report.Add(key, StatusUnused)
		}
	}

	locale := existing
	if len(res.Removed) > 0 {
		locale = keytree.Without(existing, res.Removed)
	}

	for _, key := range resultKeys {
		if !inLocale[key] {
			report.Add(key, StatusNew)
			res.Added = append(res.Added, key)
		}
	}

	res.Merged = keytree.Sorted(keytree.Merge(extracted, locale))

	reportUntranslated(res.Merged, "", report)

	return res
}

// reportUntranslated marks every leaf whose value equals its own key.
func reportUntranslated(t *keytree.Tree, prefix string, report *Report) {
	for _, key := range t.Keys() {
		path := key
		if prefix != "" {
			path = prefix + keytree.Separator + key
		}
		n, _ := t.Get(key)
		switch n := n.(type) {
		case *keytree.Tree:
			reportUntranslated(n, path, report)
		case keytree.Leaf:
			if string(n) == key {
				report.Add(path, StatusNeedsTranslation)
			}
		}
	}
}

func toSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
