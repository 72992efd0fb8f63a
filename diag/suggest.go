package diag

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/aledsdavies/shastina/errkind"
)

// SuggestKind returns the known ErrorKind names that fuzzy-match name
// (its characters appear in order, ignoring case), ranked by closeness,
// best match first; names that do not match are left out. Used by the CLI's explain command when a user
// mistypes or half-remembers a kind (e.g. "longtok" -> "LongToken").
func SuggestKind(name string) []string {
	all := errkind.All()
	candidates := make([]string, len(all))
	for i, k := range all {
		candidates[i] = k.String()
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	sort.Sort(ranks)

	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}
