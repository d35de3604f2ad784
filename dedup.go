package tfidx

import (
	"fmt"
	"sort"
	"strings"

	"github.com/relevantsearch/tfidx/pkg/logger"
)

// RemoveDuplicates scans engine's documents in ascending id order and
// removes every document whose set of indexed terms (ignoring frequency)
// duplicates an earlier document's. The first-seen id for any term-set is
// retained. Returns the number of documents removed.
func RemoveDuplicates(engine *SearchEngine) int {
	log := logger.WithComponent("deduplicator")

	seen := make(map[string]struct{})
	var toRemove []int

	for _, id := range engine.IterIDs() {
		key := termSetKey(engine.WordFrequencies(id))
		if _, dup := seen[key]; dup {
			toRemove = append(toRemove, id)
			continue
		}
		seen[key] = struct{}{}
	}

	for _, id := range toRemove {
		engine.RemoveDocument(id)
		log.Info(fmt.Sprintf("Found duplicate document id %d", id))
	}
	if engine.metrics != nil && len(toRemove) > 0 {
		engine.metrics.DuplicatesRemovedTotal.Add(float64(len(toRemove)))
	}
	return len(toRemove)
}

// termSetKey canonicalizes a frequency table into a sorted, joined string
// so that two documents with the same vocabulary but different term
// frequencies compare equal.
func termSetKey(freq map[string]float64) string {
	terms := make([]string, 0, len(freq))
	for t := range freq {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return strings.Join(terms, "\x00")
}
