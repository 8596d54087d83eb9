package styles

import (
	"hash/fnv"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Index is a hash-based posting map from query tokens to catalogue styles.
// Built once, on first search.
type Index struct {
	post map[uint64][]int // token hash -> indices into styles
	all  []Style
}

var (
	defaultOnce sync.Once
	defaultIdx  *Index
)

func defaultIndex() *Index {
	defaultOnce.Do(func() {
		defaultIdx = NewIndex(Catalog)
	})
	return defaultIdx
}

// NewIndex builds a posting map over names, tags and mood words.
func NewIndex(styles []Style) *Index {
	idx := &Index{
		post: make(map[uint64][]int),
		all:  styles,
	}
	for i, s := range styles {
		for _, tok := range tokenize(s.Name) {
			idx.add(tok, i)
		}
		for _, tag := range s.Tags {
			idx.add(strings.ToLower(tag), i)
		}
		for _, mood := range s.Mood {
			idx.add(strings.ToLower(mood), i)
		}
	}
	return idx
}

func (x *Index) add(token string, i int) {
	key := hashToken(token)
	for _, existing := range x.post[key] {
		if existing == i {
			return
		}
	}
	x.post[key] = append(x.post[key], i)
}

// Search returns catalogue styles matching any query token, ranked by how
// many tokens they match. An empty query returns the whole catalogue.
func (x *Index) Search(query string) []Style {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		out := make([]Style, len(x.all))
		copy(out, x.all)
		return out
	}

	hits := make(map[int]int)
	for _, tok := range tokens {
		for _, i := range x.post[hashToken(tok)] {
			hits[i]++
		}
	}
	if len(hits) == 0 {
		return nil
	}

	indices := make([]int, 0, len(hits))
	for i := range hits {
		indices = append(indices, i)
	}
	sort.Slice(indices, func(a, b int) bool {
		if hits[indices[a]] != hits[indices[b]] {
			return hits[indices[a]] > hits[indices[b]]
		}
		return indices[a] < indices[b]
	})

	out := make([]Style, 0, len(indices))
	for _, i := range indices {
		out = append(out, x.all[i])
	}
	return out
}

// Search queries the built-in catalogue.
func Search(query string) []Style {
	return defaultIndex().Search(query)
}

func hashToken(token string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(token))
	return h.Sum64()
}

// tokenize keeps lowercase letter runs; digits and symbols are delimiters.
func tokenize(s string) []string {
	var out []string
	var cur strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) {
			cur.WriteRune(r)
			continue
		}
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
