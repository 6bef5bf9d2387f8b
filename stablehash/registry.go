package stablehash

import (
	"bufio"
	_ "embed"
	"strconv"
	"strings"
	"sync"
)

// generatedRange is the number of indexed candidates generated per pattern.
const generatedRange = 200

//go:embed known_strings.txt
var knownStrings string

// Registry maps stable hashes back to the names they were computed from.
// A Registry is immutable once built and safe for concurrent use.
type Registry struct {
	names map[int32]string
}

// NewRegistry hashes every word, its lowercase form and the generated
// indexed candidates (item0, slot0, room0, room0_rot, room0_pos, root0 and so
// on up to 199). When two candidates share a hash the later one wins.
func NewRegistry(words []string) *Registry {
	r := &Registry{names: make(map[int32]string, 2*len(words)+6*generatedRange)}
	for _, w := range words {
		r.add(w)
		if lower := strings.ToLower(w); lower != w {
			r.add(lower)
		}
	}
	for i := range generatedRange {
		n := strconv.Itoa(i)
		r.add("item" + n)
		r.add("slot" + n)
		r.add("room" + n)
		r.add("room" + n + "_rot")
		r.add("room" + n + "_pos")
		r.add("root" + n)
	}
	return r
}

func (r *Registry) add(name string) {
	r.names[Hash(name)] = name
}

// Lookup returns the name whose hash is h. A miss is normal: most hashes in
// a save have no known name.
func (r *Registry) Lookup(h int32) (string, bool) {
	if r == nil {
		return "", false
	}
	name, ok := r.names[h]
	return name, ok
}

// Len returns the number of distinct hashes in the registry.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the registry built from the embedded word list. It is built
// on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(ParseWords(knownStrings))
	})
	return defaultRegistry
}

// ParseWords splits a word list into entries, one per line, skipping blank
// lines and # comments.
func ParseWords(text string) []string {
	var words []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words
}
