package filler

import (
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/crossfill/xword"
)

type removal struct {
	v    xword.Variable
	word string
}

// Domains is the domain store: the set of words still considered possible
// for each variable. Within one search branch it only ever shrinks; every
// removal is recorded on a trail so a branch can be unwound exactly, rather
// than deep-copying the whole store around each tentative assignment. A
// restore brings back removals made by inference in domains the branch never
// assigned, too.
type Domains struct {
	words map[xword.Variable]map[string]struct{}
	trail []removal
}

// NewDomains populates every variable's domain with the full dictionary.
// Node consistency narrows these to length-matching words afterwards.
func NewDomains(cw *xword.Crossword) *Domains {
	d := &Domains{
		words: make(map[xword.Variable]map[string]struct{}, len(cw.Variables())),
	}
	for _, v := range cw.Variables() {
		set := make(map[string]struct{}, len(cw.Words()))
		for _, w := range cw.Words() {
			set[w] = struct{}{}
		}
		d.words[v] = set
	}
	return d
}

func (d *Domains) Count(v xword.Variable) int {
	return len(d.words[v])
}

func (d *Domains) Contains(v xword.Variable, word string) bool {
	_, ok := d.words[v][word]
	return ok
}

// Words returns a sorted copy of v's domain. Sorting keeps variable and
// value ordering deterministic from run to run.
func (d *Domains) Words(v xword.Variable) []string {
	ws := lo.Keys(d.words[v])
	sort.Strings(ws)
	return ws
}

// Remove drops word from v's domain and records the removal on the trail.
// Removing a word that is already gone is a no-op.
func (d *Domains) Remove(v xword.Variable, word string) {
	if _, ok := d.words[v][word]; !ok {
		return
	}
	delete(d.words[v], word)
	d.trail = append(d.trail, removal{v: v, word: word})
}

// Collapse narrows v's domain to just word, which must be present.
func (d *Domains) Collapse(v xword.Variable, word string) {
	for w := range d.words[v] {
		if w != word {
			d.Remove(v, w)
		}
	}
}

// Mark returns a checkpoint for RestoreTo.
func (d *Domains) Mark() int {
	return len(d.trail)
}

// RestoreTo reinserts, in reverse order, every word removed since the given
// checkpoint, returning the store to the exact state it had at Mark time.
func (d *Domains) RestoreTo(mark int) {
	for i := len(d.trail) - 1; i >= mark; i-- {
		r := d.trail[i]
		d.words[r.v][r.word] = struct{}{}
	}
	d.trail = d.trail[:mark]
}
