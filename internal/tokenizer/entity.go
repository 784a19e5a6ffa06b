package tokenizer

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/example/vntok/internal/lexicon"
)

// entity is one compiled row of the entity table. regexp2 is used instead of
// regexp because the table relies on Unicode \w, \d and \b, and because its
// match offsets are reported in code points.
type entity struct {
	kind   string
	search *regexp2.Regexp
	whole  *regexp2.Regexp
}

func compileEntities(defs []lexicon.EntityPattern, timeout time.Duration) ([]entity, error) {
	out := make([]entity, 0, len(defs))
	for _, d := range defs {
		search, err := regexp2.Compile(d.Pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrInvalidPattern, d.Kind, err)
		}
		whole, err := regexp2.Compile(`\A(?:`+d.Pattern+`)\z`, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrInvalidPattern, d.Kind, err)
		}
		if timeout > 0 {
			search.MatchTimeout = timeout
			whole.MatchTimeout = timeout
		}
		out = append(out, entity{kind: d.Kind, search: search, whole: whole})
	}
	return out, nil
}

// find reports the code point span of the leftmost match in s. A match
// error, such as a timeout, is reported as no match.
func (e *entity) find(s string) (start, end int, ok bool) {
	m, err := e.search.FindStringMatch(s)
	if err != nil || m == nil {
		return 0, 0, false
	}
	return m.Index, m.Index + m.Length, true
}

func (e *entity) matches(s string) bool {
	ok, err := e.search.MatchString(s)
	return err == nil && ok
}

func (e *entity) matchesWhole(s string) bool {
	ok, err := e.whole.MatchString(s)
	return err == nil && ok
}
