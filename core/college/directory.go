package college

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/gradebook/core"
)

const (
	maxSuggestions     = 5
	suggestionMinRatio = .6
)

// Directory is a static, searchable list of college names.
type Directory struct {
	names []string
	lower []string
}

func NewDirectory(names []string) *Directory {
	d := &Directory{
		names: make([]string, 0, len(names)),
		lower: make([]string, 0, len(names)),
	}
	for _, name := range names {
		if name = core.CleanString(name); name != "" {
			d.names = append(d.names, name)
			d.lower = append(d.lower, strings.ToLower(name))
		}
	}
	return d
}

// LoadDirectory reads one college name per line; blank lines and lines starting with '#' are skipped.
func LoadDirectory(r io.Reader) (*Directory, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewDirectory(names), nil
}

func (d *Directory) Len() int { return len(d.names) }

type Result struct {
	Data        []string        `json:"data"`
	Pagination  core.Pagination `json:"pagination"`
	Suggestions []string        `json:"suggestions,omitempty"`
}

// Search does a case-insensitive substring match on the college names, in list order.
// When nothing matches, close names are suggested instead.
func (d *Directory) Search(query string, pr core.PageRequest) Result {
	pr.Clamp()
	query = core.CleanString(query, true /* lower */)

	matches := d.names
	if query != "" {
		matches = make([]string, 0)
		for i, name := range d.lower {
			if strings.Contains(name, query) {
				matches = append(matches, d.names[i])
			}
		}
	}

	pagination := core.NewPagination(pr, len(matches))
	start, end := pagination.Bounds()
	res := Result{
		Data:       append(make([]string, 0, end-start), matches[start:end]...),
		Pagination: pagination,
	}
	if len(matches) == 0 && query != "" {
		res.Suggestions = d.suggest(query)
	}
	return res
}

type suggestion struct {
	name  string
	ratio float64
}

// suggest returns the names most similar to `query`, best first.
// A name is compared as a whole and word by word, so "havard" suggests "Harvard University".
func (d *Directory) suggest(query string) []string {
	matcher := difflib.NewMatcher(nil, strings.Split(query, ""))
	ratio := func(s string) float64 {
		matcher.SetSeq1(strings.Split(s, ""))
		if matcher.RealQuickRatio() < suggestionMinRatio || matcher.QuickRatio() < suggestionMinRatio {
			return 0
		}
		return matcher.Ratio()
	}

	candidates := make([]suggestion, 0, maxSuggestions)
	for i, name := range d.lower {
		best := ratio(name)
		for _, word := range strings.Fields(name) {
			if r := ratio(word); r > best {
				best = r
			}
		}
		if best >= suggestionMinRatio {
			candidates = append(candidates, suggestion{name: d.names[i], ratio: best})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].ratio > candidates[j].ratio })
	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.name)
	}
	return names
}
