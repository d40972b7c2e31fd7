package mini

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kurasora/kurasora/color"
	"github.com/kurasora/kurasora/icon"
	"github.com/kurasora/kurasora/inline"
	"github.com/kurasora/kurasora/key"
	"github.com/kurasora/kurasora/provider"
	"github.com/kurasora/kurasora/query"
	"github.com/kurasora/kurasora/source"
	"github.com/kurasora/kurasora/style"
	"github.com/kurasora/kurasora/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type state int

const (
	sourceSelectState state = iota + 1
	searchState
	resultSelectState
	episodeSelectState
	linksState
	quitState
)

const (
	backOption = ".. back"
	quitOption = ".. quit"
)

// withNavigation appends the back/quit entries to a menu.
func withNavigation(options []string) []string {
	return append(options, backOption, quitOption)
}

// navigate handles a back/quit pick and reports whether it did.
func (m *mini) navigate(options []string, picked int) bool {
	switch options[picked] {
	case backOption:
		m.previousState()
		return true
	case quitOption:
		m.state = quitState
		return true
	}
	return false
}

func (m *mini) handleSourceSelectState() error {
	providers := provider.Builtins()
	if names := viper.GetStringSlice(key.DefaultSources); len(names) > 0 {
		providers = lo.Filter(providers, func(p *provider.Provider, _ int) bool {
			return lo.ContainsBy(names, func(name string) bool {
				found, ok := provider.Get(name)
				return ok && found.ID == p.ID
			})
		})
	}

	var picked *provider.Provider
	switch len(providers) {
	case 0:
		return fmt.Errorf("%w: %v", provider.ErrUnknown, viper.GetStringSlice(key.DefaultSources))
	case 1:
		picked = providers[0]
	default:
		m.title("Select Source")
		options := append(lo.Map(providers, func(p *provider.Provider, _ int) string {
			return p.String()
		}), quitOption)

		idx, err := m.ask.Select(icon.Get(icon.Source)+" Source", options)
		if err != nil {
			return err
		}
		if options[idx] == quitOption {
			m.state = quitState
			return nil
		}
		picked = providers[idx]
	}

	erase := m.progress("Initializing source..")
	src, err := picked.CreateSource()
	erase()
	if err != nil {
		return err
	}

	m.selectedSource = src
	// a single source leaves nothing to go back to
	if len(providers) == 1 {
		m.state = searchState
		return nil
	}
	m.newState(searchState)
	return nil
}

func (m *mini) handleSearchState() error {
	m.title("Search " + m.selectedSource.Name())

	q, err := m.ask.Input(icon.Get(icon.Search)+" Query", query.SuggestMany, func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("query is empty")
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.query = strings.TrimSpace(q)
	if err := query.Remember(m.query, 1); err != nil {
		return err
	}

	erase := m.progress("Searching..")
	results, err := inline.Search(m.ctx, m.selectedSource, m.query)
	erase()
	if err != nil {
		return err
	}

	if len(results) == 0 {
		m.fail(fmt.Sprintf("No results found for %q", m.query))
		return nil
	}

	m.results = results
	m.newState(resultSelectState)
	return nil
}

func (m *mini) handleResultSelectState() error {
	m.title(util.Quantify(len(m.results), "result", "results"))

	options := withNavigation(lo.Map(m.results, func(r *source.SearchResponse, _ int) string {
		return describe(r)
	}))

	idx, err := m.ask.Select("Title", options)
	if err != nil {
		return err
	}
	if m.navigate(options, idx) {
		return nil
	}

	m.selectedResult = m.results[idx]

	erase := m.progress("Loading " + m.selectedResult.Name + "..")
	loaded, err := inline.Load(m.ctx, m.selectedSource, m.selectedResult.URL)
	erase()
	if err != nil {
		return err
	}

	if len(loaded.Episodes) == 0 {
		m.fail("No episodes found")
		return nil
	}

	m.loaded = loaded
	m.newState(episodeSelectState)
	return nil
}

func (m *mini) handleEpisodeSelectState() error {
	episodes := m.loaded.Episodes

	// a movie has nothing to choose from
	if len(episodes) == 1 {
		m.selectedEpisodes = episodes
		m.state = linksState
		return nil
	}

	m.title(fmt.Sprintf("%s, %s", m.loaded.Name, util.Quantify(len(episodes), "episode", "episodes")))
	for i, ep := range episodes {
		_, _ = fmt.Fprintf(m.out, "%s %s\n", style.Faint(fmt.Sprintf("%4d", i+1)), ep)
	}

	input, err := m.ask.Input(icon.Get(icon.Episode)+" Episodes (N, start end, all or b to go back)", nil, func(s string) error {
		if s == "b" {
			return nil
		}
		_, _, err := parseEpisodeRange(s, len(episodes))
		return err
	})
	if err != nil {
		return err
	}

	if input == "b" {
		m.previousState()
		return nil
	}

	from, to, _ := parseEpisodeRange(input, len(episodes))
	m.selectedEpisodes = episodes[from:to]
	m.state = linksState
	return nil
}

func (m *mini) handleLinksState() error {
	for _, ep := range m.selectedEpisodes {
		erase := m.progress("Resolving " + ep.String() + "..")
		links, err := source.CollectLinks(m.ctx, m.selectedSource, ep.Data)
		erase()
		if err != nil {
			m.fail(fmt.Sprintf("%s: %s", ep, err))
			continue
		}

		m.title(ep.String())
		if len(links.Links) == 0 {
			m.fail("No links found")
			continue
		}

		for _, link := range links.Links {
			_, _ = fmt.Fprintf(m.out, "%s %s %s\n  %s\n",
				icon.Get(icon.Link),
				style.Bold(link.Name),
				style.Fg(color.Cyan)(link.Quality.String()),
				link.URL,
			)
		}
		for _, sub := range links.Subtitles {
			_, _ = fmt.Fprintf(m.out, "%s %s %s\n", icon.Get(icon.Subtitle), style.Faint(sub.Lang), sub.URL)
		}
	}

	// back to the episode list, or the result list for movies
	if len(m.loaded.Episodes) == 1 {
		m.previousState()
	} else {
		m.state = episodeSelectState
	}
	return nil
}

func describe(r *source.SearchResponse) string {
	var b strings.Builder
	b.WriteString(r.Name)
	if r.Year > 0 {
		b.WriteString(fmt.Sprintf(" (%d)", r.Year))
	}
	if r.Type != "" {
		b.WriteString(" [" + string(r.Type) + "]")
	}
	return b.String()
}

// parseEpisodeRange turns "N", "start end", "start-end" or "all" (1-based,
// inclusive) into slice bounds over count episodes.
func parseEpisodeRange(input string, count int) (from, to int, err error) {
	input = strings.TrimSpace(input)
	if input == "all" {
		return 0, count, nil
	}

	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ' ' || r == '-'
	})
	if len(fields) == 0 || len(fields) > 2 {
		return 0, 0, fmt.Errorf("expected N or start end")
	}

	bounds := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid episode number: %s", f)
		}
		if n < 1 || n > count {
			return 0, 0, fmt.Errorf("episode %d out of range 1..%d", n, count)
		}
		bounds[i] = n
	}

	if len(bounds) == 1 {
		return bounds[0] - 1, bounds[0], nil
	}
	if bounds[0] > bounds[1] {
		return 0, 0, fmt.Errorf("start %d is after end %d", bounds[0], bounds[1])
	}
	return bounds[0] - 1, bounds[1], nil
}
