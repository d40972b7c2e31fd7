// Package mini is the interactive prompt mode: pick a source, search, pick a
// title, pick episodes and print their stream links.
package mini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kurasora/kurasora/color"
	"github.com/kurasora/kurasora/icon"
	"github.com/kurasora/kurasora/source"
	"github.com/kurasora/kurasora/style"
	"github.com/kurasora/kurasora/util"
)

type Options struct {
	Out io.Writer

	prompter prompter
}

type mini struct {
	ctx context.Context
	out io.Writer
	ask prompter

	state         state
	statesHistory util.Stack[state]

	selectedSource source.Source

	query            string
	results          []*source.SearchResponse
	selectedResult   *source.SearchResponse
	loaded           *source.LoadResponse
	selectedEpisodes []*source.Episode
}

func newMini(ctx context.Context, options *Options) *mini {
	m := &mini{
		ctx:   ctx,
		out:   options.Out,
		ask:   options.prompter,
		state: sourceSelectState,
	}

	if m.out == nil {
		m.out = os.Stdout
	}
	if m.ask == nil {
		m.ask = surveyPrompter{}
	}

	return m
}

func (m *mini) previousState() {
	if s, ok := m.statesHistory.Pop(); ok {
		m.state = s
		return
	}
	m.state = quitState
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}
	m.statesHistory.Push(m.state)
	m.state = s
}

// Run loops until the user quits or a step fails.
func Run(ctx context.Context, options *Options) error {
	m := newMini(ctx, options)

	for m.state != quitState {
		err := m.handleState()
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (m *mini) handleState() error {
	switch m.state {
	case sourceSelectState:
		return m.handleSourceSelectState()
	case searchState:
		return m.handleSearchState()
	case resultSelectState:
		return m.handleResultSelectState()
	case episodeSelectState:
		return m.handleEpisodeSelectState()
	case linksState:
		return m.handleLinksState()
	}
	return nil
}

func (m *mini) title(s string) {
	_, _ = fmt.Fprintln(m.out, style.Fg(color.Purple)(style.Bold(s)))
}

func (m *mini) fail(s string) {
	_, _ = fmt.Fprintln(m.out, style.Fg(color.Red)(icon.Get(icon.Fail)+" "+s))
}

func (m *mini) progress(s string) (erase func()) {
	if m.out != os.Stdout {
		return func() {}
	}
	return util.PrintErasable(style.Fg(color.Yellow)(icon.Get(icon.Progress) + " " + s))
}
