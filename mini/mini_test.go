package mini

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/kurasora/kurasora/filesystem"
	"github.com/kurasora/kurasora/key"
	"github.com/kurasora/kurasora/source"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

type answer struct {
	selected int
	input    string
}

// scripted replays answers and quits once they run out.
type scripted struct {
	answers  []answer
	messages []string
}

func (s *scripted) next(message string) (answer, error) {
	s.messages = append(s.messages, message)
	if len(s.answers) == 0 {
		return answer{}, errQuit
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func (s *scripted) Select(message string, _ []string) (int, error) {
	a, err := s.next(message)
	return a.selected, err
}

func (s *scripted) Input(message string, _ func(string) []string, validate func(string) error) (string, error) {
	a, err := s.next(message)
	if err != nil {
		return "", err
	}
	if validate != nil {
		if err := validate(a.input); err != nil {
			return "", err
		}
	}
	return a.input, nil
}

type stubSource struct {
	episodes int
	resolved []string
}

func (s *stubSource) Name() string                       { return "Stub" }
func (s *stubSource) ID() string                         { return "stub" }
func (s *stubSource) MainURL() string                    { return "https://stub.test" }
func (s *stubSource) Lang() string                       { return "en" }
func (s *stubSource) SupportedTypes() []source.TvType    { return []source.TvType{source.Anime} }
func (s *stubSource) MainPage() []source.MainPageRequest { return nil }
func (s *stubSource) MainPageSection(context.Context, source.MainPageRequest, int) (*source.HomePageList, error) {
	return nil, nil
}

func (s *stubSource) Search(_ context.Context, q string) ([]*source.SearchResponse, error) {
	return []*source.SearchResponse{
		{Name: q + " one", URL: "https://stub.test/one", Year: 2021, Type: source.Anime},
		{Name: q + " two", URL: "https://stub.test/two"},
	}, nil
}

func (s *stubSource) Load(_ context.Context, url string) (*source.LoadResponse, error) {
	response := &source.LoadResponse{Name: url, URL: url}
	for i := 1; i <= s.episodes; i++ {
		response.Episodes = append(response.Episodes, &source.Episode{
			Data: fmt.Sprintf("%s/%d", url, i),
			Name: fmt.Sprintf("Episode %d", i),
		})
	}
	return response, nil
}

func (s *stubSource) LoadLinks(_ context.Context, data string, subtitles source.SubtitleFunc, links source.LinkFunc) (bool, error) {
	s.resolved = append(s.resolved, data)
	subtitles(source.SubtitleFile{Lang: "English", URL: data + ".vtt"})
	links(source.ExtractorLink{Source: "stub", Name: "Stub", URL: data + ".m3u8", Quality: source.P1080})
	return true, nil
}

func TestParseEpisodeRange(t *testing.T) {
	Convey("parseEpisodeRange", t, func() {
		from, to, err := parseEpisodeRange("3", 12)
		So(err, ShouldBeNil)
		So([]int{from, to}, ShouldResemble, []int{2, 3})

		from, to, err = parseEpisodeRange("2 5", 12)
		So(err, ShouldBeNil)
		So([]int{from, to}, ShouldResemble, []int{1, 5})

		from, to, err = parseEpisodeRange("2-5", 12)
		So(err, ShouldBeNil)
		So([]int{from, to}, ShouldResemble, []int{1, 5})

		from, to, err = parseEpisodeRange("all", 12)
		So(err, ShouldBeNil)
		So([]int{from, to}, ShouldResemble, []int{0, 12})

		for _, bad := range []string{"", "0", "13", "5 2", "a", "1 2 3"} {
			_, _, err = parseEpisodeRange(bad, 12)
			So(err, ShouldNotBeNil)
		}
	})
}

func TestRun(t *testing.T) {
	filesystem.SetMemMapFs()
	viper.Set(key.CacheTTLHours, 0)
	viper.Set(key.SearchShowQuerySuggestions, true)

	Convey("Given a mini session on a selected source", t, func() {
		var (
			out bytes.Buffer
			src = &stubSource{episodes: 4}
			ask = &scripted{}
		)

		m := newMini(context.Background(), &Options{Out: &out, prompter: ask})
		m.selectedSource = src
		m.state = searchState

		run := func() error {
			for m.state != quitState {
				if err := m.handleState(); err != nil {
					return err
				}
			}
			return nil
		}

		Convey("Picking a range should print links for each episode", func() {
			ask.answers = []answer{
				{input: "frieren"},
				{selected: 0},
				{input: "2 3"},
			}

			So(run(), ShouldEqual, errQuit)
			So(src.resolved, ShouldResemble, []string{"https://stub.test/one/2", "https://stub.test/one/3"})
			So(out.String(), ShouldContainSubstring, "https://stub.test/one/3.m3u8")
			So(out.String(), ShouldContainSubstring, "https://stub.test/one/2.vtt")
			So(out.String(), ShouldContainSubstring, "1080p")
		})

		Convey("Going back from the episode list should show the results again", func() {
			ask.answers = []answer{
				{input: "frieren"},
				{selected: 1},
				{input: "b"},
			}

			So(run(), ShouldEqual, errQuit)
			So(m.state, ShouldEqual, resultSelectState)
			So(ask.messages, ShouldHaveLength, 4)
			So(ask.messages[3], ShouldEqual, "Title")
		})

		Convey("A movie should skip the episode prompt", func() {
			src.episodes = 1
			ask.answers = []answer{
				{input: "frieren"},
				{selected: 0},
			}

			So(run(), ShouldEqual, errQuit)
			So(src.resolved, ShouldResemble, []string{"https://stub.test/one/1"})
			So(ask.messages[len(ask.messages)-1], ShouldEqual, "Title")
		})

		Convey("The quit entry should end the session", func() {
			ask.answers = []answer{
				{input: "frieren"},
				{selected: 3},
			}

			So(run(), ShouldBeNil)
			So(m.state, ShouldEqual, quitState)
		})
	})
}
