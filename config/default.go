package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/goccy/go-json"
	"github.com/kurasora/kurasora/color"
	"github.com/kurasora/kurasora/constant"
	"github.com/kurasora/kurasora/key"
	"github.com/kurasora/kurasora/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a single registered setting with its factory default.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field for `config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable that overrides this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Kurasora + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON includes both the current and the default value.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	return reflect.TypeOf(f.Value).String()
}

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to KURASORA_* env variables.
var EnvExposed []string

func register(k string, v any, desc string) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}
	Default[k] = Field{Key: k, Value: v, Description: desc}
	EnvExposed = append(EnvExposed, k)
}

func init() {
	register(key.DefaultSources, []string{}, "Default sources to use.\nWill prompt if not set.\nType \"kurasora sources list\" to show available sources")
	register(key.MetadataFetchIDs, true, "Resolve MyAnimeList and Anilist ids when loading anime\nResults are cached to not spam the APIs")
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")
	register(key.SearchLimit, 20, "Limit of search results to show in interactive mode")
	register(key.NetworkTimeout, 30, "HTTP request timeout in seconds")
	register(key.NetworkSpoofTLS, false, "Mimic a Chrome TLS fingerprint when talking to providers")
	register(key.NetworkUserAgent, constant.UserAgent, "User-Agent header sent to providers")
	register(key.KuramanimeURL, "https://kuramanime.com", "Kuramanime mirror to scrape")
	register(key.SoraTMDBKey, "", "TMDB v3 api key used by SoraStream for metadata")
	register(key.SoraTMDBURL, "https://api.themoviedb.org/3", "TMDB api base url")
	register(key.SoraRezkaURL, "https://rezka.ag", "Rezka mirror used for CDN streams")
	register(key.SoraFilmxyURL, "https://www.filmxy.vip", "Filmxy mirror")
	register(key.SoraGdbotURL, "https://gdbot.xyz", "Gdbot instance used to resolve gdtot links")
	register(key.CacheTTLHours, 24*7, "How long search and load responses stay cached, in hours.\n0 disables the cache")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
	register(key.ServeAddr, "127.0.0.1:8080", "Address the JSON API listens on")
	register(key.ServeAllowedOrigins, []string{"*"}, "CORS origins allowed by the JSON API")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(f *Field) string { return f.typeName() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename . }}`))
