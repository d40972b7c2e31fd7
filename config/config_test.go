package config

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/kurasora/kurasora/filesystem"
	"github.com/kurasora/kurasora/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without a config file", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should populate every registered default", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.IsSet(name), ShouldBeTrue)
			}
			So(viper.GetString(key.KuramanimeURL), ShouldEqual, "https://kuramanime.com")
			So(viper.GetInt(key.CacheTTLHours), ShouldEqual, 168)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("providers.sorastream.tmdb_url"), ShouldEqual, "providers_sorastream_tmdb_url")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given the kuramanime url field", t, func() {
		field := Default[key.KuramanimeURL]

		Convey("Env should be prefixed and upper-cased", func() {
			So(field.Env(), ShouldEqual, "KURASORA_PROVIDERS_KURAMANIME_URL")
		})

		Convey("It should marshal its type and default", func() {
			raw, err := json.Marshal(&field)
			So(err, ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(raw, &decoded), ShouldBeNil)
			So(decoded["type"], ShouldEqual, "string")
			So(decoded["default"], ShouldEqual, "https://kuramanime.com")
		})

		Convey("Pretty should mention the key", func() {
			So(field.Pretty(), ShouldContainSubstring, key.KuramanimeURL)
		})
	})
}
