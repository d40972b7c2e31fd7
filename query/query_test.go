package query

import (
	"testing"

	"github.com/kurasora/kurasora/filesystem"
	"github.com/kurasora/kurasora/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, true)

		So(Remember("naruto", 1), ShouldBeNil)
		So(Remember("  Bleach ", 10), ShouldBeNil)

		Convey("Suggestions should be sorted by rank", func() {
			s := SuggestMany("b")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 1)
			So(s[0], ShouldEqual, "bleach")
		})

		Convey("Suggest should return the best match", func() {
			So(Suggest("nrt").OrEmpty(), ShouldEqual, "naruto")
			So(Suggest("zzz").IsAbsent(), ShouldBeTrue)
		})

		Convey("Remembering again should refresh suggestions", func() {
			_ = SuggestMany("o")
			So(Remember("one piece", 1000), ShouldBeNil)
			So(SuggestMany("o")[0], ShouldEqual, "one piece")
		})

		Convey("Blank queries should be ignored", func() {
			So(Remember("   ", 5), ShouldBeNil)
			So(SuggestMany(""), ShouldNotContain, "")
		})

		Convey("Disabled suggestions should yield nothing", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			So(SuggestMany("b"), ShouldBeEmpty)
		})

		Convey("It sanitizes input", func() {
			So(sanitize("  NARUTO  "), ShouldEqual, "naruto")
		})
	})
}
