package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kurasora/kurasora/filesystem"
	"github.com/kurasora/kurasora/key"
	"github.com/kurasora/kurasora/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Provider entries should still be usable", func() {
			So(Enabled(), ShouldBeFalse)
			So(func() { Provider("kuramanime").Info("ignored") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)

		Convey("A dated log file should be created", func() {
			Info("hello")
			Provider("sorastream").Warn("rezka down")

			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			So(lo.Must(filesystem.API().Exists(path)), ShouldBeTrue)

			content := string(lo.Must(filesystem.API().ReadFile(path)))
			So(content, ShouldContainSubstring, "hello")
			So(content, ShouldContainSubstring, "provider=sorastream")
		})
	})
}
