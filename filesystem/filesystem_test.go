package filesystem

import (
	"os"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestGacheFs(t *testing.T) {
	Convey("Given the in-memory backend", t, func() {
		SetMemMapFs()
		fs := GacheFs{}

		Convey("Writes through GacheFs should be visible to API()", func() {
			So(fs.MkdirAll("/cache", os.ModePerm), ShouldBeNil)

			f, err := fs.OpenFile("/cache/q.json", os.O_CREATE|os.O_WRONLY, 0644)
			So(err, ShouldBeNil)
			_, err = f.Write([]byte(`{}`))
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			So(string(lo.Must(API().ReadFile("/cache/q.json"))), ShouldEqual, "{}")
		})

		Convey("Creating a file should create its parents", func() {
			f, err := fs.OpenFile("/deep/nested/ids.json", os.O_CREATE|os.O_WRONLY, 0644)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)
			So(lo.Must(API().DirExists("/deep/nested")), ShouldBeTrue)
		})
	})
}
