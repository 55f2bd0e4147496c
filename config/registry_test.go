package config

import (
	"errors"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tmessages/buildvars/key"
)

func TestRegistryDefaults(t *testing.T) {
	Convey("Given a registry built from defaults", t, func() {
		reg := NewBuilder().Build()

		Convey("Build values hold their literal defaults", func() {
			So(reg.BuildVersionCode(), ShouldEqual, 1155)
			So(reg.BuildVersionName(), ShouldEqual, "4.6")
			So(reg.PlacesAPIVersion(), ShouldEqual, "20150326")
			So(reg.DebugEnabled(), ShouldBeFalse)
			So(reg.DebugPrivateEnabled(), ShouldBeFalse)
		})

		Convey("Credentials default to the empty sentinel", func() {
			So(reg.SearchProviderKey(), ShouldEqual, "")
			So(reg.PlacesAPIKey(), ShouldEqual, "")
			So(reg.PlacesAPIID(), ShouldEqual, "")
			So(reg.Enabled(key.SearchKey), ShouldBeFalse)
			So(reg.ApplicationID(), ShouldEqual, 0)
		})

		Convey("Every key resolves through Get", func() {
			So(len(Keys()), ShouldEqual, key.RegistryFieldsCount)
			for _, k := range Keys() {
				_, err := reg.Get(k)
				So(err, ShouldBeNil)
			}
		})

		Convey("Unknown keys are reported", func() {
			_, err := reg.Get("nope.nope")
			So(errors.Is(err, ErrUnknownKey), ShouldBeTrue)
			So(reg.Lookup("nope.nope").IsAbsent(), ShouldBeTrue)
			So(reg.Enabled("nope.nope"), ShouldBeFalse)
		})
	})
}

func TestBuilderSet(t *testing.T) {
	Convey("Given a builder", t, func() {
		b := NewBuilder()

		Convey("Setting debug leaves the private flag alone", func() {
			So(b.Set(key.DebugEnabled, true), ShouldBeNil)
			reg := b.Build()
			So(reg.DebugEnabled(), ShouldBeTrue)
			So(reg.DebugPrivateEnabled(), ShouldBeFalse)
		})

		Convey("Setting the application ID changes nothing else", func() {
			So(b.Set(key.AppID, 12345), ShouldBeNil)
			reg := b.Build()
			So(reg.ApplicationID(), ShouldEqual, 12345)

			want := Defaults()
			want.ApplicationID = 12345
			So(reg.Vars(), ShouldResemble, want)
		})

		Convey("Values are read back untransformed", func() {
			So(b.Set(key.MapsKey, "  AIza key  "), ShouldBeNil)
			v, err := b.Build().Get(key.MapsKey)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "  AIza key  ")
			So(b.Build().Lookup(key.MapsKey).MustGet(), ShouldEqual, "  AIza key  ")
		})

		Convey("Empty strings are accepted as disabled", func() {
			So(b.Set(key.SearchKey, "bing"), ShouldBeNil)
			So(b.Build().Enabled(key.SearchKey), ShouldBeTrue)
			So(b.Set(key.SearchKey, ""), ShouldBeNil)
			So(b.Build().Enabled(key.SearchKey), ShouldBeFalse)
		})

		Convey("Wrong types are rejected and leave the field untouched", func() {
			err := b.Set(key.BuildVersionCode, "1200")
			So(errors.Is(err, ErrTypeMismatch), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "int")
			So(b.Build().BuildVersionCode(), ShouldEqual, 1155)
		})

		Convey("Unknown keys are rejected", func() {
			So(errors.Is(b.Set(key.LogsLevel, "debug"), ErrUnknownKey), ShouldBeTrue)
		})

		Convey("Built registries do not see later writes", func() {
			reg := b.Build()
			So(b.Set(key.BuildVersionName, "5.0"), ShouldBeNil)
			So(reg.BuildVersionName(), ShouldEqual, "4.6")
			So(b.Build().BuildVersionName(), ShouldEqual, "5.0")
		})
	})
}

func TestActiveCrashKey(t *testing.T) {
	Convey("ActiveCrashKey follows the debug flag", t, func() {
		b := NewBuilder()
		So(b.Set(key.CrashKey, "release"), ShouldBeNil)
		So(b.Set(key.CrashKeyDebug, "debug"), ShouldBeNil)
		So(b.Build().ActiveCrashKey(), ShouldEqual, "release")

		So(b.Set(key.DebugEnabled, true), ShouldBeNil)
		So(b.Build().ActiveCrashKey(), ShouldEqual, "debug")
	})
}

func TestConcurrentReads(t *testing.T) {
	b := NewBuilder()
	if err := b.Set(key.AppID, 27011); err != nil {
		t.Fatal(err)
	}
	reg := b.Build()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, k := range Keys() {
				_, _ = reg.Get(k)
			}
			if reg.ApplicationID() != 27011 {
				t.Error("unexpected application id")
			}
		}()
	}
	wg.Wait()
}
