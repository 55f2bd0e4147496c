package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/tmessages/buildvars/filesystem"
	"github.com/tmessages/buildvars/key"
	"github.com/tmessages/buildvars/secret"
	"github.com/tmessages/buildvars/where"
	"github.com/zalando/go-keyring"
)

const testConfigDir = "/cfg"

// failingStore is a secret.Store whose lookups always break.
type failingStore struct{}

func (failingStore) Get(string) (string, error) { return "", errors.New("keyring locked") }
func (failingStore) Set(string, string) error   { return nil }
func (failingStore) Delete(string) error        { return nil }

func writeFile(name, content string) {
	So(filesystem.API().WriteFile(filepath.Join(testConfigDir, name), []byte(content), 0644), ShouldBeNil)
}

func TestSetup(t *testing.T) {
	t.Setenv(where.EnvConfigPath, testConfigDir)
	t.Cleanup(func() { _ = os.Unsetenv("BUILDVARS_MAPS_KEY") })

	Convey("Config Setup", t, func() {
		filesystem.SetMemMapFs()
		viper.Reset()

		Convey("Should initialize without a config file", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			So(Setup(), ShouldBeNil)
			for name, field := range Default {
				So(viper.Get(name), ShouldEqual, field.Value)
			}
		})

		Convey("Should read the toml file", func() {
			writeFile("buildvars.toml", "[app]\nid = 27011\n\n[build]\nversion_name = \"4.7\"\n")
			So(Setup(), ShouldBeNil)
			So(viper.GetInt(key.AppID), ShouldEqual, 27011)
			So(viper.GetString(key.BuildVersionName), ShouldEqual, "4.7")
		})

		Convey("Should fail on a malformed file", func() {
			writeFile("buildvars.toml", "[app\nid =")
			So(Setup(), ShouldNotBeNil)
		})

		Convey("Environment overrides the file", func() {
			writeFile("buildvars.toml", "[build]\nversion_code = 1200\n")
			t.Setenv("BUILDVARS_BUILD_VERSION_CODE", "1300")
			So(Setup(), ShouldBeNil)
			So(viper.GetInt(key.BuildVersionCode), ShouldEqual, 1300)
		})

		Convey("Dotenv fills unset variables only", func() {
			t.Setenv("BUILDVARS_PLACES_VERSION", "20200101")
			writeFile(".env", "BUILDVARS_MAPS_KEY=from-dotenv\nBUILDVARS_PLACES_VERSION=20990101\n")
			So(Setup(), ShouldBeNil)
			So(viper.GetString(key.MapsKey), ShouldEqual, "from-dotenv")
			So(viper.GetString(key.PlacesVersion), ShouldEqual, "20200101")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("crash.key_debug"), ShouldEqual, "crash_key_debug")
		})
	})
}

func TestLoad(t *testing.T) {
	t.Setenv(where.EnvConfigPath, testConfigDir)
	keyring.MockInit()

	Convey("Load", t, func() {
		filesystem.SetMemMapFs()
		viper.Reset()
		ctx := context.Background()

		Convey("Without overrides the registry equals the defaults", func() {
			So(Setup(), ShouldBeNil)
			reg, err := Load(ctx, nil)
			So(err, ShouldBeNil)
			So(reg.Vars(), ShouldResemble, Defaults())
		})

		Convey("String sources are coerced to the field type", func() {
			t.Setenv("BUILDVARS_APP_ID", "12345")
			t.Setenv("BUILDVARS_DEBUG_ENABLED", "true")
			So(Setup(), ShouldBeNil)
			reg, err := Load(ctx, nil)
			So(err, ShouldBeNil)
			So(reg.ApplicationID(), ShouldEqual, 12345)
			So(reg.DebugEnabled(), ShouldBeTrue)
			So(reg.DebugPrivateEnabled(), ShouldBeFalse)
		})

		Convey("Empty credentials are filled from the keyring", func() {
			store := secret.NewKeyring()
			So(store.Set(key.AppSecret, "f79d180d"), ShouldBeNil)
			So(Setup(), ShouldBeNil)

			reg, err := Load(ctx, store)
			So(err, ShouldBeNil)
			So(reg.ApplicationSecret(), ShouldEqual, "f79d180d")
			So(reg.SearchProviderKey(), ShouldEqual, "")
		})

		Convey("Configured credentials win over the keyring", func() {
			store := secret.NewKeyring()
			So(store.Set(key.MapsKey, "from-keyring"), ShouldBeNil)
			writeFile("buildvars.toml", "[maps]\nkey = \"from-file\"\n")
			So(Setup(), ShouldBeNil)

			reg, err := Load(ctx, store)
			So(err, ShouldBeNil)
			So(reg.MapsAPIKey(), ShouldEqual, "from-file")
		})

		Convey("A broken store leaves credentials empty and the rest intact", func() {
			writeFile("buildvars.toml", "[maps]\nkey = \"from-file\"\n")
			So(Setup(), ShouldBeNil)

			reg, err := Load(ctx, failingStore{})
			So(err, ShouldBeNil)
			So(reg.BuildVersionCode(), ShouldEqual, 1155)
			So(reg.MapsAPIKey(), ShouldEqual, "from-file")
			So(reg.ApplicationSecret(), ShouldEqual, "")
		})

		Convey("A cancelled context stops the keyring lookup", func() {
			So(Setup(), ShouldBeNil)
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := Load(cancelled, secret.NewKeyring())
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})

		Convey("Garbage in an int field fails the load", func() {
			t.Setenv("BUILDVARS_BUILD_VERSION_CODE", "eleven")
			So(Setup(), ShouldBeNil)
			_, err := Load(ctx, nil)
			So(errors.Is(err, ErrTypeMismatch), ShouldBeTrue)
		})
	})
}

func TestCoerce(t *testing.T) {
	Convey("Coerce", t, func() {
		Convey("Parses strings into the default's type", func() {
			So(must(Coerce(key.AppID, "27011")), ShouldEqual, 27011)
			So(must(Coerce(key.DebugPrivate, "true")), ShouldEqual, true)
			So(must(Coerce(key.LogsLevel, "debug")), ShouldEqual, "debug")
		})

		Convey("Reads integers as decimal", func() {
			So(must(Coerce(key.BuildVersionCode, "01155")), ShouldEqual, 1155)
			So(must(Coerce(key.AppID, int64(27011))), ShouldEqual, 27011)

			_, err := Coerce(key.BuildVersionCode, "0x10")
			So(errors.Is(err, ErrTypeMismatch), ShouldBeTrue)
		})

		Convey("Rejects unparsable input", func() {
			_, err := Coerce(key.DebugEnabled, "maybe")
			So(errors.Is(err, ErrTypeMismatch), ShouldBeTrue)
		})

		Convey("Rejects unknown keys", func() {
			_, err := Coerce("app.name", "x")
			So(errors.Is(err, ErrUnknownKey), ShouldBeTrue)
		})
	})
}

func TestPersist(t *testing.T) {
	t.Setenv(where.EnvConfigPath, testConfigDir)
	t.Setenv("BUILDVARS_APP_SECRET", "f79d180d-from-env")

	Convey("Persist", t, func() {
		filesystem.SetMemMapFs()
		viper.Reset()
		So(Setup(), ShouldBeNil)

		read := func() string {
			data, err := filesystem.API().ReadFile(where.ConfigFile())
			So(err, ShouldBeNil)
			return string(data)
		}

		Convey("Creates the file with only the given values", func() {
			So(Persist(map[string]any{key.BuildVersionCode: 1200}), ShouldBeNil)

			content := read()
			So(content, ShouldContainSubstring, "version_code = 1200")
			So(content, ShouldNotContainSubstring, "f79d180d-from-env")
			So(content, ShouldNotContainSubstring, "places")
		})

		Convey("Keeps what the file already holds", func() {
			writeFile("buildvars.toml", "[app]\nid = 27011\n")
			So(Setup(), ShouldBeNil)

			So(Persist(map[string]any{key.BuildVersionName: "4.7"}), ShouldBeNil)
			So(read(), ShouldContainSubstring, "id = 27011")
			So(viper.GetString(key.BuildVersionName), ShouldEqual, "4.7")
		})

		Convey("Leaves overrides set at runtime out of the file", func() {
			viper.Set(key.DebugEnabled, true)
			So(Persist(map[string]any{key.AppID: 1}), ShouldBeNil)
			So(read(), ShouldNotContainSubstring, "[debug]")
		})
	})
}

func TestField(t *testing.T) {
	keyring.MockInit()

	Convey("Field", t, func() {
		filesystem.SetMemMapFs()
		viper.Reset()

		Convey("Mask keeps the last four characters", func() {
			So(Mask(""), ShouldEqual, "")
			So(Mask("AIza"), ShouldEqual, "****")
			So(Mask("bing-key"), ShouldEqual, "********-key")
			So(Mask("ключ-секрет"), ShouldEqual, "********крет")
		})

		Convey("Current masks credentials and falls back to the store", func() {
			store := secret.NewKeyring()
			So(store.Set(key.SearchKey, "bing-key"), ShouldBeNil)

			field := Default[key.SearchKey]
			So(field.Current(), ShouldEqual, "")

			withStore := field.WithStore(store)
			So(withStore.Current(), ShouldEqual, "********-key")
		})

		Convey("Current leaves plain settings alone", func() {
			viper.Set(key.BuildVersionCode, 1155)
			field := Default[key.BuildVersionCode].WithStore(failingStore{})
			So(field.Current(), ShouldEqual, 1155)
		})
	})
}

func must(v any, err error) any {
	So(err, ShouldBeNil)
	return v
}
