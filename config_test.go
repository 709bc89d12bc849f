package faultsim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig(t *testing.T) {
	Convey("Given the default config", t, func() {
		cfg := NewConfig()

		Convey("It should default to p=0.05 with the simple policy and validate", func() {
			So(cfg.Probability, ShouldEqual, 0.05)
			So(cfg.Policy, ShouldEqual, PolicySimple)
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("Out of range values should be rejected", func() {
			cfg.Probability = -0.1
			So(errors.Is(cfg.Validate(), ErrInvalidConfig), ShouldBeTrue)

			cfg.Probability = 0.5
			cfg.Policy = "coherent"
			So(errors.Is(cfg.Validate(), ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("A session should ignore the runner-only fields", func() {
			cfg.Workers = 0
			So(cfg.Validate(), ShouldNotBeNil)

			_, err := NewFaultySimulator(NewTraceEngine(), WithConfig(cfg))
			So(err, ShouldBeNil)
		})
	})

	Convey("Given YAML input", t, func() {
		Convey("Keys present should override the defaults", func() {
			cfg, err := ParseConfig([]byte("probability: 0.25\npolicy: compound\nseed: 77\n"))
			So(err, ShouldBeNil)
			So(cfg.Probability, ShouldEqual, 0.25)
			So(cfg.Policy, ShouldEqual, PolicyCompound)
			So(cfg.Seed, ShouldEqual, uint64(77))
			So(cfg.Workers, ShouldEqual, 4)
		})

		Convey("Invalid values should fail validation", func() {
			_, err := ParseConfig([]byte("probability: 2\n"))
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("Malformed YAML should fail to parse", func() {
			_, err := ParseConfig([]byte("probability: [\n"))
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrInvalidConfig), ShouldBeFalse)
		})
	})

	Convey("Given a config file", t, func() {
		path := filepath.Join(t.TempDir(), "faultsim.yaml")
		So(os.WriteFile(path, []byte("workers: 8\ntrials: 500\n"), 0o600), ShouldBeNil)

		Convey("It should load", func() {
			cfg, err := LoadConfig(path)
			So(err, ShouldBeNil)
			So(cfg.Workers, ShouldEqual, 8)
			So(cfg.Trials, ShouldEqual, 500)
		})

		Convey("A missing file should report the path", func() {
			_, err := LoadConfig(path + ".missing")
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})
	})
}
