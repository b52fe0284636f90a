package config_test

import (
	"testing"

	"github.com/okian/elo/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then rating defaults follow the classic Elo parameters", func() {
			convey.So(cfg.DMax, convey.ShouldEqual, 400.0)
			convey.So(cfg.InitialRating, convey.ShouldEqual, 1500.0)
			convey.So(cfg.RecordKey, convey.ShouldEqual, "elo")
			convey.So(cfg.ProvisionalMatches, convey.ShouldEqual, 30)
			convey.So(cfg.ProvisionalKFactor, convey.ShouldEqual, 32.0)
			convey.So(cfg.EstablishedKFactor, convey.ShouldEqual, 24.0)
		})

		convey.Convey("Then it validates", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
