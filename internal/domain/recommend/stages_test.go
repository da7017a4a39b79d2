package recommend

import (
	"testing"

	"github.com/okian/hackstack/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStages(t *testing.T) {
	p := model.DefaultProfile()
	p.Skills = []string{"Web"}

	Convey("Given the stage order", t, func() {
		Convey("Then primary, active and popular run in sequence", func() {
			So(stages, ShouldHaveLength, 3)
			So(stages[0].name, ShouldEqual, StagePrimary)
			So(stages[1].name, ShouldEqual, StageActive)
			So(stages[2].name, ShouldEqual, StagePopular)
		})
	})

	Convey("Given a catalog with only two live hackathons", t, func() {
		r := New()
		hs := []model.Hackathon{
			{ID: "a", Title: "A", Status: model.StatusOpen, Participants: 10},
			{ID: "b", Title: "B", Status: model.StatusEnded, Participants: 900},
			{ID: "c", Title: "C", Status: model.StatusClosingSoon, Participants: 700},
		}

		Convey("When the active stage runs", func() {
			out, ok := activeStage(r, p, hs)

			Convey("Then it declines because fewer than three remain", func() {
				So(ok, ShouldBeFalse)
				So(out, ShouldHaveLength, 2)
			})
		})

		Convey("When the popular stage runs", func() {
			out, ok := popularStage(r, p, hs)

			Convey("Then it accepts, skips ended and orders by participants", func() {
				So(ok, ShouldBeTrue)
				So(out, ShouldHaveLength, 2)
				So(out[0].ID, ShouldEqual, "c")
				So(out[0].ConfidenceScore, ShouldEqual, 60)
				So(out[0].Reason, ShouldEqual, "Popular hackathon with 700+ participants. Great community!")
				So(out[1].ID, ShouldEqual, "a")
				So(out[1].ConfidenceScore, ShouldEqual, 55)
			})

			Convey("Then the caller's slice keeps its order", func() {
				So(hs[0].ID, ShouldEqual, "a")
			})
		})
	})

	Convey("Given three or more live hackathons", t, func() {
		r := New()
		hs := []model.Hackathon{
			{ID: "a", Status: model.StatusOpen},
			{ID: "b", Status: model.StatusOpen},
			{ID: "c", Status: model.StatusEnded},
			{ID: "d", Status: model.StatusClosingSoon},
		}

		Convey("Then the active stage accepts without ended entries", func() {
			out, ok := activeStage(r, p, hs)
			So(ok, ShouldBeTrue)
			So(out, ShouldHaveLength, 3)
			for _, rec := range out {
				So(rec.ID, ShouldNotEqual, "c")
			}
		})
	})

	Convey("Given more than five popular candidates", t, func() {
		r := New()
		hs := make([]model.Hackathon, 8)
		for i := range hs {
			hs[i] = model.Hackathon{ID: string(rune('a' + i)), Status: model.StatusOpen, Participants: i}
		}

		Convey("Then the popular list is capped and confidence never rises", func() {
			out := r.popular(hs)
			So(out, ShouldHaveLength, MaxResults)
			So(out[0].ID, ShouldEqual, "h")
			for i := 1; i < len(out); i++ {
				So(out[i].ConfidenceScore, ShouldBeLessThanOrEqualTo, out[i-1].ConfidenceScore)
			}
		})
	})
}
