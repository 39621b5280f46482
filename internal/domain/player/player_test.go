package player

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDataset(t *testing.T) {
	Convey("Given a dataset built from two players", t, func() {
		src := []Player{
			{Age: 25, Height: 200, Rating: 80, Team: "Boston Celtics", Position: "G", Country: "USA"},
			{Age: 31, Height: math.NaN(), Rating: 91, Team: "Denver Nuggets", Position: "C", Country: "Serbia"},
		}
		ds := NewDataset("data.csv", src)

		Convey("Then accessors should expose the records in order", func() {
			So(ds.Source(), ShouldEqual, "data.csv")
			So(ds.Len(), ShouldEqual, 2)
			So(ds.At(1).Country, ShouldEqual, "Serbia")
			So(ds.Ages(), ShouldResemble, []int{25, 31})
			So(ds.Labels(ColTeam), ShouldResemble, []string{"Boston Celtics", "Denver Nuggets"})
			So(ds.Floats(ColRating), ShouldResemble, []float64{80, 91})
		})

		Convey("Then missing values should stay NaN", func() {
			So(math.IsNaN(ds.Floats(ColHeight)[1]), ShouldBeTrue)
		})

		Convey("When the caller mutates its input or a returned copy", func() {
			src[0].Team = "changed"
			players := ds.Players()
			players[1].Team = "changed"

			Convey("Then the dataset should be unaffected", func() {
				So(ds.At(0).Team, ShouldEqual, "Boston Celtics")
				So(ds.At(1).Team, ShouldEqual, "Denver Nuggets")
			})
		})

		Convey("Then unknown columns should yield zero values", func() {
			So(math.IsNaN(ds.At(0).Value("wingspan")), ShouldBeTrue)
			So(ds.At(0).Label("college"), ShouldEqual, "")
			So(ds.At(0).Value(ColAge), ShouldEqual, 25)
		})
	})

	Convey("Given a dataset where one player has no age", t, func() {
		ds := NewDataset("data.csv", []Player{
			{Age: 25, Team: "Boston Celtics"},
			{Age: MissingAge, Team: "Denver Nuggets"},
			{Age: 0, Team: "Miami Heat"},
		})

		Convey("Then Ages should skip the missing one only", func() {
			So(ds.Ages(), ShouldResemble, []int{25, 0})
			So(ds.At(1).HasAge(), ShouldBeFalse)
			So(math.IsNaN(ds.At(1).Value(ColAge)), ShouldBeTrue)
			So(ds.Len(), ShouldEqual, 3)
		})
	})
}
