package segment_test

import (
	"strings"
	"testing"

	"github.com/okian/leetview/internal/domain/segment"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSegment(t *testing.T) {
	Convey("Given the segmenter with the hash marker", t, func() {
		Convey("When the file is empty", func() {
			doc := segment.Segment(nil, "#")

			Convey("Then every field should be empty", func() {
				So(doc, ShouldResemble, segment.Document{})
			})
		})

		Convey("When the file has a description, code and a trailing note", func() {
			doc := segment.Segment([]string{
				"# Problem: Two Sum",
				"",
				"def solve(): pass",
				"# O(n) time",
			}, "#")

			Convey("Then the blank line before the code is skipped", func() {
				So(doc.Description, ShouldEqual, "Problem: Two Sum")
				So(doc.Code, ShouldEqual, "def solve(): pass")
				So(doc.Complexity, ShouldEqual, "O(n) time")
			})
		})

		Convey("When the file holds only comments", func() {
			lines := []string{"# first", "#second", "", "   #  third"}
			doc := segment.Segment(lines, "#")

			Convey("Then all of them land in the description in order", func() {
				So(doc.Description, ShouldEqual, "first\nsecond\n third")
				So(doc.Code, ShouldEqual, "")
				So(doc.Complexity, ShouldEqual, "")
			})
		})

		Convey("When the file holds only code", func() {
			text := "class Solution:\n    def run(self):\n\n        return 1"
			doc := segment.SegmentText(text, "#")

			Convey("Then the code round-trips exactly", func() {
				So(doc.Description, ShouldEqual, "")
				So(doc.Complexity, ShouldEqual, "")
				So(doc.Code, ShouldEqual, text)
			})
		})

		Convey("When comments sit inside the code span", func() {
			lines := []string{
				"# desc",
				"x = 1",
				"",
				"    # keep me",
				"y = 2",
				"# Time: O(1)",
				"",
				"# Space: O(1)",
			}
			doc := segment.Segment(lines, "#")

			Convey("Then they stay untouched in the code", func() {
				So(doc.Code, ShouldEqual, "x = 1\n\n    # keep me\ny = 2")
				So(doc.Complexity, ShouldEqual, "Time: O(1)\nSpace: O(1)")
			})
		})

		Convey("When the last code line is followed by blank lines", func() {
			doc := segment.Segment([]string{"a = 1", "", "", "# note"}, "#")

			Convey("Then the blank lines are not part of the code", func() {
				So(doc.Code, ShouldEqual, "a = 1")
				So(doc.Complexity, ShouldEqual, "note")
			})
		})

		Convey("When the marker is followed by several spaces", func() {
			doc := segment.Segment([]string{"#   indented", "pass"}, "#")

			Convey("Then only one space is stripped", func() {
				So(doc.Description, ShouldEqual, "  indented")
			})
		})

		Convey("When the description comes after leading blank lines", func() {
			doc := segment.Segment([]string{"", "# title", "", "# more", "run()"}, "#")

			Convey("Then blank lines never enter the description", func() {
				So(doc.Description, ShouldEqual, "title\nmore")
				So(doc.Code, ShouldEqual, "run()")
			})
		})

		Convey("When no marker is given", func() {
			doc := segment.Segment([]string{"# d", "x"}, "")

			Convey("Then the default marker is used", func() {
				So(doc.Description, ShouldEqual, "d")
				So(doc.Code, ShouldEqual, "x")
			})
		})
	})

	Convey("Given the segmenter with the slash marker", t, func() {
		lines := []string{
			"// Problem: Valid Parentheses",
			"function isValid(s: string): boolean {",
			"  // stack of openers",
			"  return true;",
			"}",
			"// Time: O(n)",
		}
		doc := segment.Segment(lines, "//")

		Convey("Then the same rules apply to the longer marker", func() {
			So(doc.Description, ShouldEqual, "Problem: Valid Parentheses")
			So(doc.Code, ShouldEqual, strings.Join(lines[1:5], "\n"))
			So(doc.Complexity, ShouldEqual, "Time: O(n)")
		})
	})
}

// Marker lines between two code lines belong to the code, not the notes.
func TestSegment_TrailingNotesOnlyAfterLastCodeLine(t *testing.T) {
	Convey("Given code with notes in the middle and at the end", t, func() {
		lines := []string{"a()", "# middle", "b()", "# end"}
		doc := segment.Segment(lines, "#")

		Convey("Then only the final note is complexity", func() {
			So(doc.Code, ShouldEqual, "a()\n# middle\nb()")
			So(doc.Complexity, ShouldEqual, "end")
		})
	})
}

func TestSplitLines(t *testing.T) {
	Convey("Given text with windows line endings and a trailing newline", t, func() {
		lines := segment.SplitLines("# d\r\nx = 1\r\n")

		Convey("Then lines drop their terminators", func() {
			So(lines, ShouldResemble, []string{"# d", "x = 1"})
		})
	})

	Convey("Given text with classic Mac line endings", t, func() {
		doc := segment.SegmentText("# d\rx = 1\r# O(1)\r", "#")

		Convey("Then a lone carriage return ends a line", func() {
			So(segment.SplitLines("a\rb\r\nc\n"), ShouldResemble, []string{"a", "b", "c"})
			So(doc.Description, ShouldEqual, "d")
			So(doc.Code, ShouldEqual, "x = 1")
			So(doc.Complexity, ShouldEqual, "O(1)")
		})
	})

	Convey("Given a form feed inside a line", t, func() {
		So(segment.SplitLines("a\fb\n"), ShouldResemble, []string{"a\fb"})
	})

	Convey("Given empty text", t, func() {
		So(segment.SplitLines(""), ShouldBeNil)
	})
}
