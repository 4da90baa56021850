package layout

import (
	"strings"
	"testing"

	"github.com/abhisek/liuk/internal/question"
)

func TestFormatClock(t *testing.T) {
	cases := map[int]string{0: "0:00", 59: "0:59", 61: "1:01", 2700: "45:00", -5: "0:00"}
	for secs, want := range cases {
		if got := FormatClock(secs); got != want {
			t.Errorf("FormatClock(%d) = %q, want %q", secs, got, want)
		}
	}
}

func TestRenderHeader_Language(t *testing.T) {
	if h := RenderHeader("Home", question.English, false, 100); !strings.Contains(h, "EN") || strings.Contains(h, "locked") {
		t.Errorf("english header = %q", h)
	}
	if h := RenderHeader("Home", question.Chinese, true, 100); !strings.Contains(h, "中文") || !strings.Contains(h, "(locked)") {
		t.Errorf("locked chinese header = %q", h)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) || IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size boundary")
	}
}
