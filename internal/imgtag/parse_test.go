package imgtag

import (
	"testing"
)

// want describes expected attributes; "-" marks an absent field.
type want struct {
	class, src, width, height, title, alt string
}

func field(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   want
	}{
		{
			name:   "path with title",
			markup: "/images/ninja.png Ninja Attack!",
			want:   want{"-", "/images/ninja.png", "-", "-", "Ninja Attack!", "Ninja Attack!"},
		},
		{
			name:   "bare path",
			markup: "/images/ninja.png",
			want:   want{"-", "/images/ninja.png", "-", "-", "-", "-"},
		},
		{
			name:   "classes and absolute url",
			markup: "left half http://site.com/images/ninja.png Ninja Attack!",
			want:   want{"left half", "http://site.com/images/ninja.png", "-", "-", "Ninja Attack!", "Ninja Attack!"},
		},
		{
			name:   "dimensions and quoted pair",
			markup: `left half http://site.com/images/ninja.png 150 150 "Ninja Attack!" "Ninja in attack posture"`,
			want:   want{"left half", "http://site.com/images/ninja.png", "150", "150", "Ninja Attack!", "Ninja in attack posture"},
		},
		{
			name:   "single quoted pair",
			markup: `/images/ninja.png 'Ninja Attack!' 'Ninja in attack posture'`,
			want:   want{"-", "/images/ninja.png", "-", "-", "Ninja Attack!", "Ninja in attack posture"},
		},
		{
			name:   "quoted pair with empty title",
			markup: `/images/ninja.png "" "only alt"`,
			want:   want{"-", "/images/ninja.png", "-", "-", "-", "only alt"},
		},
		{
			name:   "width only",
			markup: "https://site.com/a.png 300 Wide",
			want:   want{"-", "https://site.com/a.png", "300", "-", "Wide", "Wide"},
		},
		{
			name:   "caption with dimensions",
			markup: "caption /images/x.jpg 300 200 My Caption",
			want:   want{"caption", "/images/x.jpg", "300", "200", "My Caption", "My Caption"},
		},
		{
			name:   "relative path",
			markup: "images/x.jpg",
			want:   want{"-", "images/x.jpg", "-", "-", "-", "-"},
		},
		{
			name:   "quotes stripped from class",
			markup: `"left half" /images/x.jpg`,
			want:   want{"left half", "/images/x.jpg", "-", "-", "-", "-"},
		},
		{
			name:   "lone quotes in title escaped",
			markup: `/images/x.jpg Say "hi"`,
			want:   want{"-", "/images/x.jpg", "-", "-", "Say &#34;hi&#34;", "Say &#34;hi&#34;"},
		},
		{
			name:   "non-numeric width is dropped",
			markup: "/images/x.jpg 150abc",
			want:   want{"-", "/images/x.jpg", "150", "-", "-", "-"},
		},
		{
			name:   "uppercase scheme",
			markup: "HTTP://site.com/a.png",
			want:   want{"-", "HTTP://site.com/a.png", "-", "-", "-", "-"},
		},
		{
			name:   "whitespace-only trailing text",
			markup: "/images/x.jpg    ",
			want:   want{"-", "/images/x.jpg", "-", "-", "-", "-"},
		},
		{
			name:   "surrounding whitespace",
			markup: "  /images/x.jpg   Title  ",
			want:   want{"-", "/images/x.jpg", "-", "-", "Title", "Title"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := Parse(tc.markup)
			if a == nil {
				t.Fatalf("Parse(%q) returned no match", tc.markup)
			}
			got := want{field(a.Class), a.Src, field(a.Width), field(a.Height), field(a.Title), field(a.Alt)}
			if got != tc.want {
				t.Errorf("Parse(%q)\n got  %+v\n want %+v", tc.markup, got, tc.want)
			}
		})
	}
}

func TestParse_NoMatch(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"Ninja Attack!",
		"left half 150 150 \"Ninja\" \"Attack\"",
		"trailing/",
	}

	for _, in := range inputs {
		if a := Parse(in); a != nil {
			t.Errorf("Parse(%q) = %+v, want no match", in, a)
		}
	}
}
