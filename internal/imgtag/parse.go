package imgtag

import (
	"regexp"
	"strings"
)

var (
	// markupPattern anchors on the source token; everything before it is the class list.
	markupPattern = regexp.MustCompile(`(?i)(?P<class>\S.*\s+)?(?P<src>(?:https?://|/|\S+/)\S+)(?:\s+(?P<width>\d+))?(?:\s+(?P<height>\d+))?(?P<title>\s+.+)?`)

	// quotedPairPattern matches "title" "alt" (either quote character) in the trailing text.
	quotedPairPattern = regexp.MustCompile(`(?:"|')(?P<title>[^"']+)?(?:"|')\s+(?:"|')(?P<alt>[^"']+)?(?:"|')`)
)

// Parse extracts image attributes from the markup of one tag occurrence. It returns
// nil when the markup contains no source-like token. Trailing text that is only
// whitespace leaves Title and Alt nil, so no empty title="" attribute is rendered.
func Parse(markup string) *Attributes {
	m := markupPattern.FindStringSubmatchIndex(markup)
	if m == nil {
		return nil
	}

	group := func(name string) *string {
		i := markupPattern.SubexpIndex(name)
		if m[2*i] < 0 {
			return nil
		}
		return ptr(strings.TrimSpace(markup[m[2*i]:m[2*i+1]]))
	}

	a := &Attributes{
		Class:  group("class"),
		Src:    value(group("src")),
		Width:  group("width"),
		Height: group("height"),
	}

	if a.Class != nil {
		a.Class = ptr(strings.ReplaceAll(*a.Class, `"`, ""))
	}

	if trailing := group("title"); trailing != nil && *trailing != "" {
		a.Title, a.Alt = parseTitle(*trailing)
	}

	return a
}

// parseTitle splits the trailing text into title and alt. A quoted pair yields the two
// segments; anything else is used for both, with double quotes entity-escaped.
func parseTitle(text string) (title, alt *string) {
	if m := quotedPairPattern.FindStringSubmatch(text); m != nil {
		return nonEmpty(m[quotedPairPattern.SubexpIndex("title")]),
			nonEmpty(m[quotedPairPattern.SubexpIndex("alt")])
	}
	escaped := strings.ReplaceAll(text, `"`, "&#34;")
	return ptr(escaped), ptr(escaped)
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
