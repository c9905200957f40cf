package imgtag

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roboco-io/imgtag/internal/dimension"
	"github.com/roboco-io/imgtag/internal/liquid"
)

func TestNewTag(t *testing.T) {
	tag := NewTag("left /a.png Title")

	require.Equal(t, "left /a.png Title", tag.Markup())
	require.NotNil(t, tag.Attributes())
	require.Equal(t, "/a.png", tag.Attributes().Src)

	require.Nil(t, NewTag("no source here").Attributes())
}

func TestRegister(t *testing.T) {
	reg := liquid.NewRegistry()
	require.NoError(t, Register(reg))
	require.True(t, reg.Has(Name))
	require.Error(t, Register(reg), "second registration must fail")
}

func TestTag_ExpandPage(t *testing.T) {
	reg := liquid.NewRegistry()
	require.NoError(t, Register(reg))

	src := "# Post\n\n" +
		"{% img /images/ninja.png Ninja Attack! %}\n\n" +
		"{% img left half http://site.com/images/ninja.png Ninja Attack! %}\n\n" +
		"{% img oops %}\n\n" +
		"{% highlight go %}\n"

	exp := liquid.NewExpander(reg, liquid.Env{SiteRoot: DefaultSiteRoot})
	got, err := exp.Expand(context.Background(), src)
	require.NoError(t, err)

	want := "# Post\n\n" +
		`<img src="source/images/ninja.png" title="Ninja Attack!" alt="Ninja Attack!">` + "\n\n" +
		`<img class="left half" src="http://site.com/images/ninja.png" title="Ninja Attack!" alt="Ninja Attack!">` + "\n\n" +
		SyntaxError + "\n\n" +
		"{% highlight go %}\n"
	require.Equal(t, want, got)
}

func TestTag_CaptionMeasuresLocalFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "images"), 0755))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 320, 240))))
	require.NoError(t, os.WriteFile(filepath.Join(root, "images", "x.png"), buf.Bytes(), 0644))

	env := liquid.Env{SiteRoot: root, Lookup: &dimension.File{}}
	got := NewTag("caption /images/x.png Shot").Render(context.Background(), env)

	require.Contains(t, got, `style="width: 320px"`)
	require.Contains(t, got, `<span class="caption-text">Shot</span>`)
}
