package liquid

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDirectives(t *testing.T) {
	src := "a {% img /x.png Title %} b {%raw%} c {%  echo   spaced   %}\n{% img\n/split.png %}"

	got := Directives(src)
	require.Len(t, got, 3)

	require.Equal(t, "img", got[0].Name)
	require.Equal(t, "/x.png Title", got[0].Markup)
	require.Equal(t, "{% img /x.png Title %}", src[got[0].Start:got[0].End])

	require.Equal(t, "raw", got[1].Name)
	require.Equal(t, "", got[1].Markup)

	require.Equal(t, "echo", got[2].Name)
	require.Equal(t, "spaced", got[2].Markup)
}

func TestExpand(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("echo", echoFactory))

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"no directives", "plain text", "plain text"},
		{"single", "before {% echo hi %} after", "before [hi] after"},
		{"unregistered kept", "{% highlight go %}x{% endhighlight %} {% echo y %}", "{% highlight go %}x{% endhighlight %} [y]"},
		{"adjacent", "{% echo a %}{% echo b %}", "[a][b]"},
		{"empty markup", "{% echo %}", "[]"},
	}

	exp := NewExpander(reg, Env{})
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := exp.Expand(context.Background(), tc.src)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// slowTag sleeps in inverse order of its index so later tags finish first.
type slowTag struct {
	index    int
	inflight *int32
	peak     *int32
}

func (s slowTag) Render(ctx context.Context, env Env) string {
	n := atomic.AddInt32(s.inflight, 1)
	for {
		p := atomic.LoadInt32(s.peak)
		if n <= p || atomic.CompareAndSwapInt32(s.peak, p, n) {
			break
		}
	}
	time.Sleep(time.Duration(10-s.index) * time.Millisecond)
	atomic.AddInt32(s.inflight, -1)
	return strings.Repeat("#", s.index)
}

func TestExpand_PreservesOrderUnderConcurrency(t *testing.T) {
	var inflight, peak int32
	reg := NewRegistry()
	require.NoError(t, reg.Register("slow", func(markup string) Tag {
		return slowTag{index: len(markup), inflight: &inflight, peak: &peak}
	}))

	var src, want strings.Builder
	for i := 1; i <= 8; i++ {
		src.WriteString("{% slow " + strings.Repeat("x", i) + " %}|")
		want.WriteString(strings.Repeat("#", i) + "|")
	}

	exp := NewExpander(reg, Env{})
	exp.Concurrency = 2

	got, err := exp.Expand(context.Background(), src.String())
	require.NoError(t, err)
	require.Equal(t, want.String(), got)
	require.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestExpand_PassesEnv(t *testing.T) {
	reg := NewRegistry()
	var seen Env
	require.NoError(t, reg.Register("root", func(markup string) Tag {
		return tagFunc(func(ctx context.Context, env Env) string {
			seen = env
			return env.SiteRoot + markup
		})
	}))

	exp := NewExpander(reg, Env{SiteRoot: "public"})
	got, err := exp.Expand(context.Background(), "{% root /a.png %}")
	require.NoError(t, err)
	require.Equal(t, "public/a.png", got)
	require.Equal(t, "public", seen.SiteRoot)
}

func TestExpand_Cancelled(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("echo", echoFactory))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExpander(reg, Env{}).Expand(ctx, "{% echo a %}")
	require.ErrorIs(t, err, context.Canceled)
}

type tagFunc func(ctx context.Context, env Env) string

func (f tagFunc) Render(ctx context.Context, env Env) string { return f(ctx, env) }
