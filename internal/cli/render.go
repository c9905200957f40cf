package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/roboco-io/imgtag/internal/config"
	"github.com/roboco-io/imgtag/internal/liquid"
	"github.com/roboco-io/imgtag/internal/page"
)

var (
	renderOutput      string
	renderSiteRoot    string
	renderNoLookup    bool
	renderTimeout     time.Duration
	renderMarkdown    bool
	renderConcurrency int
	renderVerbose     bool
	renderQuiet       bool
	renderDisable     []string
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "페이지의 {% img %} 태그를 HTML로 변환",
	Long: `페이지 소스의 {% img %} 태그를 HTML로 변환합니다.

등록되지 않은 태그({% highlight %} 등)는 그대로 유지됩니다.
caption 클래스가 있고 width가 없으면 이미지 크기를 조회합니다
(로컬 파일 또는 http/https URL).

환경 변수:
  IMGTAG_SITE_ROOT=xxx   상대 경로 이미지의 접두사
  IMGTAG_NO_LOOKUP=true  이미지 크기 조회 비활성화
  IMGTAG_CONFIG=xxx      설정 파일 경로

예시:
  imgtag render post.md
  imgtag render post.md -o post.html --markdown
  imgtag render index.html --site-root public --no-lookup
  imgtag render post.md --disable img`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	renderCmd.Flags().StringVar(&renderSiteRoot, "site-root", "", "상대 경로 이미지의 접두사 (기본: 설정값)")
	renderCmd.Flags().BoolVar(&renderNoLookup, "no-lookup", false, "이미지 크기 조회 비활성화")
	renderCmd.Flags().DurationVar(&renderTimeout, "timeout", 0, "원격 이미지 조회 제한 시간 (기본: 설정값)")
	renderCmd.Flags().BoolVar(&renderMarkdown, "markdown", false, "Markdown 페이지를 HTML로 변환")
	renderCmd.Flags().IntVarP(&renderConcurrency, "concurrency", "j", 0, "동시 렌더링 태그 수 (기본: 설정값)")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "상세 출력")
	renderCmd.Flags().BoolVarP(&renderQuiet, "quiet", "q", false, "조용한 모드")
	renderCmd.Flags().StringSliceVar(&renderDisable, "disable", nil, "변환하지 않을 태그 (예: --disable img)")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	setupLogging(renderVerbose && !renderQuiet)

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("파일을 찾을 수 없습니다: %s", inputPath)
	}

	format := page.DetectFormat(inputPath)
	if format == page.FormatUnknown {
		return fmt.Errorf("지원하지 않는 파일 형식입니다: %s", filepath.Ext(inputPath))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRenderFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("잘못된 옵션: %w", err)
	}

	if !renderQuiet && renderVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "입력 파일: %s\n", inputPath)
		fmt.Fprintf(cmd.ErrOrStderr(), "파일 형식: %s\n", format)
		fmt.Fprintf(cmd.ErrOrStderr(), "사이트 루트: %s\n", cfg.SiteRoot)
	}

	src, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("파일 읽기 실패: %w", err)
	}

	reg, err := newRegistry()
	if err != nil {
		return err
	}
	for _, name := range renderDisable {
		if err := reg.Unregister(name); err != nil {
			return fmt.Errorf("태그 비활성화 실패: %w", err)
		}
	}
	exp := liquid.NewExpander(reg, newEnv(cfg))
	exp.Concurrency = cfg.Render.Concurrency

	opts := page.DefaultOptions()
	opts.Markdown = cfg.Render.Markdown

	out, err := page.Process(cmd.Context(), exp, string(src), format, opts)
	if err != nil {
		return fmt.Errorf("페이지 변환 실패: %w", err)
	}

	log.Debug().Str("file", inputPath).Int("bytes", len(out)).Msg("page rendered")

	if renderOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	if err := os.WriteFile(renderOutput, []byte(out), 0644); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	if !renderQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "변환 완료: %s\n", renderOutput)
	}
	return nil
}

// applyRenderFlags lets explicitly set flags override the loaded configuration.
func applyRenderFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("site-root") {
		cfg.SiteRoot = renderSiteRoot
	}
	if renderNoLookup {
		cfg.Lookup.Enabled = false
	}
	if flags.Changed("timeout") {
		cfg.Lookup.Timeout = renderTimeout
	}
	if renderMarkdown {
		cfg.Render.Markdown = true
	}
	if flags.Changed("concurrency") {
		cfg.Render.Concurrency = renderConcurrency
	}
}
