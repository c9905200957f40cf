package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roboco-io/imgtag/internal/imgtag"
	"github.com/roboco-io/imgtag/internal/liquid"
)

var (
	extractOutput      string
	extractFormat      string
	extractAll         bool
	extractPrettyPrint bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "페이지에서 {% img %} 태그의 속성 추출",
	Long: `페이지 소스의 {% img %} 태그를 파싱하여 속성을 추출합니다.

렌더링이나 이미지 크기 조회 없이 파싱 결과만 출력합니다.
문법 오류가 있는 태그는 attributes가 null로 표시됩니다.
출력 형식은 JSON 또는 텍스트(요약)를 지원합니다.

예시:
  imgtag extract post.md
  imgtag extract post.md -o tags.json
  imgtag extract post.md --format text
  imgtag extract post.md --all`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "json", "출력 형식 (json, text)")
	extractCmd.Flags().BoolVar(&extractAll, "all", false, "등록되지 않은 태그도 포함")
	extractCmd.Flags().BoolVar(&extractPrettyPrint, "pretty", true, "JSON 들여쓰기 적용")

	rootCmd.AddCommand(extractCmd)
}

// extractedTag is one directive in extract output.
type extractedTag struct {
	liquid.Directive
	Line       int                 `json:"line"`
	Attributes *imgtag.Attributes `json:"attributes"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	src, err := os.ReadFile(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("파일을 찾을 수 없습니다: %s", inputPath)
		}
		return fmt.Errorf("파일 읽기 실패: %w", err)
	}

	reg, err := newRegistry()
	if err != nil {
		return err
	}

	tags := extractTags(string(src), reg, extractAll)

	output, err := formatExtract(tags, extractFormat)
	if err != nil {
		return fmt.Errorf("출력 포맷팅 실패: %w", err)
	}

	if extractOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	}

	if err := os.WriteFile(extractOutput, []byte(output), 0644); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "태그 추출 완료: %s\n", extractOutput)
	return nil
}

// extractTags lists the directives in src that reg would render, or every directive
// when all is set.
func extractTags(src string, reg *liquid.Registry, all bool) []extractedTag {
	tags := make([]extractedTag, 0)
	for _, d := range liquid.Directives(src) {
		if !all && !reg.Has(d.Name) {
			continue
		}
		t := extractedTag{
			Directive: d,
			Line:      strings.Count(src[:d.Start], "\n") + 1,
		}
		if d.Name == imgtag.Name {
			t.Attributes = imgtag.Parse(d.Markup)
		}
		tags = append(tags, t)
	}
	return tags
}

func formatExtract(tags []extractedTag, format string) (string, error) {
	switch format {
	case "json":
		var data []byte
		var err error
		if extractPrettyPrint {
			data, err = json.MarshalIndent(tags, "", "  ")
		} else {
			data, err = json.Marshal(tags)
		}
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text":
		return formatTagsAsText(tags), nil

	default:
		return "", fmt.Errorf("지원하지 않는 출력 형식: %s", format)
	}
}

func formatTagsAsText(tags []extractedTag) string {
	var sb strings.Builder
	for _, t := range tags {
		fmt.Fprintf(&sb, "%d: {%% %s %s %%}\n", t.Line, t.Name, t.Markup)
		if t.Name != imgtag.Name {
			continue
		}
		a := t.Attributes
		if a == nil {
			sb.WriteString("  [문법 오류]\n")
			continue
		}
		writeTextField(&sb, "class", a.Class)
		writeTextField(&sb, "src", &a.Src)
		writeTextField(&sb, "width", a.Width)
		writeTextField(&sb, "height", a.Height)
		writeTextField(&sb, "title", a.Title)
		writeTextField(&sb, "alt", a.Alt)
	}
	return sb.String()
}

func writeTextField(sb *strings.Builder, key string, v *string) {
	if v != nil {
		fmt.Fprintf(sb, "  %s: %s\n", key, *v)
	}
}
