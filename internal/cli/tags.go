package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// tagDescriptions documents the built-in tags for the tags command.
var tagDescriptions = map[string]string{
	"img": `{% img [class] /path [width [height]] [title | "title" "alt"] %}`,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "사용 가능한 태그 목록",
	Long: `render 명령에서 변환되는 태그 목록을 표시합니다.

목록에 없는 태그는 변환 없이 그대로 출력됩니다.`,
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "태그\t문법")
	fmt.Fprintln(w, "----\t----")
	for _, name := range reg.List() {
		desc, ok := tagDescriptions[name]
		if !ok {
			desc = "-"
		}
		fmt.Fprintf(w, "%s\t%s\n", name, desc)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n총 %d개 태그\n", reg.Count())
	return nil
}
