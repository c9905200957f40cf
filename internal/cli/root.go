// Package cli implements the imgtag command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/roboco-io/imgtag/internal/config"
	"github.com/roboco-io/imgtag/internal/dimension"
	"github.com/roboco-io/imgtag/internal/imgtag"
	"github.com/roboco-io/imgtag/internal/liquid"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "imgtag",
	Short: "{% img %} 태그를 HTML 이미지 요소로 변환",
	Long: `imgtag는 정적 사이트 페이지 소스에 포함된 {% img %} 태그를
HTML <img> 요소(또는 캡션 래퍼)로 변환합니다.

태그 문법:
  {% img [class name(s)] /url/to/image [width [height]] [title text | "title" "alt"] %}

예시:
  imgtag render post.md
  imgtag render post.md -o post.html --markdown
  imgtag extract post.md
  imgtag config show`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(false)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "imgtag %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "설정 파일 경로 (기본: ~/.imgtag/config.yaml)")
	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// setupLogging routes zerolog to stderr in console format.
func setupLogging(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// newLoader returns the loader for --config, or the default location.
func newLoader() (*config.Loader, error) {
	if configPath != "" {
		return config.NewLoaderWithPath(configPath), nil
	}
	return config.NewLoader()
}

// loadConfig loads the configuration file and applies environment overrides.
func loadConfig() (*config.Config, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("설정 로드 실패: %w", err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// newRegistry returns a registry with every built-in tag installed.
func newRegistry() (*liquid.Registry, error) {
	reg := liquid.NewRegistry()
	if err := imgtag.Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// newEnv builds the tag environment from cfg.
func newEnv(cfg *config.Config) liquid.Env {
	env := liquid.Env{SiteRoot: cfg.SiteRoot}
	if cfg.Lookup.Enabled {
		env.Lookup = dimension.NewAuto(dimension.HTTPConfig{
			Timeout:   cfg.Lookup.Timeout,
			MaxBytes:  cfg.Lookup.MaxBytes,
			UserAgent: cfg.Lookup.UserAgent,
		})
	}
	return env
}
