// Package main provides localization for the termplay CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Play a video as colored text in the terminal.": "動画をカラー文字としてターミナルで再生します。",

		// Arguments and flags
		"Video file to play.":                            "再生する動画ファイル。",
		"YAML configuration file.":                       "YAML設定ファイル。",
		"Override the frame rate reported by the video.": "動画のフレームレートを上書きします。",
		"Log level (debug, info, warn, error).":          "ログレベル（debug, info, warn, error）。",
		"Suppress all log output.":                       "全てのログ出力を抑制します。",
		"Show version information.":                      "バージョン情報を表示します。",
	})
}
