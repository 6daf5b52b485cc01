package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Session (info)
		"Playing %s":                       "%s を再生中",
		"Frame grid %s, queue capacity %d": "フレームグリッド %s, キュー容量 %d",
		"Playback %s after %d frames":      "%d フレーム表示後に再生が%sしました",
		"Interrupted, shutting down...":    "中断されました。シャットダウン中...",

		"Source opened: %s codec, %dx%d, %.2f fps":          "ソースを開きました: %s コーデック, %dx%d, %.2f fps",
		"Producer stats: %d decoded, %d queued, %d dropped": "プロデューサー統計: デコード %d, キュー投入 %d, 破棄 %d",

		// Producer / playback (debug)
		"End of stream after %d frames":      "%d フレームでストリームが終了しました",
		"Producer cancelled after %d frames": "%d フレームでプロデューサーがキャンセルされました",
		"Queue full, dropped frame %d":       "キューが満杯のためフレーム %d を破棄しました",
		"Key %s: %s":                         "キー %s: %s",
		"Playback ended after %d frames":     "%d フレームで再生が終了しました",
		"Flush failed: %v":                   "出力のフラッシュに失敗しました: %v",

		"Probe failed, using decoder metadata: %v":    "メタデータの取得に失敗しました。デコーダーの値を使用します: %v",
		"Terminal size unavailable, using %dx%d: %v": "端末サイズを取得できません。%dx%d を使用します: %v",

		// Warnings
		"Decode failed after %d frames: %v": "%d フレーム後にデコードに失敗しました: %v",
		"Convert failed on frame %d: %v":    "フレーム %d の変換に失敗しました: %v",

		// Screen
		"End of video. Press any key to exit.": "動画の終わりです。任意のキーで終了します。",

		// Errors
		"Failed to open %s: %v": "%s を開けませんでした: %v",
	})
}
