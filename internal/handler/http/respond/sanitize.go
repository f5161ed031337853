package respond

import (
	"regexp"
)

var (
	// 接続文字列内のパスワードパターン（postgres:// や redis:// の DSN）
	dsnPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)

	// 認証トークンパターン
	// 注意: 既にマスクされた文字列（*を含む）にマッチしないようにする
	bearerTokenPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9-_.]{10,}`)
	apiKeyParamPattern = regexp.MustCompile(`(?i)(api[_-]?key|token|secret)=[a-zA-Z0-9-_.]{8,}`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	// DSNパスワードのマスク
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	// トークンのマスク
	msg = bearerTokenPattern.ReplaceAllString(msg, "Bearer ****")
	msg = apiKeyParamPattern.ReplaceAllString(msg, "$1=****")

	return msg
}
