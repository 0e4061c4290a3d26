package matcher

import (
	"fmt"
	"strings"
)

// Comparison はバージョン比較の方式
type Comparison int

const (
	// ComparisonExact は正規化せずに完全一致で比較する
	ComparisonExact Comparison = iota
	// ComparisonNormalized は区切り文字以降を取り出してから比較する
	ComparisonNormalized
)

// String returns the string representation of the comparison
func (c Comparison) String() string {
	switch c {
	case ComparisonExact:
		return "exact"
	case ComparisonNormalized:
		return "normalized"
	default:
		return "unknown"
	}
}

// ParseComparison は文字列からComparisonを取得する
func ParseComparison(s string) (Comparison, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact":
		return ComparisonExact, nil
	case "normalized":
		return ComparisonNormalized, nil
	default:
		return ComparisonExact, fmt.Errorf("unknown comparison: %s", s)
	}
}

// LegacyRename はgz→ignのような旧名称へのフォールバック設定
type LegacyRename struct {
	Enabled bool
	From    string
	To      string
}

// MatchPolicy はトレイン判定の方式をまとめた値
type MatchPolicy struct {
	Comparison   Comparison
	Separator    string
	LegacyRename LegacyRename
}

// DefaultPolicy は完全一致 + gz→ignフォールバックのポリシーを返す
func DefaultPolicy() MatchPolicy {
	return MatchPolicy{
		Comparison: ComparisonExact,
		Separator:  "-",
		LegacyRename: LegacyRename{
			Enabled: true,
			From:    "gz",
			To:      "ign",
		},
	}
}

// NormalizedPolicy は区切り文字で正規化し、フォールバックを行わないポリシーを返す
func NormalizedPolicy() MatchPolicy {
	return MatchPolicy{
		Comparison: ComparisonNormalized,
		Separator:  "-",
	}
}

// Equal はポリシーに従ってバージョンとターゲットを比較する
func (p MatchPolicy) Equal(version, target string) bool {
	if p.Comparison == ComparisonNormalized {
		return Normalize(version, p.Separator) == Normalize(target, p.Separator)
	}
	return version == target
}

// Rename は旧名称を返す。フォールバック対象でない場合はfalse
func (p MatchPolicy) Rename(library string) (string, bool) {
	if !p.LegacyRename.Enabled || p.LegacyRename.From == "" {
		return library, false
	}
	if !strings.Contains(library, p.LegacyRename.From) {
		return library, false
	}
	return strings.Replace(library, p.LegacyRename.From, p.LegacyRename.To, 1), true
}

// Normalize は最初の区切り文字より後ろの部分を返す。
// 区切り文字が無い場合は元の文字列をそのまま返す
func Normalize(version, sep string) string {
	if sep == "" {
		return version
	}
	if _, after, found := strings.Cut(version, sep); found {
		return after
	}
	return version
}
