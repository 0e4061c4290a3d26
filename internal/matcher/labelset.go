package matcher

import "strings"

// LabelSet は順序付きのラベル一覧。作成後は変更できない
type LabelSet struct {
	labels []string
}

// NewLabelSet は与えられた順序でLabelSetを作成する
func NewLabelSet(labels ...string) LabelSet {
	if len(labels) == 0 {
		return LabelSet{}
	}
	copied := make([]string, len(labels))
	copy(copied, labels)
	return LabelSet{labels: copied}
}

// Labels はラベルのコピーを返す
func (s LabelSet) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// Len はラベル数を返す
func (s LabelSet) Len() int {
	return len(s.labels)
}

// IsEmpty はラベルが1つも無い場合にtrueを返す
func (s LabelSet) IsEmpty() bool {
	return len(s.labels) == 0
}

// String returns the labels joined by comma
func (s LabelSet) String() string {
	return "[" + strings.Join(s.labels, ", ") + "]"
}
