package action

import (
	"fmt"

	"github.com/douhashi/gzlabeler/internal/matcher"
)

// Outcome は1回の実行結果。NotApplicable, MissingCredential, Ranのいずれか
type Outcome interface {
	fmt.Stringer
	outcome()
}

// NotApplicable はイベントがプルリクエストではなかったため何もしなかったことを表す
type NotApplicable struct {
	Reason string
}

func (NotApplicable) outcome() {}

func (o NotApplicable) String() string {
	return "not applicable: " + o.Reason
}

// MissingCredential はトークンが無かったため何もしなかったことを表す
type MissingCredential struct{}

func (MissingCredential) outcome() {}

func (MissingCredential) String() string {
	return "missing credential"
}

// Ran は全トレインを評価したことを表す
type Ran struct {
	PullRequest PullRequestContext
	Labels      matcher.LabelSet
	Results     []matcher.Result
	// Published はラベルの付与を行ったかどうか
	Published bool
}

func (Ran) outcome() {}

func (o Ran) String() string {
	return fmt.Sprintf("ran: labels=%s published=%t", o.Labels, o.Published)
}
