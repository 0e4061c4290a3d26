package action

import (
	"io"

	"github.com/sethvargo/go-githubactions"
)

// Workflow はGitHub Actionsのワークフローコマンドを出力する
type Workflow struct {
	action *githubactions.Action
}

// NewWorkflow は新しいWorkflowを作成する
func NewWorkflow(w io.Writer) *Workflow {
	return &Workflow{action: githubactions.New(githubactions.WithWriter(w))}
}

// Debug は::debug::コマンドを出力する
func (wf *Workflow) Debug(msg string) {
	if wf == nil || wf.action == nil {
		return
	}
	wf.action.Debugf("%s", msg)
}

// Error は::error::コマンドを出力する
func (wf *Workflow) Error(msg string) {
	if wf == nil || wf.action == nil {
		return
	}
	wf.action.Errorf("%s", msg)
}
