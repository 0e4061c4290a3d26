package matcher

import (
	"context"
	"fmt"
	"sync"

	"github.com/douhashi/gzlabeler/internal/testutil/helpers"
)

// fakeFetcher はパスごとに固定の内容を返すFetcher
type fakeFetcher struct {
	mu     sync.Mutex
	files  map[string]string
	errors map[string]error
	calls  []string
}

func newFakeFetcher(files map[string]string) *fakeFetcher {
	return &fakeFetcher{
		files:  files,
		errors: make(map[string]error),
	}
}

func (f *fakeFetcher) FetchManifest(ctx context.Context, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, path)
	if err, ok := f.errors[path]; ok {
		return "", err
	}
	text, ok := f.files[path]
	if !ok {
		return "", fmt.Errorf("no such file: %s", path)
	}
	return text, nil
}

func (f *fakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// manifestYAML はライブラリ名→バージョンからマニフェストのYAMLを作る
func manifestYAML(versions map[string]string) string {
	return helpers.ManifestYAML(versions)
}

// emptyDistro は全トレインが空のマニフェストを返す
func emptyDistro() map[string]string {
	return map[string]string{
		"collection-citadel.yaml":  manifestYAML(nil),
		"collection-fortress.yaml": manifestYAML(nil),
		"collection-garden.yaml":   manifestYAML(nil),
		"gazebo9.yaml":             manifestYAML(nil),
		"gazebo11.yaml":            manifestYAML(nil),
	}
}
