package manifest

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrNoRepositories はマニフェストにrepositoriesマッピングが無い場合のエラー
var ErrNoRepositories = errors.New("manifest has no repositories mapping")

// LibraryEntry はマニフェスト内の1ライブラリのレコード
type LibraryEntry struct {
	Type    string
	URL     string
	Version string

	// versioned はversionがスカラー値として存在するか
	versioned bool
}

// HasVersion はversionがスカラー値として記載されているかを返す。
// falseのエントリはどのターゲットにも一致しない
func (e LibraryEntry) HasVersion() bool {
	return e.versioned
}

// UnmarshalYAML はエントリを読み込む。マッピング以外の値はversion無しのエントリになる
func (e *LibraryEntry) UnmarshalYAML(node *yaml.Node) error {
	*e = LibraryEntry{}
	if node.Kind != yaml.MappingNode {
		return nil
	}

	var raw struct {
		Type    yaml.Node `yaml:"type"`
		URL     yaml.Node `yaml:"url"`
		Version yaml.Node `yaml:"version"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	e.Type, _ = scalar(&raw.Type)
	e.URL, _ = scalar(&raw.URL)
	e.Version, e.versioned = scalar(&raw.Version)
	return nil
}

// scalar はnull以外のスカラー値をそのままの文字列で返す
func scalar(n *yaml.Node) (string, bool) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() == "!!null" {
		return "", false
	}
	return n.Value, true
}

// Manifest は1トレイン分のマニフェスト。パース後は変更しない
type Manifest struct {
	path         string
	repositories map[string]*LibraryEntry
}

type document struct {
	Repositories map[string]*LibraryEntry `yaml:"repositories"`
}

// ParseError はマニフェストのパースに失敗したことを表す
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse manifest %s: %v", e.Path, e.Err)
}

// Unwrap returns the original error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse はテキストをManifestとして解釈する
func Parse(path, text string) (*Manifest, error) {
	var doc document
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if doc.Repositories == nil {
		return nil, &ParseError{Path: path, Err: ErrNoRepositories}
	}

	return &Manifest{
		path:         path,
		repositories: doc.Repositories,
	}, nil
}

// Path はマニフェストのパスを返す
func (m *Manifest) Path() string {
	return m.path
}

// Lookup はライブラリのエントリを返す。存在しない場合と値がnullの場合はfalse
func (m *Manifest) Lookup(library string) (LibraryEntry, bool) {
	entry, ok := m.repositories[library]
	if !ok || entry == nil {
		return LibraryEntry{}, false
	}
	return *entry, true
}

// Len は登録されているライブラリ数を返す
func (m *Manifest) Len() int {
	return len(m.repositories)
}

// Fetcher はマニフェストファイルの内容を取得する
type Fetcher interface {
	FetchManifest(ctx context.Context, path string) (string, error)
}

// Load はFetcherで取得したマニフェストをパースする
func Load(ctx context.Context, f Fetcher, path string) (*Manifest, error) {
	text, err := f.FetchManifest(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest %s: %w", path, err)
	}
	return Parse(path, text)
}
