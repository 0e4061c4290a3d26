package train

import (
	"errors"
	"fmt"
)

// Kind はトレインの種別
type Kind int

const (
	// KindCollection はローリングリリースのコレクション (citadel, fortress, garden)
	KindCollection Kind = iota
	// KindClassic は旧来のバージョン番号付きリリース (gazebo9, gazebo11)
	KindClassic
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindCollection:
		return "collection"
	case KindClassic:
		return "classic"
	default:
		return "unknown"
	}
}

// Train はラベル付けの対象となるリリーストレイン
type Train struct {
	Name  string
	Kind  Kind
	Label string
}

// ManifestPath はトレインのマニフェストファイルのパスを返す
func (t Train) ManifestPath() string {
	if t.Kind == KindCollection {
		return "collection-" + t.Name + ".yaml"
	}
	return t.Name + ".yaml"
}

// Catalog はコレクションとクラシックの2つの順序付きトレイン一覧
type Catalog struct {
	Collections []Train
	Classics    []Train
}

// Definition は設定ファイルから読み込むトレイン定義
type Definition struct {
	Name  string `mapstructure:"name"`
	Label string `mapstructure:"label"`
}

// DefaultCollections はデフォルトのコレクション定義
func DefaultCollections() []Definition {
	return []Definition{
		{Name: "citadel", Label: "🏰 citadel"},
		{Name: "fortress", Label: "🏯 fortress"},
		{Name: "garden", Label: "🌱 garden"},
	}
}

// DefaultClassics はデフォルトのクラシックバージョン定義
func DefaultClassics() []Definition {
	return []Definition{
		{Name: "gazebo9", Label: "Gazebo 9️"},
		{Name: "gazebo11", Label: "Gazebo 1️1️"},
	}
}

// DefaultCatalog はデフォルトのトレイン一覧を返す
func DefaultCatalog() Catalog {
	c, _ := NewCatalog(DefaultCollections(), DefaultClassics())
	return c
}

// NewCatalog は定義からCatalogを作成する
func NewCatalog(collections, classics []Definition) (Catalog, error) {
	var c Catalog
	for i, d := range collections {
		t, err := fromDefinition(d, KindCollection)
		if err != nil {
			return Catalog{}, fmt.Errorf("collections[%d]: %w", i, err)
		}
		c.Collections = append(c.Collections, t)
	}
	for i, d := range classics {
		t, err := fromDefinition(d, KindClassic)
		if err != nil {
			return Catalog{}, fmt.Errorf("classics[%d]: %w", i, err)
		}
		c.Classics = append(c.Classics, t)
	}
	return c, nil
}

func fromDefinition(d Definition, kind Kind) (Train, error) {
	if d.Name == "" {
		return Train{}, errors.New("train name is required")
	}
	if d.Label == "" {
		return Train{}, fmt.Errorf("label is required for train %s", d.Name)
	}
	return Train{Name: d.Name, Kind: kind, Label: d.Label}, nil
}

// All はコレクション、クラシックの順で全トレインを返す
func (c Catalog) All() []Train {
	all := make([]Train, 0, len(c.Collections)+len(c.Classics))
	all = append(all, c.Collections...)
	all = append(all, c.Classics...)
	return all
}
