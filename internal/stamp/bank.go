package stamp

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// BlendMode selects the arithmetic rule combining a stamp sample with the
// existing cell height.
type BlendMode int

const (
	BlendAdd BlendMode = iota
	BlendSubtract
	BlendMultiply
	BlendSet
	BlendMax
	BlendMin
)

// String returns the lowercase mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendAdd:
		return "add"
	case BlendSubtract:
		return "subtract"
	case BlendMultiply:
		return "multiply"
	case BlendSet:
		return "set"
	case BlendMax:
		return "max"
	case BlendMin:
		return "min"
	default:
		return "unknown"
	}
}

// ParseBlendMode maps a mode name to its BlendMode, defaulting to add.
func ParseBlendMode(name string) BlendMode {
	switch strings.ToLower(name) {
	case "subtract":
		return BlendSubtract
	case "multiply":
		return BlendMultiply
	case "set":
		return BlendSet
	case "max":
		return BlendMax
	case "min":
		return BlendMin
	default:
		return BlendAdd
	}
}

// Stamp is a named, categorized height patch. HeightScale and BaseHeight
// are expressed in world height units; MinSize/MaxSize bound the usable
// world size of one application.
type Stamp struct {
	Name         string
	Category     string
	Pattern      *Pattern
	HeightScale  float64
	BaseHeight   float64
	DefaultBlend BlendMode
	MinSize      float64
	MaxSize      float64
}

// Default metadata for stamps loaded from bare image files.
const (
	defaultHeightScale = 60.0
	defaultMinSize     = 8.0
	defaultMaxSize     = 512.0
)

// Bank is a read-only-at-apply-time catalog of stamps keyed by name.
type Bank struct {
	stamps map[string]Stamp
}

// NewBank returns an empty stamp catalog.
func NewBank() *Bank {
	return &Bank{stamps: map[string]Stamp{}}
}

// Register adds or replaces a stamp. Stamps without a name are rejected.
func (b *Bank) Register(s Stamp) error {
	if s.Name == "" {
		return fmt.Errorf("stamp: empty name")
	}
	if s.MaxSize <= 0 {
		s.MinSize = defaultMinSize
		s.MaxSize = defaultMaxSize
	}
	b.stamps[s.Name] = s
	return nil
}

// Get looks up a stamp by name.
func (b *Bank) Get(name string) (Stamp, bool) {
	s, ok := b.stamps[name]
	return s, ok
}

// List returns all stamps sorted by name.
func (b *Bank) List() []Stamp {
	out := make([]Stamp, 0, len(b.stamps))
	for _, s := range b.stamps {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LoadDir walks a directory of PNG height patterns and registers one stamp
// per image. The immediate parent directory names the category; the file
// base names the stamp. Undecodable files are skipped with an error only
// when nothing at all could be loaded.
func (b *Bank) LoadDir(dir string) (int, error) {
	loaded := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".png") {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return nil
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		category := filepath.Base(filepath.Dir(path))
		if category == filepath.Base(dir) {
			category = "uncategorized"
		}
		stamp := Stamp{
			Name:         name,
			Category:     category,
			Pattern:      PatternFromImage(img),
			HeightScale:  defaultHeightScale,
			DefaultBlend: BlendAdd,
			MinSize:      defaultMinSize,
			MaxSize:      defaultMaxSize,
		}
		if regErr := b.Register(stamp); regErr == nil {
			loaded++
		}
		return nil
	})
	if err != nil {
		return loaded, err
	}
	if loaded == 0 {
		return 0, fmt.Errorf("stamp: no patterns found in %s", dir)
	}
	return loaded, nil
}
