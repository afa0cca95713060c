package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

//go:embed catalog.json
var defaultCatalog []byte

//go:embed schema.json
var schemaDoc []byte

// SupportedMajor is the catalog format major version this build reads.
const SupportedMajor = "v1"

// ErrInvalidCatalog wraps every validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Category groups lessons on the dashboard.
type Category string

const (
	CategoryBeginner     Category = "beginner"
	CategoryIntermediate Category = "intermediate"
	CategoryAdvanced     Category = "advanced"
)

// Categories returns the dashboard sections in display order.
func Categories() []Category {
	return []Category{CategoryBeginner, CategoryIntermediate, CategoryAdvanced}
}

// Label returns the Portuguese section heading.
func (c Category) Label() string {
	switch c {
	case CategoryBeginner:
		return "Iniciante (A1-A2)"
	case CategoryIntermediate:
		return "Intermediário (B1-B2)"
	case CategoryAdvanced:
		return "Avançado (C1-C2)"
	}
	return string(c)
}

type Tip struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Lesson struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Level           string   `json:"level"`
	Category        Category `json:"category"`
	Progress        int      `json:"progress"`
	DurationMinutes int      `json:"duration_minutes"`
}

type Subtitles struct {
	EN string `json:"en"`
	PT string `json:"pt"`
}

type VocabularyItem struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Context     string `json:"context"`
}

type Idiom struct {
	Phrase      string `json:"phrase"`
	Meaning     string `json:"meaning"`
	Explanation string `json:"explanation"`
}

type GrammarNote struct {
	Topic string `json:"topic"`
	Note  string `json:"note"`
}

// LessonContent is the study material shown beside the video player.
type LessonContent struct {
	Subtitles  Subtitles        `json:"subtitles"`
	Vocabulary []VocabularyItem `json:"vocabulary"`
	Idioms     []Idiom          `json:"idioms"`
	Grammar    []GrammarNote    `json:"grammar"`
}

// Scenario is a conversation context with its opening line.
type Scenario struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Greeting string `json:"greeting"`
}

type FillBlank struct {
	Before string `json:"before"`
	After  string `json:"after"`
	Answer string `json:"answer"`
}

type DragDrop struct {
	Instruction string   `json:"instruction"`
	Words       []string `json:"words"`
}

type Quiz struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

type ListenWrite struct {
	Prompt string `json:"prompt"`
}

type Speaking struct {
	Phrase string `json:"phrase"`
}

// Activities holds the content of the five activity formats.
type Activities struct {
	FillBlank   FillBlank   `json:"fill_blank"`
	DragDrop    DragDrop    `json:"drag_drop"`
	Quiz        Quiz        `json:"quiz"`
	ListenWrite ListenWrite `json:"listen_write"`
	Speaking    Speaking    `json:"speaking"`
}

type Favorite struct {
	Title string `json:"title"`
	Level string `json:"level"`
}

type HistoryEntry struct {
	Scenario string `json:"scenario"`
	Date     string `json:"date"`
	Score    int    `json:"score"`
}

type Skill struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Profile struct {
	Name      string         `json:"name"`
	Since     string         `json:"since"`
	Favorites []Favorite     `json:"favorites"`
	History   []HistoryEntry `json:"history"`
	Skills    []Skill        `json:"skills"`
}

// Catalog is the read-only reference data. It is loaded once at startup
// and never mutated afterwards.
type Catalog struct {
	Version        string        `json:"version"`
	Tip            Tip           `json:"tip"`
	Lessons        []Lesson      `json:"lessons"`
	FeaturedLesson int           `json:"featured_lesson"`
	LessonContent  LessonContent `json:"lesson_content"`
	Scenarios      []Scenario    `json:"scenarios"`
	QuickPhrases   []string      `json:"quick_phrases"`
	Activities     Activities    `json:"activities"`
	Profile        Profile       `json:"profile"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file. An empty path selects the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse validates raw catalog JSON against the schema, decodes it and
// checks the cross-references the schema cannot express.
func Parse(data []byte) (*Catalog, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrInvalidCatalog, err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	var c Catalog
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalog, err)
	}
	if err := c.check(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return &c, nil
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// compiledSchema compiles the embedded schema once.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaDoc, &def); err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://catalog.json"
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		schema, schemaErr = c.Compile(url)
	})
	return schema, schemaErr
}

func (c *Catalog) check() error {
	if !semver.IsValid(c.Version) {
		return fmt.Errorf("version %q is not a semantic version", c.Version)
	}
	if major := semver.Major(c.Version); major != SupportedMajor {
		return fmt.Errorf("version %s not supported (want %s.x)", c.Version, SupportedMajor)
	}

	ids := make(map[int]bool, len(c.Lessons))
	for _, l := range c.Lessons {
		if ids[l.ID] {
			return fmt.Errorf("duplicate lesson id %d", l.ID)
		}
		ids[l.ID] = true
	}
	if !ids[c.FeaturedLesson] {
		return fmt.Errorf("featured lesson %d not in lessons", c.FeaturedLesson)
	}

	seen := make(map[string]bool, len(c.Scenarios))
	for _, s := range c.Scenarios {
		if seen[s.ID] {
			return fmt.Errorf("duplicate scenario %q", s.ID)
		}
		seen[s.ID] = true
	}

	q := c.Activities.Quiz
	if q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("quiz correct_index %d out of range (%d options)", q.CorrectIndex, len(q.Options))
	}
	return nil
}

// Lesson returns the lesson with the given id.
func (c *Catalog) Lesson(id int) (Lesson, bool) {
	for _, l := range c.Lessons {
		if l.ID == id {
			return l, true
		}
	}
	return Lesson{}, false
}

// Featured returns the lesson played by the lesson screen.
func (c *Catalog) Featured() Lesson {
	l, _ := c.Lesson(c.FeaturedLesson)
	return l
}

// ContinueWatching returns lessons with some progress.
func (c *Catalog) ContinueWatching() []Lesson {
	var out []Lesson
	for _, l := range c.Lessons {
		if l.Progress > 0 {
			out = append(out, l)
		}
	}
	return out
}

// ByCategory returns the lessons in one dashboard section.
func (c *Catalog) ByCategory(cat Category) []Lesson {
	var out []Lesson
	for _, l := range c.Lessons {
		if l.Category == cat {
			out = append(out, l)
		}
	}
	return out
}

// Scenario looks up a scenario by id.
func (c *Catalog) Scenario(id string) (Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

// Greetings maps scenario ids to their opening lines.
func (c *Catalog) Greetings() map[string]string {
	out := make(map[string]string, len(c.Scenarios))
	for _, s := range c.Scenarios {
		out[s.ID] = s.Greeting
	}
	return out
}

// ScenarioName returns the display name for a scenario id, falling back
// to the id itself.
func (c *Catalog) ScenarioName(id string) string {
	if s, ok := c.Scenario(id); ok {
		return s.Name
	}
	return id
}
