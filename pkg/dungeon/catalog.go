package dungeon

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/ai"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/effects"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/skills"
)

// ErrUnknownBlueprint - в каталоге нет такого шаблона.
var ErrUnknownBlueprint = errors.New("unknown blueprint")

//go:embed data/catalog.schema.json
var catalogSchema string

//go:embed data/catalog.yaml
var defaultCatalog []byte

// variantDef - вариант эффекта, AI или behaviour: вид + параметры.
type variantDef struct {
	Kind   string         `yaml:"kind"`
	Params map[string]any `yaml:"params"`
}

type skillDef struct {
	Name      string       `yaml:"name"`
	Combo     []string     `yaml:"combo"`
	CoolDown  int          `yaml:"cooldown"`
	Priority  int          `yaml:"priority"`
	Range     int          `yaml:"range"`
	Animation string       `yaml:"animation"`
	Self      []variantDef `yaml:"self"`
	Target    []variantDef `yaml:"target"`
	Empty     []variantDef `yaml:"empty"`
}

type blueprintDef struct {
	Name     string         `yaml:"name"`
	Sprite   string         `yaml:"sprite"`
	Faction  string         `yaml:"faction"`
	Tags     []string       `yaml:"tags"`
	Speed    float64        `yaml:"speed"`
	Static   bool           `yaml:"static"`
	Dressing bool           `yaml:"dressing"`
	Vars     map[string]int `yaml:"vars"`
	Skills   []string       `yaml:"skills"`
	Effects  []variantDef   `yaml:"effects"`
	AI       *variantDef    `yaml:"ai"`
}

type catalogFile struct {
	Skills     map[string]skillDef     `yaml:"skills"`
	Blueprints map[string]blueprintDef `yaml:"blueprints"`
}

// Catalog - каталог блюпринтов, реализует domain.Factory.
// Всё собирается один раз при загрузке: ошибки в каталоге видны сразу, а не посреди боя.
type Catalog struct {
	skills      map[string]*domain.Skill
	descriptors map[string]*domain.EntityDescriptor
}

var _ domain.Factory = (*Catalog)(nil)

// DefaultCatalog - встроенный каталог.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(defaultCatalog)
}

// LoadCatalogFile читает каталог с диска. Пустой путь - встроенный каталог.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := LoadCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadCatalog проверяет YAML по схеме и собирает все шаблоны.
func LoadCatalog(raw []byte) (*Catalog, error) {
	if err := validateCatalog(raw); err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		skills:      make(map[string]*domain.Skill, len(file.Skills)),
		descriptors: make(map[string]*domain.EntityDescriptor, len(file.Blueprints)),
	}
	for _, id := range sortedKeys(file.Skills) {
		s, err := buildSkill(id, file.Skills[id])
		if err != nil {
			return nil, fmt.Errorf("skill %s: %w", id, err)
		}
		c.skills[id] = s
	}
	for _, id := range sortedKeys(file.Blueprints) {
		d, err := c.buildDescriptor(id, file.Blueprints[id])
		if err != nil {
			return nil, fmt.Errorf("blueprint %s: %w", id, err)
		}
		c.descriptors[id] = d
	}
	if err := c.checkReferences(file); err != nil {
		return nil, err
	}
	return c, nil
}

// validateCatalog: YAML -> JSON-совместимое дерево -> JSON Schema.
func validateCatalog(raw []byte) error {
	schema, err := jsonschema.CompileString("catalog.schema.json", catalogSchema)
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("catalog is not JSON-compatible: %w", err)
	}
	var tree any
	if err := json.Unmarshal(js, &tree); err != nil {
		return err
	}
	if err := schema.Validate(tree); err != nil {
		return fmt.Errorf("catalog schema: %w", err)
	}
	return nil
}

func buildSkill(id string, def skillDef) (*domain.Skill, error) {
	s := &domain.Skill{
		ID:        id,
		Name:      def.Name,
		CoolDown:  def.CoolDown,
		Priority:  def.Priority,
		Range:     def.Range,
		Animation: def.Animation,
	}
	if len(def.Combo) > 0 {
		s.SetComboSet(def.Combo)
	}

	var err error
	if s.Self, err = buildBehaviours(def.Self); err != nil {
		return nil, fmt.Errorf("self: %w", err)
	}
	if s.Target, err = buildBehaviours(def.Target); err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	if s.Empty, err = buildBehaviours(def.Empty); err != nil {
		return nil, fmt.Errorf("empty: %w", err)
	}
	return s, nil
}

func buildBehaviours(defs []variantDef) ([]domain.Behaviour, error) {
	out := make([]domain.Behaviour, 0, len(defs))
	for i, d := range defs {
		b, err := skills.New(d.Kind, domain.Params(d.Params))
		if err != nil {
			return nil, fmt.Errorf("#%d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func (c *Catalog) buildDescriptor(id string, def blueprintDef) (*domain.EntityDescriptor, error) {
	d := &domain.EntityDescriptor{
		TemplateID:  id,
		Name:        def.Name,
		Sprite:      def.Sprite,
		Faction:     def.Faction,
		Tags:        slices.Clone(def.Tags),
		SpeedFactor: def.Speed,
		Static:      def.Static,
		Dressing:    def.Dressing,
		Vars:        make(map[string]int, len(def.Vars)),
	}
	for k, v := range def.Vars {
		d.Vars[k] = v
	}
	for _, sid := range def.Skills {
		s, ok := c.skills[sid]
		if !ok {
			return nil, fmt.Errorf("unknown skill %q", sid)
		}
		d.Skills = append(d.Skills, s)
	}
	for i, ed := range def.Effects {
		eff, err := effects.New(ed.Kind, domain.Params(ed.Params))
		if err != nil {
			return nil, fmt.Errorf("effect #%d: %w", i, err)
		}
		d.Effects = append(d.Effects, eff)
	}
	if def.AI != nil {
		a, err := ai.New(def.AI.Kind, domain.Params(def.AI.Params))
		if err != nil {
			return nil, fmt.Errorf("ai: %w", err)
		}
		d.AI = a
	}
	return d, nil
}

// checkReferences - ссылки на шаблоны внутри параметров (спавн, лава) и состав комбо.
func (c *Catalog) checkReferences(file catalogFile) error {
	for _, id := range sortedKeys(file.Skills) {
		def := file.Skills[id]
		for _, member := range def.Combo {
			if _, ok := c.skills[member]; !ok {
				return fmt.Errorf("skill %s: combo member %q is not a skill", id, member)
			}
		}
		for _, list := range [][]variantDef{def.Self, def.Target, def.Empty} {
			for _, b := range list {
				if b.Kind != skills.KindSpawn {
					continue
				}
				if tpl := domain.Params(b.Params).String("template", ""); !c.Has(tpl) {
					return fmt.Errorf("skill %s: spawns %w %q", id, ErrUnknownBlueprint, tpl)
				}
			}
		}
	}
	for _, id := range sortedKeys(file.Blueprints) {
		def := file.Blueprints[id]
		if def.AI == nil || def.AI.Kind != ai.KindLavaEmitter {
			continue
		}
		if tpl := domain.Params(def.AI.Params).String("lava_template", ""); !c.Has(tpl) {
			return fmt.Errorf("blueprint %s: emits %w %q", id, ErrUnknownBlueprint, tpl)
		}
	}
	return nil
}

// Instantiate отдаёт копию описания. Скиллы, AI и эффекты клонирует симулятор.
func (c *Catalog) Instantiate(templateID string) (*domain.EntityDescriptor, error) {
	d, ok := c.descriptors[templateID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlueprint, templateID)
	}
	cp := *d
	cp.Tags = slices.Clone(d.Tags)
	cp.Skills = slices.Clone(d.Skills)
	cp.Effects = slices.Clone(d.Effects)
	cp.Vars = make(map[string]int, len(d.Vars))
	for k, v := range d.Vars {
		cp.Vars[k] = v
	}
	return &cp, nil
}

func (c *Catalog) Has(templateID string) bool {
	_, ok := c.descriptors[templateID]
	return ok
}

// Templates - все шаблоны по алфавиту.
func (c *Catalog) Templates() []string {
	return sortedKeys(c.descriptors)
}

// Skill - собранный скилл каталога (для тестов и отладки).
func (c *Catalog) Skill(id string) *domain.Skill {
	return c.skills[id]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
