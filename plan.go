package structmap

import (
	"fmt"
	"reflect"

	"github.com/viant/structmap/conv"
	"github.com/viant/tagly/format/text"
)

type (
	// Pair represents a target member matched with a source member of the same name
	Pair struct {
		Target *Member
		Source *Member
		Rule   conv.Rule
	}

	// Plan represents matched pairs for a source and target type, in target declaration order
	Plan struct {
		Source *Shape
		Target *Shape
		Pairs  []*Pair
		//enums registry version rules were resolved with
		enums uint64
	}

	typeKey struct {
		srcType  reflect.Type
		destType reflect.Type
	}
)

// Excluding returns pairs whose target member name is not excluded
func (p *Plan) Excluding(excluded map[string]bool) []*Pair {
	if len(excluded) == 0 {
		return p.Pairs
	}
	result := make([]*Pair, 0, len(p.Pairs))
	for _, pair := range p.Pairs {
		if excluded[pair.Target.Name] {
			continue
		}
		result = append(result, pair)
	}
	return result
}

// Pairs discovers member pairs for source and target types, skipping excluded target names
func (m *Mapper) Pairs(source, target reflect.Type, excluded ...string) ([]*Pair, error) {
	plan, err := m.Plan(source, target)
	if err != nil {
		return nil, err
	}
	var names map[string]bool
	if len(excluded) > 0 {
		names = make(map[string]bool, len(excluded))
		for _, name := range excluded {
			names[name] = true
		}
	}
	return plan.Excluding(names), nil
}

// Plan returns a mapping plan for source and target struct types
func (m *Mapper) Plan(source, target reflect.Type) (*Plan, error) {
	key := typeKey{srcType: EnsureStructType(source), destType: EnsureStructType(target)}
	if !m.options.noCache {
		if plan, ok := m.plans.Get(key); ok && plan.enums == m.converter.Enums().Version() {
			return plan, nil
		}
	}
	plan, err := m.newPlan(source, target)
	if err != nil {
		return nil, err
	}
	if !m.options.noCache {
		m.plans.Put(key, plan)
	}
	return plan, nil
}

// Shape returns a shape for the supplied struct type
func (m *Mapper) Shape(rType reflect.Type) (*Shape, error) {
	structType := EnsureStructType(rType)
	if structType == nil {
		return nil, fmt.Errorf("%w, got %v", ErrNotStruct, rType)
	}
	if !m.options.noCache {
		if shape, ok := m.shapes.Get(structType); ok {
			return shape, nil
		}
	}
	shape, err := NewShape(structType)
	if err != nil {
		return nil, err
	}
	if !m.options.noCache {
		m.shapes.Put(structType, shape)
	}
	return shape, nil
}

func (m *Mapper) newPlan(source, target reflect.Type) (*Plan, error) {
	sourceShape, err := m.Shape(source)
	if err != nil {
		return nil, fmt.Errorf("invalid source: %w", err)
	}
	targetShape, err := m.Shape(target)
	if err != nil {
		return nil, fmt.Errorf("invalid target: %w", err)
	}
	candidates := m.sourceIndex(sourceShape)
	result := &Plan{Source: sourceShape, Target: targetShape, enums: m.converter.Enums().Version()}
	for _, targetMember := range targetShape.Members {
		sourceMember, ok := candidates[targetMember.Name]
		if !ok {
			continue
		}
		pair := &Pair{Target: targetMember, Source: sourceMember, Rule: m.converter.Resolve(targetMember.Type, sourceMember.Type)}
		result.Pairs = append(result.Pairs, pair)
	}
	return result, nil
}

// sourceIndex indexes source members by matching name, first member wins
func (m *Mapper) sourceIndex(shape *Shape) map[string]*Member {
	result := make(map[string]*Member, len(shape.Members))
	caseFormat := m.options.sourceCase
	convert := caseFormat.IsDefined() && caseFormat != text.CaseFormatUpperCamel
	for _, member := range shape.Members {
		name := member.Name
		if convert {
			name = caseFormat.Format(name, text.CaseFormatUpperCamel)
		}
		if _, ok := result[name]; ok {
			continue
		}
		result[name] = member
	}
	return result
}
