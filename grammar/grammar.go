// Package grammar loads lambda languages from YAML documents, so a registry
// can be declared in a file instead of constructed in code.
package grammar

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lucasem/program-induction/lambda"
	"github.com/lucasem/program-induction/typesystem"
)

// Document mirrors the YAML shape of a language definition:
//
//	variable_logprob: 0.0
//	primitives:
//	  - name: "+"
//	    type: "int -> int -> int"
//	    logprob: 0.0
type Document struct {
	VariableLogProb float64     `yaml:"variable_logprob"`
	Primitives      []Primitive `yaml:"primitives"`
}

// Primitive is one named entry of a language definition. A missing logprob
// defaults to zero, matching a uniform registry.
type Primitive struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`
	LogProb *float64 `yaml:"logprob"`
}

// Parse decodes a YAML language definition into a Language.
func Parse(data []byte) (*lambda.Language, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("grammar: %w", err)
	}
	if len(doc.Primitives) == 0 {
		return nil, fmt.Errorf("grammar: no primitives defined")
	}

	defs := make([]lambda.PrimitiveDef, 0, len(doc.Primitives))
	logProbs := make([]float64, 0, len(doc.Primitives))
	for i, p := range doc.Primitives {
		if p.Name == "" {
			return nil, fmt.Errorf("grammar: primitive %d has no name", i)
		}
		tp, err := typesystem.Parse(p.Type)
		if err != nil {
			return nil, fmt.Errorf("grammar: primitive %q: %w", p.Name, err)
		}
		defs = append(defs, lambda.PrimitiveDef{Name: p.Name, Type: tp})
		if p.LogProb != nil {
			logProbs = append(logProbs, *p.LogProb)
		} else {
			logProbs = append(logProbs, 0)
		}
	}

	l := lambda.Uniform(defs, nil)
	l.VariableLogProb = doc.VariableLogProb
	l.PrimitivesLogProb = logProbs
	return l, nil
}

// Load reads a YAML language definition from a file.
func Load(path string) (*lambda.Language, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("grammar: %w", err)
	}
	return Parse(data)
}
