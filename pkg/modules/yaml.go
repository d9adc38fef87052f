package modules

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
)

// YAML returns the yaml module. Mappings decode into dictionaries in
// document order.
func YAML() *Module {
	return New("yaml").
		Func("load", []string{"text"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			text, err := stringArg(call, "load", args, 0)
			if err != nil {
				return nil, err
			}
			var doc yaml.Node
			if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
				return nil, call.Errorf(diagnostics.RuntimeError, "Invalid YAML: %v", err)
			}
			v, err := fromYAMLNode(&doc, make(map[*yaml.Node]bool))
			if err != nil {
				return nil, call.Errorf(diagnostics.RuntimeError, "Invalid YAML: %v", err)
			}
			return v, nil
		}).
		Func("dump", []string{"value"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			node, err := toYAMLNode(args[0])
			if err != nil {
				return nil, call.Error(diagnostics.RuntimeError, err.Error())
			}
			out, err := yaml.Marshal(node)
			if err != nil {
				return nil, call.Errorf(diagnostics.RuntimeError, "yaml: %v", err)
			}
			return runtime.NewString(string(out)), nil
		})
}

// fromYAMLNode converts a decoded document. active holds the anchors being
// expanded on the current path, so a self-referencing alias is an error.
func fromYAMLNode(node *yaml.Node, active map[*yaml.Node]bool) (runtime.Value, error) {
	switch node.Kind {
	case 0:
		return runtime.NewNull(), nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return runtime.NewNull(), nil
		}
		return fromYAMLNode(node.Content[0], active)
	case yaml.AliasNode:
		if active[node.Alias] {
			return nil, fmt.Errorf("recursive alias *%s", node.Value)
		}
		active[node.Alias] = true
		defer delete(active, node.Alias)
		return fromYAMLNode(node.Alias, active)
	case yaml.SequenceNode:
		list := runtime.NewList()
		for _, child := range node.Content {
			item, err := fromYAMLNode(child, active)
			if err != nil {
				return nil, err
			}
			list.Append(item)
		}
		return list, nil
	case yaml.MappingNode:
		dict := runtime.NewDictionary()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, err := fromYAMLNode(node.Content[i], active)
			if err != nil {
				return nil, err
			}
			item, err := fromYAMLNode(node.Content[i+1], active)
			if err != nil {
				return nil, err
			}
			dict.Set(key, item)
		}
		return dict, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(node)
	}
	return nil, fmt.Errorf("unsupported node kind %d", node.Kind)
}

func fromYAMLScalar(node *yaml.Node) (runtime.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return runtime.NewNull(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return runtime.NewBool(b), nil
	case "!!int":
		var i int
		if err := node.Decode(&i); err != nil {
			return nil, err
		}
		return runtime.NewInt(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err
		}
		return runtime.NewFloat(f), nil
	}
	return runtime.NewString(node.Value), nil
}

func toYAMLNode(v runtime.Value) (*yaml.Node, error) {
	switch val := runtime.Resolve(v).(type) {
	case runtime.Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case runtime.Boolean:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(val.Val)}, nil
	case runtime.Number:
		if !val.Float {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: runtime.FormatNumber(val)}, nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(val.Val)}, nil
	case runtime.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: val.Val}, nil
	case runtime.List:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val.Elements() {
			child, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	case runtime.Dictionary:
		mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		var err error
		val.Each(func(key, item runtime.Value) bool {
			var keyNode, valueNode *yaml.Node
			if keyNode, err = toYAMLNode(key); err != nil {
				return false
			}
			if keyNode.Kind != yaml.ScalarNode {
				err = fmt.Errorf("Invalid YAML Serializable Key")
				return false
			}
			if valueNode, err = toYAMLNode(item); err != nil {
				return false
			}
			mapping.Content = append(mapping.Content, keyNode, valueNode)
			return true
		})
		if err != nil {
			return nil, err
		}
		return mapping, nil
	default:
		return nil, fmt.Errorf("Object of type %s is not YAML serializable", val.Kind())
	}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
