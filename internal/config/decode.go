package config

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"gopkg.in/yaml.v3"

	"github.com/gruntwork-io/unitfilter/internal/errors"
)

// DecodeYAML parses a YAML mapping into a config. Keys are read in document order and may repeat,
// which is how children with different keys are interleaved:
//
//	type: Spearman
//	or:
//	  type: Bowman
//	not:
//	  side: 2
//	or:
//	  race: elf
//
// Mappings become children, lists of mappings become repeated children and lists of scalars
// become comma separated attributes.
func DecodeYAML(filename string, src []byte) (*Config, error) {
	var doc yaml.Node

	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, errors.New(DecodeError{Filename: filename, Msg: err.Error()})
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return New(), nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return New(), nil
	}

	return decodeYAMLMapping(filename, root)
}

func decodeYAMLMapping(filename string, node *yaml.Node) (*Config, error) {
	node = resolveAlias(node)

	if node.Kind != yaml.MappingNode {
		return nil, errors.New(DecodeError{Filename: filename, Line: node.Line, Msg: "expected a mapping"})
	}

	cfg := New()

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := resolveAlias(node.Content[i+1])

		switch val.Kind {
		case yaml.ScalarNode:
			cfg.Set(key, yamlScalar(val))
		case yaml.MappingNode:
			child, err := decodeYAMLMapping(filename, val)
			if err != nil {
				return nil, err
			}

			cfg.AppendChild(key, child)
		case yaml.SequenceNode:
			var scalars []string

			for _, item := range val.Content {
				item = resolveAlias(item)

				switch item.Kind {
				case yaml.MappingNode:
					child, err := decodeYAMLMapping(filename, item)
					if err != nil {
						return nil, err
					}

					cfg.AppendChild(key, child)
				case yaml.ScalarNode:
					scalars = append(scalars, yamlScalar(item))
				default:
					return nil, errors.New(DecodeError{Filename: filename, Line: item.Line, Msg: "nested lists are not supported in " + key})
				}
			}

			if len(scalars) > 0 {
				cfg.Set(key, strings.Join(scalars, ListSeparator))
			}
		default:
			return nil, errors.New(DecodeError{Filename: filename, Line: val.Line, Msg: "unsupported value for " + key})
		}
	}

	return cfg, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}

func yamlScalar(node *yaml.Node) string {
	if node.Tag == "!!null" {
		return ""
	}

	return node.Value
}

// DecodeHCL parses an HCL body into a config. Attributes become attributes and blocks become
// children in the order they are written:
//
//	type = ["Spearman", "Bowman"]
//
//	filter_adjacent {
//	  is_enemy = true
//	}
//
// Expressions are evaluated without variables or functions.
func DecodeHCL(filename string, src []byte) (*Config, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.New(diagsError(filename, diags))
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, errors.New(DecodeError{Filename: filename, Msg: "unexpected body type"})
	}

	return decodeHCLBody(filename, body)
}

func decodeHCLBody(filename string, body *hclsyntax.Body) (*Config, error) {
	cfg := New()

	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, errors.New(diagsError(filename, diags))
		}

		str, err := ctyString(val)
		if err != nil {
			return nil, errors.New(DecodeError{Filename: filename, Line: attr.SrcRange.Start.Line, Msg: name + ": " + err.Error()})
		}

		cfg.Set(name, str)
	}

	for _, block := range body.Blocks {
		if len(block.Labels) > 0 {
			return nil, errors.New(DecodeError{Filename: filename, Line: block.TypeRange.Start.Line, Msg: "block " + block.Type + " must not have labels"})
		}

		child, err := decodeHCLBody(filename, block.Body)
		if err != nil {
			return nil, err
		}

		cfg.AppendChild(block.Type, child)
	}

	return cfg, nil
}

func ctyString(val cty.Value) (string, error) {
	if val.IsNull() {
		return "", nil
	}

	if !val.IsWhollyKnown() {
		return "", errors.New("value is not known")
	}

	ty := val.Type()

	if ty.IsListType() || ty.IsTupleType() || ty.IsSetType() {
		items := make([]string, 0, val.LengthInt())

		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()

			item, err := ctyString(elem)
			if err != nil {
				return "", err
			}

			items = append(items, item)
		}

		return strings.Join(items, ListSeparator), nil
	}

	if !ty.IsPrimitiveType() {
		return "", errors.New("only strings, numbers, bools and lists of them are supported, use a block for " + ty.FriendlyName())
	}

	if ty == cty.Bool {
		if val.True() {
			return "yes", nil
		}

		return "no", nil
	}

	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", err
	}

	return str.AsString(), nil
}

func diagsError(filename string, diags hcl.Diagnostics) DecodeError {
	decodeErr := DecodeError{Filename: filename, Msg: diags.Error()}

	for _, diag := range diags {
		if diag.Subject != nil {
			decodeErr.Line = diag.Subject.Start.Line
			break
		}
	}

	return decodeErr
}
