package phylo

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

/*
This file contains a participle grammar for rooted newick trees. Internal
node labels carry integer branch supports, either as the label itself
("(a,b)90:0.1") or as an extra colon field after a symbolic label
("(a,b)n1:90:0.1"). Leaf labels are taxon names and must match FASTA record
ids.
*/

////////////////////////////////////////////////////////////////////////////////

var newickOptions = []participle.Option{ // nolint:gochecknoglobals
	participle.Lexer(
		lexer.MustSimple([]lexer.SimpleRule{
			{Name: "Atom", Pattern: `[^\s(),:;]+`},
			{Name: "Punct", Pattern: `[(),:;]`},
			{Name: "whitespace", Pattern: `\s+`},
		}),
	),
}

type newickDocument struct {
	Root *newickNode `@@ ";"`
}

type newickNode struct {
	Children []*newickNode `( "(" @@ ( "," @@ )* ")" )?`
	Label    string        `@Atom?`
	Fields   []string      `( ":" @Atom )*`
}

var newickParser = participle.MustBuild[newickDocument](newickOptions...) // nolint:gochecknoglobals

// ParseNewick parses rooted newick text into an unsanitized clade tree. Ids
// are not assigned; Sanitize is responsible for the final numbering.
func ParseNewick(source string, text string) (*Clade, error) {
	document, err := newickParser.ParseString(source, text)
	if err != nil {
		return nil, ParseError{Source: source, Reason: err.Error()}
	}
	root, err := convertNode(source, document.Root, true)
	if err != nil {
		return nil, err
	}
	if len(root.Children) == 0 {
		return nil, ParseError{Source: source, Reason: "root has no children"}
	}
	seen := make(map[string]bool)
	var dup error
	root.Walk(func(node *Clade) {
		if !node.IsLeaf() || dup != nil {
			return
		}
		if seen[node.Name] {
			dup = DuplicateLeafError{Name: node.Name}
		}
		seen[node.Name] = true
	})
	if dup != nil {
		return nil, dup
	}
	return root, nil
}

func convertNode(source string, node *newickNode, isRoot bool) (*Clade, error) {
	if len(node.Children) == 0 {
		if node.Label == "" {
			return nil, ParseError{Source: source, Reason: "leaf without a name"}
		}
		length, err := parseLength(source, node.Fields)
		if err != nil {
			return nil, err
		}
		return &Clade{Kind: Leaf, Name: node.Label, Length: length}, nil
	}

	clade := &Clade{Kind: Internal}
	if isRoot {
		clade.Kind = Root
	}
	for _, child := range node.Children {
		converted, err := convertNode(source, child, false)
		if err != nil {
			return nil, err
		}
		clade.Children = append(clade.Children, converted)
	}

	// Interpret label and colon fields. A two-field suffix is
	// name/support:support:length; a one-field suffix is length with the
	// support carried by the label when it is numeric.
	var support *float64
	var length float64
	switch len(node.Fields) {
	case 0:
		support = parseSupport(node.Label)
	case 1:
		support = parseSupport(node.Label)
		parsed, err := parseLength(source, node.Fields)
		if err != nil {
			return nil, err
		}
		length = parsed
	case 2:
		if s := parseSupport(node.Fields[0]); s != nil {
			support = s
		} else {
			return nil, ParseError{Source: source, Reason: "malformed support field: " + node.Fields[0]}
		}
		parsed, err := parseLength(source, node.Fields[1:])
		if err != nil {
			return nil, err
		}
		length = parsed
	default:
		return nil, ParseError{Source: source, Reason: "too many colon fields on a node"}
	}

	if isRoot {
		clade.Length = 0
		return clade, nil
	}
	if support != nil {
		if *support < 0 || *support > 100 {
			return nil, SupportRangeError{Value: *support}
		}
		clade.Support = support
	}
	clade.Length = length
	return clade, nil
}

func parseSupport(label string) *float64 {
	if label == "" {
		return nil
	}
	value, err := strconv.ParseFloat(label, 64)
	if err != nil {
		return nil
	}
	return &value
}

func parseLength(source string, fields []string) (float64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, ParseError{Source: source, Reason: "malformed branch length: " + fields[0]}
	}
	if value < 0 {
		return 0, ParseError{Source: source, Reason: "negative branch length: " + fields[0]}
	}
	return value, nil
}
