package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/combine/parse"
)

var calcLog = commonlog.GetLogger("combine.calc")

// grammarFile is the YAML shape of a user-supplied operator table.
type grammarFile struct {
	Operators []operatorSpec `yaml:"operators"`
}

type operatorSpec struct {
	Symbol     string `yaml:"symbol"`
	Kind       string `yaml:"kind"`  // prefix, postfix, infix
	Assoc      string `yaml:"assoc"` // left, right (infix only)
	Precedence int    `yaml:"precedence"`
	Apply      string `yaml:"apply"`
}

var binaryBuiltins = map[string]func(int, int) int{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"mul": func(a, b int) int { return a * b },
	"div": func(a, b int) int { return a / b },
	"pow": func(a, b int) int { return int(math.Pow(float64(a), float64(b))) },
}

var unaryBuiltins = map[string]func(int) int{
	"neg": func(a int) int { return -a },
	"fact": func(a int) int {
		out := 1
		for i := 2; i <= a; i++ {
			out *= i
		}
		return out
	},
}

func defaultGrammar() grammarFile {
	return grammarFile{Operators: []operatorSpec{
		{Symbol: "+", Kind: "infix", Assoc: "left", Precedence: 2, Apply: "add"},
		{Symbol: "-", Kind: "infix", Assoc: "left", Precedence: 2, Apply: "sub"},
		{Symbol: "*", Kind: "infix", Assoc: "left", Precedence: 3, Apply: "mul"},
		{Symbol: "/", Kind: "infix", Assoc: "left", Precedence: 3, Apply: "div"},
		{Symbol: "^", Kind: "infix", Assoc: "right", Precedence: 4, Apply: "pow"},
		{Symbol: "!", Kind: "postfix", Precedence: 6, Apply: "fact"},
	}}
}

func loadGrammar(path string) (grammarFile, error) {
	if path == "" {
		return defaultGrammar(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return grammarFile{}, fmt.Errorf("read grammar: %w", err)
	}
	var g grammarFile
	if err := yaml.Unmarshal(data, &g); err != nil {
		return grammarFile{}, fmt.Errorf("parse grammar: %w", err)
	}
	if len(g.Operators) == 0 {
		return grammarFile{}, fmt.Errorf("grammar %s declares no operators", path)
	}
	return g, nil
}

func buildOps(g grammarFile) (parse.Parser[parse.Operator[int]], error) {
	var alts []parse.Parser[parse.Operator[int]]
	for _, spec := range g.Operators {
		sym := parse.Str(spec.Symbol)
		switch spec.Kind {
		case "prefix", "postfix":
			f, ok := unaryBuiltins[spec.Apply]
			if !ok {
				return nil, fmt.Errorf("operator %q: unknown unary function %q", spec.Symbol, spec.Apply)
			}
			if spec.Kind == "prefix" {
				alts = append(alts, parse.PrefixOp(sym, spec.Precedence, f))
			} else {
				alts = append(alts, parse.PostfixOp(sym, spec.Precedence, f))
			}
		case "infix":
			f, ok := binaryBuiltins[spec.Apply]
			if !ok {
				return nil, fmt.Errorf("operator %q: unknown binary function %q", spec.Symbol, spec.Apply)
			}
			if spec.Assoc == "right" {
				alts = append(alts, parse.InfixRight(sym, spec.Precedence, f))
			} else {
				alts = append(alts, parse.InfixLeft(sym, spec.Precedence, f))
			}
		default:
			return nil, fmt.Errorf("operator %q: unknown kind %q", spec.Symbol, spec.Kind)
		}
	}
	return parse.Alt(alts...), nil
}

func buildCalculator(g grammarFile) (parse.Parser[int], error) {
	ops, err := buildOps(g)
	if err != nil {
		return nil, err
	}

	var expr parse.Parser[int]
	spaced := func(p parse.Parser[int]) parse.Parser[int] {
		ws := parse.Many(parse.OneOf("space"))
		return parse.Between(ws, ws, p)
	}
	number := parse.Map(parse.Many1(parse.OneOf("digit")), func(cs []rune) int {
		n := 0
		for _, c := range cs {
			n = n*10 + int(c-'0')
		}
		return n
	})
	group := parse.Between(parse.Char('('), parse.Char(')'),
		parse.Lazy(func() parse.Parser[int] { return expr }))
	term := spaced(parse.Alt(number, group))
	expr = parse.Prec(term, ops)
	return parse.SkipRight(expr, parse.EOF()), nil
}

func newCalcCmd() *cobra.Command {
	var grammarPath string

	cmd := &cobra.Command{
		Use:   "calc <expression>",
		Short: "Evaluate an arithmetic expression with the precedence engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(grammarPath)
			if err != nil {
				return err
			}
			calc, err := buildCalculator(g)
			if err != nil {
				return err
			}
			calcLog.Infof("evaluating %q with %d operators", args[0], len(g.Operators))
			value, err := parse.Parse(args[0], calc)
			if err != nil {
				return fmt.Errorf("evaluate: %w", err)
			}
			fmt.Println(value)
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarPath, "grammar", "g", "", "YAML operator table (default: arithmetic)")

	return cmd
}
