// Package convert wires the transformation passes into a pipeline:
// source text goes through the external parser to a tree, the call
// rewriter and return lowerer transform a working copy, and the
// external generator turns the result back into text.
package convert

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/cfix-labs/cfix/internal/ast"
	"github.com/cfix-labs/cfix/internal/cache"
	"github.com/cfix-labs/cfix/internal/lower"
	"github.com/cfix-labs/cfix/internal/rewrite"
	"github.com/cfix-labs/cfix/internal/types"
)

// Parser is the external front end. Given C-like source text it
// returns a well-formed tree; failure returns a parse-error
// description.
type Parser interface {
	Parse(source string) (*ast.TranslationUnit, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(source string) (*ast.TranslationUnit, error)

func (f ParserFunc) Parse(source string) (*ast.TranslationUnit, error) {
	return f(source)
}

// Generator is the external back end. It is assumed total: it never
// fails on a well-formed tree.
type Generator interface {
	Generate(unit *ast.TranslationUnit) string
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(unit *ast.TranslationUnit) string

func (f GeneratorFunc) Generate(unit *ast.TranslationUnit) string {
	return f(unit)
}

// prelude is prefixed to the source on a parse retry, so input that
// calls printf without declaring it still forms a valid unit.
const prelude = "void printf(const char *format, ...);\n"

var printfQuotes = regexp.MustCompile(`printf\('(.*?)'\)`)

// Preprocess strips preprocessor lines and normalizes single-quoted
// printf literals, preparing raw source for the parser collaborator.
func Preprocess(source string) string {
	var kept []string
	for _, line := range strings.Split(source, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	out := strings.Join(kept, "\n")
	return printfQuotes.ReplaceAllString(out, `printf("$1")`)
}

// Pipeline runs the configured pass set over parsed trees. The zero
// value is not usable; construct one with NewPipeline.
type Pipeline struct {
	parser Parser
	gen    Generator
	cache  *cache.Cache
	cfg    Config
	logger *zap.Logger
}

// NewPipeline creates a pipeline. parser and gen may be nil when the
// caller only converts trees it builds itself; logger may be nil.
func NewPipeline(parser Parser, gen Generator, cfg Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		parser: parser,
		gen:    gen,
		cache:  cache.New(),
		cfg:    cfg,
		logger: logger,
	}
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// ConvertUnit runs the configured passes over a clone of unit and
// returns the transformed tree. The input unit is never mutated, so
// cached trees stay valid. Issues are collected, not thrown; the
// returned error joins per-function strict-mode failures. Passes run
// function by function, and the first fatal error stops that
// function's pipeline, so a function that failed is present
// untransformed while the rest of the unit is fully converted.
func (p *Pipeline) ConvertUnit(unit *ast.TranslationUnit) (*ast.TranslationUnit, []types.Issue, error) {
	work := unit.Clone()

	var issues []types.Issue
	var errs []error

	mode := rewrite.ModeTolerant
	if p.cfg.Strict {
		mode = rewrite.ModeStrict
	}
	rw := rewrite.New(mode)

	for _, fn := range work.Functions {
		if p.cfg.runRewrite() {
			fnIssues, err := rw.RewriteFunc(fn)
			issues = append(issues, fnIssues...)
			if err != nil {
				errs = append(errs, fmt.Errorf("rewriting %s: %w", fn.Name, err))
				continue
			}
		}
		if p.cfg.runLower() {
			if err := lower.Lower(fn); err != nil {
				errs = append(errs, fmt.Errorf("lowering %s: %w", fn.Name, err))
			}
		}
	}

	if len(errs) > 0 {
		return work, issues, fmt.Errorf("conversion failed: %w", errors.Join(errs...))
	}
	return work, issues, nil
}

// Convert parses source (through the tree cache), transforms a
// working copy and generates output text.
func (p *Pipeline) Convert(source string) (string, []types.Issue, error) {
	if p.parser == nil {
		return "", nil, fmt.Errorf("no parser configured")
	}
	if p.gen == nil {
		return "", nil, fmt.Errorf("no generator configured")
	}

	unit, err := p.cache.GetOrParse(source, p.parse)
	if err != nil {
		return "", nil, err
	}

	work, issues, err := p.ConvertUnit(unit)
	if err != nil {
		return "", issues, err
	}
	return p.gen.Generate(work), issues, nil
}

// ConvertText is the batch-convenience form: any failure comes back
// as a labeled error string rather than an error value, so the result
// is always printable.
func (p *Pipeline) ConvertText(source string) string {
	out, issues, err := p.Convert(source)
	if err != nil {
		return fmt.Sprintf("Error converting code: %v", err)
	}
	for _, issue := range issues {
		p.logger.Warn("conversion diagnostic",
			zap.String("code", issue.Code),
			zap.String("function", issue.Function),
			zap.String("message", issue.Message))
	}
	return out
}

// parse preprocesses and hands the source to the external parser,
// retrying once with the minimal prelude prefixed.
func (p *Pipeline) parse(source string) (*ast.TranslationUnit, error) {
	clean := Preprocess(source)
	unit, err := p.parser.Parse(clean)
	if err == nil {
		return unit, nil
	}
	unit, retryErr := p.parser.Parse(prelude + clean)
	if retryErr != nil {
		return nil, &types.ParseError{Detail: err.Error()}
	}
	return unit, nil
}
