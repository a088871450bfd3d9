package console

import (
	"context"
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"

	"github.com/agnivade/levenshtein"

	apperrors "rps/internal/platform/errors"
)

// Route binds a full-match pattern to an operation. Routes built with Action
// ignore the input; routes built with Consume receive it.
type Route struct {
	pattern    *regexp.Regexp
	tokens     []string
	takesInput bool
	run        func(ctx context.Context, input string) error
}

func Action(pattern string, fn func(ctx context.Context) error) Route {
	r := newRoute(pattern)
	r.run = func(ctx context.Context, _ string) error { return fn(ctx) }
	return r
}

func Consume(pattern string, fn func(ctx context.Context, input string) error) Route {
	r := newRoute(pattern)
	r.takesInput = true
	r.run = fn
	return r
}

func newRoute(pattern string) Route {
	return Route{
		pattern: regexp.MustCompile(`^(?:` + pattern + `)$`),
		tokens:  literalTokens(pattern),
	}
}

// Router tries its routes in order and runs the first full match.
type Router struct {
	routes []Route
}

func NewRouter(routes ...Route) *Router {
	return &Router{routes: routes}
}

func (r *Router) Dispatch(ctx context.Context, input string) error {
	for _, route := range r.routes {
		if !route.pattern.MatchString(input) {
			continue
		}
		if route.takesInput {
			return route.run(ctx, input)
		}
		return route.run(ctx, "")
	}
	return &InvalidInputError{Input: input, Suggestion: r.suggest(input)}
}

// Tokens lists the literal inputs this router accepts, in route order.
func (r *Router) Tokens() []string {
	var out []string
	for _, route := range r.routes {
		out = append(out, route.tokens...)
	}
	return out
}

// suggest returns a token that differs from input only by case or, for
// longer inputs, by a single edit.
func (r *Router) suggest(input string) string {
	if input == "" {
		return ""
	}
	tokens := r.Tokens()
	for _, tok := range tokens {
		if strings.EqualFold(tok, input) {
			return tok
		}
	}
	if len([]rune(input)) < 2 {
		return ""
	}
	for _, tok := range tokens {
		if len([]rune(tok)) >= 2 && levenshtein.ComputeDistance(input, tok) == 1 {
			return tok
		}
	}
	return ""
}

type InvalidInputError struct {
	Input      string
	Suggestion string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q", e.Input)
}

func (e *InvalidInputError) Unwrap() error { return apperrors.ErrInvalidInput }

// literalTokens expands patterns that are a literal, an alternation of
// literals or a small character class. Anything else yields nothing.
func literalTokens(pattern string) []string {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil
	}
	return expand(re.Simplify())
}

func expand(re *syntax.Regexp) []string {
	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 {
			return nil
		}
		return []string{string(re.Rune)}
	case syntax.OpCharClass:
		var out []string
		for i := 0; i+1 < len(re.Rune); i += 2 {
			lo, hi := re.Rune[i], re.Rune[i+1]
			if hi-lo > 16 || len(out) > 16 {
				return nil
			}
			for c := lo; c <= hi; c++ {
				out = append(out, string(c))
			}
		}
		return out
	case syntax.OpAlternate:
		var out []string
		for _, sub := range re.Sub {
			toks := expand(sub)
			if toks == nil {
				return nil
			}
			out = append(out, toks...)
		}
		return out
	case syntax.OpCapture:
		if len(re.Sub) == 1 {
			return expand(re.Sub[0])
		}
	}
	return nil
}
