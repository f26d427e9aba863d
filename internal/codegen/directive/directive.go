// Package directive resolves the per-field builder directives
// (`builder:"each=Arg,default=nil"` tags and `+builder:` comment markers).
package directive

import (
	"errors"
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"
)

// Recognised directive keys.
const (
	KeyEach    = "each"
	KeyDefault = "default"
)

// ErrMalformedDirective is returned for directive text that cannot be read.
var ErrMalformedDirective = errors.New("malformed builder directive")

// FieldOptions are the resolved directives of one field. Empty strings mean
// the directive is absent.
type FieldOptions struct {
	// Each names the per-element accumulator method of a sequence field.
	Each string
	// Default is Go expression text used by Build when the field is unset.
	// It is never parsed or evaluated here.
	Default string
}

// HasEach reports whether an accumulator name was configured.
func (o FieldOptions) HasEach() bool { return o.Each != "" }

// HasDefault reports whether a default expression was configured.
func (o FieldOptions) HasDefault() bool { return o.Default != "" }

// Resolve parses raw directive strings into FieldOptions. Each string holds
// one or more comma separated key=value entries; later entries win. Entries
// with unknown keys, including bare words, are ignored whatever their value.
func Resolve(raw []string) (FieldOptions, error) {
	var opts FieldOptions
	for _, text := range raw {
		for _, entry := range Split(text) {
			key, value, err := parseEntry(entry)
			if err != nil {
				return FieldOptions{}, err
			}
			switch key {
			case KeyEach:
				name, err := identifier(value)
				if err != nil {
					return FieldOptions{}, err
				}
				opts.Each = name
			case KeyDefault:
				if err := checkExpr(value); err != nil {
					return FieldOptions{}, err
				}
				opts.Default = value
			}
		}
	}
	return opts, nil
}

// Split breaks directive text on commas that are not nested inside
// brackets, braces, parentheses or literals. Unbalanced text is split as far
// as it can be; validating values is left to the keys that use them.
func Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var (
		entries []string
		depth   int
		start   int
	)
	scan(text, nil, func(off int, tok token.Token) {
		switch tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth = max(depth-1, 0)
		case token.COMMA:
			if depth == 0 {
				entries = append(entries, strings.TrimSpace(text[start:off]))
				start = off + 1
			}
		}
	})
	return append(entries, strings.TrimSpace(text[start:]))
}

// checkExpr rejects default text that does not even tokenise as balanced Go.
func checkExpr(value string) error {
	var (
		scanErr error
		depth   int
		stray   bool
	)
	scan(value, func(_ token.Position, msg string) {
		if scanErr == nil {
			scanErr = fmt.Errorf("%w: default=%s: %s", ErrMalformedDirective, value, msg)
		}
	}, func(_ int, tok token.Token) {
		switch tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			if depth == 0 {
				stray = true
			}
			depth--
		}
	})
	if scanErr != nil {
		return scanErr
	}
	if stray || depth != 0 {
		return fmt.Errorf("%w: default=%s: unbalanced brackets", ErrMalformedDirective, value)
	}
	return nil
}

// scan reports the offset of every Go token in text.
func scan(text string, errh scanner.ErrorHandler, fn func(off int, tok token.Token)) {
	src := []byte(text)
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))
	var s scanner.Scanner
	s.Init(file, src, errh, 0)
	for {
		pos, tok, _ := s.Scan()
		if tok == token.EOF {
			return
		}
		fn(file.Offset(pos), tok)
	}
}

// parseEntry splits key=value. A bare word is an entry without a value;
// only the known keys insist on one.
func parseEntry(entry string) (string, string, error) {
	key, value, ok := strings.Cut(entry, "=")
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", fmt.Errorf("%w: %q: missing key", ErrMalformedDirective, entry)
	}
	if key != KeyEach && key != KeyDefault {
		return key, value, nil
	}
	if !ok {
		return "", "", fmt.Errorf("%w: %q: want key=value", ErrMalformedDirective, entry)
	}
	if value == "" {
		return "", "", fmt.Errorf("%w: %q: empty value", ErrMalformedDirective, entry)
	}
	return key, value, nil
}

// identifier accepts a bare or quoted Go identifier.
func identifier(value string) (string, error) {
	name := value
	if strings.HasPrefix(value, `"`) {
		unquoted, err := strconv.Unquote(value)
		if err != nil {
			return "", fmt.Errorf("%w: each=%s: %v", ErrMalformedDirective, value, err)
		}
		name = unquoted
	}
	if !token.IsIdentifier(name) || name == "_" {
		return "", fmt.Errorf("%w: each=%s is not a method name", ErrMalformedDirective, value)
	}
	return name, nil
}
