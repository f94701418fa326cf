package markup

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
)

// ErrUnknownWhitespace is returned for an unrecognized policy name.
var ErrUnknownWhitespace = errors.New("unknown whitespace policy")

// WhitespacePolicy decides how whitespace in text nodes is treated when HTML
// is converted to a value, and how newlines are written back.
type WhitespacePolicy interface {
	// Name identifies the policy in configuration.
	Name() string

	// Collapse normalizes the whitespace of a text node value.
	Collapse(text string) string

	// Preserve reports whether newline characters are kept as text. When
	// false they are serialized as <br>.
	Preserve() bool
}

// Whitespace policy names.
const (
	WhitespaceCollapseControl = "collapse-control"
	WhitespaceCollapseAll     = "collapse-all"
	WhitespacePreserve        = "preserve"
)

type regexpPolicy struct {
	name    string
	pattern *regexp.Regexp
}

func (p regexpPolicy) Name() string { return p.name }

func (p regexpPolicy) Collapse(text string) string {
	return p.pattern.ReplaceAllString(text, " ")
}

func (p regexpPolicy) Preserve() bool { return false }

type preservePolicy struct{}

func (preservePolicy) Name() string                { return WhitespacePreserve }
func (preservePolicy) Collapse(text string) string { return text }
func (preservePolicy) Preserve() bool              { return true }

//nolint:gochecknoglobals // stateless policy values
var (
	// CollapseControl turns every run of newlines, carriage returns and tabs
	// into a single space and leaves spaces alone.
	CollapseControl WhitespacePolicy = regexpPolicy{
		name:    WhitespaceCollapseControl,
		pattern: regexp.MustCompile(`[\n\r\t]+`),
	}

	// CollapseAll turns every run of ASCII whitespace into a single space.
	CollapseAll WhitespacePolicy = regexpPolicy{
		name:    WhitespaceCollapseAll,
		pattern: regexp.MustCompile(`[ \n\r\t\f]{2,}|[\n\r\t\f]`),
	}

	// Preserve keeps text verbatim and newlines as text.
	Preserve WhitespacePolicy = preservePolicy{}
)

// WhitespacePolicies returns the names of the built-in policies.
func WhitespacePolicies() []string {
	return []string{WhitespaceCollapseControl, WhitespaceCollapseAll, WhitespacePreserve}
}

// WhitespaceByName returns the built-in policy with the given name. An empty
// name selects CollapseControl.
func WhitespaceByName(name string) (WhitespacePolicy, error) {
	switch name {
	case "", WhitespaceCollapseControl:
		return CollapseControl, nil
	case WhitespaceCollapseAll:
		return CollapseAll, nil
	case WhitespacePreserve:
		return Preserve, nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownWhitespace, name, WhitespacePolicies())
	}
}

// IsWhitespacePolicy reports whether name names a built-in policy.
func IsWhitespacePolicy(name string) bool {
	return slices.Contains(WhitespacePolicies(), name)
}
