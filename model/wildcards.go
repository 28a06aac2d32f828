package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/adnsv/svgrender/errs"
)

// wildcards are fragments in tool arguments conforming to the syntax `$<prefix:name>$`

var reWildcard = regexp.MustCompile(`\$<((?:[^>\$])*)>\$`)

var ErrInvalidWildcardSyntax = errors.New("unsupported syntax")

func parseWildcardContent(s string) (prefix, name string, err error) {
	ss := strings.SplitN(s, ":", 2)
	if len(ss) < 2 {
		return "", "", ErrInvalidWildcardSyntax
	}
	return ss[0], ss[1], nil
}

type replaceCallback = func(prefix, name string) (string, error)

// ReplaceWildcards substitutes every wildcard in s with the handler's result.
// On failure it returns the byte offset of the offending wildcard.
func ReplaceWildcards(s string, handler replaceCallback) (string, int, error) {
	var (
		sb  strings.Builder
		pos int
	)
	for _, m := range reWildcard.FindAllStringSubmatchIndex(s, -1) {
		b, e := m[0], m[1]
		prefix, name, err := parseWildcardContent(s[m[2]:m[3]])
		if err == nil {
			var r string
			r, err = handler(prefix, name)
			if err == nil {
				sb.WriteString(s[pos:b])
				sb.WriteString(r)
				pos = e
				continue
			}
		}
		return "", b, err
	}
	sb.WriteString(s[pos:])
	return sb.String(), -1, nil
}

// ToolCommand expands the tool argument template for asset a.
func (c *Config) ToolCommand(a Asset) (exe string, args []string, err error) {
	resolve := func(prefix, name string) (string, error) {
		switch prefix {
		case "asset":
			switch name {
			case "name":
				return a.Name, nil
			case "source":
				return a.SourcePath, nil
			case "output":
				return a.OutputPath, nil
			}
		case "var":
			if v, ok := c.Definitions[name]; ok {
				return v, nil
			}
			return "", fmt.Errorf("unknown variable: %s", name)
		}
		return "", fmt.Errorf("unknown reference '%s:%s'", prefix, name)
	}

	args = make([]string, len(c.Tool.Args))
	for i, s := range c.Tool.Args {
		r, off, err := ReplaceWildcards(s, resolve)
		if err != nil {
			loc := LocateInArg(c.Tool.Args, i, off)
			return "", nil, errs.Wrap(errs.CodeConfig, err, "[%s] invalid wildcard in tool args", loc)
		}
		args[i] = r
	}
	return c.Tool.Exec, args, nil
}
