// SPDX-License-Identifier: MIT
// Package parse reads the valve report format into a core.Graph:
//
//	Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
//	Valve HH has flow rate=22; tunnel leads to valve GG
//
// Blank lines are skipped. Tunnels are undirected.
package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/katalvlaran/valveflow/core"
)

// ErrMalformedLine is returned for a line that does not match the report format.
var ErrMalformedLine = errors.New("parse: malformed valve line")

var lineRe = regexp.MustCompile(`^Valve (\w+) has flow rate=(\d+); tunnels? leads? to valves? (.+)$`)

// Parse reads every valve line from r.
func Parse(r io.Reader) (*core.Graph, error) {
	g := core.NewGraph()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if err := parseLine(g, text); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parse: read: %w", err)
	}

	return g, nil
}

// ParseString is Parse over an in-memory report.
func ParseString(s string) (*core.Graph, error) {
	return Parse(strings.NewReader(s))
}

func parseLine(g *core.Graph, text string) error {
	m := lineRe.FindStringSubmatch(text)
	if m == nil {
		return fmt.Errorf("%q: %w", text, ErrMalformedLine)
	}
	flow, err := strconv.Atoi(m[2])
	if err != nil {
		return fmt.Errorf("flow rate %q: %w", m[2], ErrMalformedLine)
	}
	if err = g.AddValve(m[1], flow); err != nil {
		return fmt.Errorf("valve %s: %w", m[1], err)
	}
	for _, to := range strings.Split(m[3], ",") {
		to = strings.TrimSpace(to)
		if to == "" {
			return fmt.Errorf("valve %s: empty tunnel target: %w", m[1], ErrMalformedLine)
		}
		if err = g.AddTunnel(m[1], to); err != nil {
			return fmt.Errorf("tunnel %s-%s: %w", m[1], to, err)
		}
	}

	return nil
}
