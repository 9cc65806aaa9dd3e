package markdown

import (
	"fmt"
	"sort"
)

// Violation is a single lint finding. Line numbers are 1-based and count
// from the top of the file, front matter included.
type Violation struct {
	File    string
	Line    int
	Rule    string
	Message string
}

// String renders the markdownlint-style "file:line rule/alias message" form.
func (v Violation) String() string {
	return fmt.Sprintf("%s:%d %s/%s %s", v.File, v.Line, v.Rule, RuleAlias(v.Rule), v.Message)
}

// SortViolations orders violations by file, then line, then rule ID.
func SortViolations(vs []Violation) {
	sort.Slice(vs, func(i, j int) bool {
		if vs[i].File != vs[j].File {
			return vs[i].File < vs[j].File
		}
		if vs[i].Line != vs[j].Line {
			return vs[i].Line < vs[j].Line
		}
		return vs[i].Rule < vs[j].Rule
	})
}
