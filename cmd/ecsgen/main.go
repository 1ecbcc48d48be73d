// Command ecsgen writes the fixed-arity Has/Each helpers of package ecs.
//
//	go run ./cmd/ecsgen -out ecs/each_generated.go -arity 4
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
)

const eachTemplate = `// Code generated by ecsgen. DO NOT EDIT.

package ecs
{{range .}}
// {{.HasName}} reports whether the live entity carries {{.Doc}}.
func {{.HasName}}[{{.TypeParams}} any](s *Scene, id EntityId) bool {
	rec := s.mustRecord(id)
{{- range .Types}}
	id{{.}}, ok{{.}} := LookupComponentId[{{.}}](s)
{{- end}}
	if {{.NotOk}} {
		return false
	}
	return rec.mask.TestAll(MaskOf({{.Ids}}))
}

// {{.EachName}} calls fn for every live entity carrying {{.Doc}}, in slot order.
// Structural changes inside fn panic; queue them on a Commands buffer.
func {{.EachName}}[{{.TypeParams}} any](s *Scene, fn func(EntityId{{range .Types}}, *{{.}}{{end}})) {
	s.checkOpen()
{{- range .Types}}
	id{{.}}, ok{{.}} := LookupComponentId[{{.}}](s)
{{- end}}
	if {{.NotOk}} {
		return
	}
{{- range .Types}}
	st{{.}} := typedStorage[{{.}}](s, id{{.}})
{{- end}}
	required := MaskOf({{.Ids}})
	s.beginIteration()
	defer s.endIteration()
	for i := range s.records {
		rec := &s.records[i]
		if rec.valid && rec.mask.TestAll(required) {
			fn(rec.id{{range .Types}}, st{{.}}.Get(rec.id){{end}})
		}
	}
}
{{end}}`

type arity struct {
	HasName    string
	EachName   string
	Types      []string
	TypeParams string
	NotOk      string
	Ids        string
	Doc        string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	out := flag.String("out", "each_generated.go", "Output file.")
	maxArity := flag.Int("arity", 4, "Highest number of component types per helper.")
	flag.Parse()

	if *maxArity < 1 || *maxArity > 26 {
		return fmt.Errorf("arity must be in [1, 26], got %d", *maxArity)
	}

	tmpl, err := template.New("each").Parse(eachTemplate)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, arities(*maxArity)); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	src, err := imports.Process(*out, buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("format %s: %w", *out, err)
	}

	return os.WriteFile(*out, src, 0o644)
}

func arities(n int) []arity {
	result := make([]arity, 0, n)
	for i := 1; i <= n; i++ {
		types := make([]string, i)
		notOk := make([]string, i)
		ids := make([]string, i)
		for j := range types {
			t := string(rune('A' + j))
			types[j] = t
			notOk[j] = "!ok" + t
			ids[j] = "id" + t
		}

		a := arity{
			HasName:    fmt.Sprintf("Has%d", i),
			EachName:   fmt.Sprintf("Each%d", i),
			Types:      types,
			TypeParams: strings.Join(types, ", "),
			NotOk:      strings.Join(notOk, " || "),
			Ids:        strings.Join(ids, ", "),
			Doc:        joinDoc(types),
		}
		if i == 1 {
			a.HasName = "Has"
		}
		result = append(result, a)
	}
	return result
}

func joinDoc(types []string) string {
	if len(types) == 1 {
		return "an " + types[0]
	}
	return strings.Join(types[:len(types)-1], ", ") + " and " + types[len(types)-1]
}
