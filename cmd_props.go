package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"pctl/eval"
	"pctl/properties"
)

func loadRegistry(path string) *properties.Registry {
	fs := osfs.New(filepath.Dir(path))

	r, err := properties.Load(fs, filepath.Base(path))
	if err != nil {
		log.Fatalf("Error loading properties: %v", err)
	}

	return r
}

func runFmt(cmd *cobra.Command, args []string) {
	r := loadRegistry(args[0])

	for _, p := range r.All() {
		if p.Name != "" {
			fmt.Printf("%q: %s\n", p.Name, p.Formula)
			continue
		}

		fmt.Println(p.Formula)
	}
}

func runInspect(cmd *cobra.Command, args []string) {
	r := loadRegistry(args[0])

	for i, p := range r.All() {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}

		f := p.Formula
		if !f.HasBound() {
			fmt.Printf("%s: %s, unbounded (=?)\n", name, f.Kind())
			continue
		}

		c, err := f.Comparison()
		if err != nil {
			log.Fatalf("Error reading comparison: %v", err)
		}

		v, err := f.Threshold()
		if err != nil {
			log.Fatalf("Error reading threshold: %v", err)
		}

		fmt.Printf("%s: %s, bound %s%v\n", name, f.Kind(), c.Symbol(), v)
	}
}

func runCheck(cmd *cobra.Command, args []string) {
	labels := map[string]bool{}
	for _, l := range strings.Split(labelList, ",") {
		l = strings.TrimSpace(l)
		if l != "" {
			labels[l] = true
		}
	}

	r := loadRegistry(args[0])

	for i, p := range r.All() {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}

		pf := p.Formula.Path()

		parts := []*eval.Expression{}
		if pf.Left != nil {
			parts = append(parts, pf.Left)
		}
		if pf.Right != nil {
			parts = append(parts, pf.Right)
		}

		for _, expr := range parts {
			v, err := expr.Evaluate(labels)
			if err != nil {
				log.Fatalf("Error evaluating '%s': %v", expr, err)
			}

			fmt.Printf("%s: %s = %v\n", name, expr, v)
		}
	}
}
