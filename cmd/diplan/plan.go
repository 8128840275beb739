package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sghaida/typereg/examples/webapp"
)

// loadPlan parses a plan file. Unknown fields are rejected so a typo such as
// "biuld:" fails loudly instead of producing an empty plan.
func loadPlan(path string) (webapp.Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return webapp.Plan{}, fmt.Errorf("open plan: %w", err)
	}
	defer f.Close()

	var plan webapp.Plan
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&plan); err != nil {
		if errors.Is(err, io.EOF) {
			return webapp.Plan{}, fmt.Errorf("load plan %s: %w", path, webapp.ErrEmptyPlan)
		}
		return webapp.Plan{}, fmt.Errorf("load plan %s: %w", path, err)
	}
	return plan, nil
}
