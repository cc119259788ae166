//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed with the sample configuration.
func (Run) Testbed() error {
	mg.Deps(Build.All)
	fmt.Println("Run testbed...")
	if _, err := executeCmd("go", withArgs("run", "main.go", "-config", "tilegl.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
