package main

import "fmt"

type versionCmd struct{}

// Execute prints the version information.
func (c *versionCmd) Execute(_ []string) error {
	fmt.Printf("mood-playlist %s (%s)\n", version, commit)
	return nil
}
