package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/diskreport"
)

// Run executes the vendor command.
func (c *VendorCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, diskreport.DeriveVendor(strings.Join(c.Model, " ")))
	return nil
}
