// Package hcl_adapter reads run configuration files written in HCL.
//
// The `env` variable holds the process environment, and the string functions
// lower, upper, trim and concat are available in expressions.
package hcl_adapter
