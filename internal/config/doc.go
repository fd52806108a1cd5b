// Package config defines the format-agnostic run configuration, along with
// the Loader interface for reading it from a file.
//
// A config.Model only carries what the file said; unset fields keep their
// zero value so the caller can layer flags and environment defaults on top.
// The HCL implementation lives in the hcl_adapter package.
package config
