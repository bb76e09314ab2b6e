// Package handrail carries module-level metadata shared by the library
// packages and the grip CLI.
package handrail

// Version is the released version of the handrail module.
const Version = "0.1.0"
