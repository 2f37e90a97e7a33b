// Package data embeds the sense override and modifier tables.
package data

import _ "embed"

//go:embed modifiers.yaml
var Modifiers []byte
