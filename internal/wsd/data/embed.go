// Package data embeds the sense inventory and context clue tables.
package data

import _ "embed"

//go:embed senses.yaml
var Senses []byte
