// Package data embeds the sentiment word and emoji tables.
package data

import _ "embed"

//go:embed positive.tsv
var Positive string

//go:embed negative.tsv
var Negative string

//go:embed emoji.tsv
var Emoji string
