// Package stdlib holds the eel scripts bundled into the interpreter. They
// are found by IMPORT after the library paths, e.g. IMPORT "lists".
package stdlib

import "embed"

//go:embed *.eel
var Scripts embed.FS
