// Package preflight implements the "preflight" host diagnostics task. It
// checks that the container engine and compose are usable, whether
// shellcheck is installed and whether the dotenv file or its template exist,
// then prints the results as a table.
package preflight
