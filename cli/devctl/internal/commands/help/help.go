// Package help registers the task listing.
package help

import (
	"fmt"
	"io"
	"strconv"

	"devkit/cli/devctl/internal/cmdregistry"
	"devkit/cli/devctl/internal/tableview"
)

// Name is what the dispatcher runs when no task is given.
const Name = "help"

func Register(r *cmdregistry.Registry) {
	r.Register(Name, "Display a list of commands", handleHelp)
}

func handleHelp(ctx *cmdregistry.Context) error {
	return Write(ctx.Stdout, ctx.Program, ctx.Registry.Public(), ctx.Config.Docs)
}

// Write prints the usage line, the numbered public tasks in registration
// order and a pointer to docs.
func Write(w io.Writer, program string, tasks []cmdregistry.Descriptor, docs string) error {
	rows := make([][]string, 0, len(tasks))
	for i, d := range tasks {
		rows = append(rows, []string{strconv.Itoa(i + 1), d.Name, d.Summary})
	}
	if _, err := fmt.Fprintf(w, "%s <task> [args]\n\nTasks:\n", program); err != nil {
		return err
	}
	if len(rows) > 0 {
		if _, err := fmt.Fprintln(w, tableview.Plain(rows, []tableview.Align{tableview.AlignRight})); err != nil {
			return err
		}
	}
	if docs != "" {
		if _, err := fmt.Fprintf(w, "\nExtra docs are available in %s\n", docs); err != nil {
			return err
		}
	}
	return nil
}
