package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
	"golang.org/x/term"

	"github.com/five82/ticklist/internal/gateway"
	"github.com/five82/ticklist/internal/todo"
)

var errBlankText = errors.New("must not be empty")

// parseID validates an item id argument.
func parseID(arg string) (todo.ID, error) {
	id := todo.ID(strings.TrimSpace(arg))
	if id.IsZero() {
		return "", criterio.NewFieldErrors("id", errors.New("an item id is required"))
	}
	return id, nil
}

// validateText rejects text that would not make a valid item.
func validateText(text string) error {
	if todo.Blank(text) {
		return criterio.NewFieldErrors("text", errBlankText)
	}
	return nil
}

// findItem fetches the collection and returns the item with the given id.
// PUT replaces the whole item, so updates need its current fields.
func findItem(ctx context.Context, gw gateway.Gateway, id todo.ID) (todo.Item, error) {
	items, err := gw.List(ctx)
	if err != nil {
		return todo.Item{}, fmt.Errorf("list items: %w", err)
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return todo.Item{}, fmt.Errorf("item %s not found", id)
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r any) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func reader(r io.Reader) io.Reader {
	if r == nil {
		return os.Stdin
	}
	return r
}

func writer(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
