// Package mini implements a lightweight, minimalist interface for manga search and reading.
package mini

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mangasan-cli/mangasan/color"
	"github.com/mangasan-cli/mangasan/icon"
	"github.com/mangasan-cli/mangasan/style"
	"github.com/mangasan-cli/mangasan/util"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/lo"
)

// bind is a single-key menu action.
type bind struct {
	key, description string
}

func (b *bind) eq(other *bind) bool {
	return other != nil && b.key == other.key
}

func (b *bind) String() string {
	return fmt.Sprintf("[%s] %s", b.key, b.description)
}

var (
	quit   = &bind{key: "q", description: "quit"}
	next   = &bind{key: "n", description: "next chapter"}
	prev   = &bind{key: "p", description: "previous chapter"}
	reread = &bind{key: "r", description: "reread"}
	back   = &bind{key: "b", description: "back"}
	search = &bind{key: "s", description: "search"}
)

var stdin = bufio.NewReader(os.Stdin)

// input is a validated line read from the terminal.
type input struct {
	value string
}

// getInput reads lines from stdin until one passes validation.
func getInput(validate func(string) bool) (*input, error) {
	for {
		fmt.Print(style.Fg(style.AccentColor)("> "))

		line, err := stdin.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if validate(line) {
			return &input{value: line}, nil
		}

		fail("Invalid input")
	}
}

// menu prints a numbered list of items plus single-key binds and reads the
// user's choice. The quit bind is always available. It returns either the
// matched bind or the chosen item, never both.
func menu[T fmt.Stringer](items []T, extra ...*bind) (*bind, T, error) {
	var zero T

	binds := append([]*bind{}, extra...)
	if !lo.Contains(binds, quit) {
		binds = append(binds, quit)
	}

	for i, item := range items {
		fmt.Printf("%s %s\n", style.Faint(fmt.Sprintf("[%d]", i+1)), truncateLine(item.String()))
	}
	for _, b := range binds {
		fmt.Printf("%s %s\n", style.Faint("["+b.key+"]"), b.description)
	}

	in, err := getInput(func(s string) bool {
		if _, ok := lo.Find(binds, func(b *bind) bool { return b.key == s }); ok {
			return true
		}

		num, err := strconv.Atoi(s)
		return err == nil && 0 < num && num <= len(items)
	})
	if err != nil {
		return nil, zero, err
	}

	if b, ok := lo.Find(binds, func(b *bind) bool { return b.key == in.value }); ok {
		return b, zero, nil
	}

	num := lo.Must(strconv.Atoi(in.value))
	return nil, items[num-1], nil
}

func title(s string) {
	fmt.Println(style.Title(s))
}

func progress(s string) (eraser func()) {
	return util.PrintErasable(fmt.Sprintf("%s %s", icon.Get(icon.Progress), s))
}

func fail(s string) {
	fmt.Printf("%s %s\n", icon.Get(icon.Fail), style.Fg(color.Red)(s))
}

func truncateLine(s string) string {
	if truncateAt <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(truncateAt), "…")
}
