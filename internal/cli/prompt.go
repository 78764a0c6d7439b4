// Package cli collects and validates interactive user input and renders
// departure rows. Invalid input re-prompts with a fixed message and never
// aborts the session.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Prompter reads answers line by line from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) ask(prompt string) (string, bool) {
	fmt.Fprintln(p.out, prompt)
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

// Date prompts until a real calendar date in YYYY-MM-DD form is entered.
// ok is false when input is exhausted.
func (p *Prompter) Date() (date time.Time, ok bool) {
	for {
		answer, more := p.ask("What date will you depart? (YYYY-MM-DD)")
		if !more {
			return time.Time{}, false
		}
		d, err := ParseDate(answer)
		if err != nil {
			fmt.Fprintln(p.out, "Incorrect date format. Please use YYYY-MM-DD.")
			continue
		}
		return d, true
	}
}

// Time prompts until a 24-hour HH:mm time is entered.
func (p *Prompter) Time() (clock string, ok bool) {
	for {
		answer, more := p.ask("What time will you depart? (HH:mm)")
		if !more {
			return "", false
		}
		c, err := ParseClock(answer)
		if err != nil {
			fmt.Fprintln(p.out, "Incorrect time format. Please use HH:mm.")
			continue
		}
		return c, true
	}
}

// Route prompts with a numbered menu: option 1 keeps every route, options
// 2..len(routes)+1 keep a single route by short name. It returns the chosen
// filter.
func (p *Prompter) Route(routes []string) (keep func(shortName string) bool, ok bool) {
	var menu strings.Builder
	menu.WriteString("Which route would you like?\n")
	menu.WriteString("  1: All routes\n")
	for i, r := range routes {
		fmt.Fprintf(&menu, "  %d: Route %s\n", i+2, r)
	}
	prompt := strings.TrimRight(menu.String(), "\n")

	for {
		answer, more := p.ask(prompt)
		if !more {
			return nil, false
		}
		choice, err := strconv.Atoi(answer)
		if err != nil || choice < 1 || choice > len(routes)+1 {
			fmt.Fprintln(p.out, "Please enter a number from the list.")
			continue
		}
		if choice == 1 {
			return nil, true
		}
		want := routes[choice-2]
		return func(shortName string) bool { return shortName == want }, true
	}
}

// Again prompts until the user answers y or n, reporting whether another
// query should run.
func (p *Prompter) Again() (again bool, ok bool) {
	for {
		answer, more := p.ask("Would you like to search again? (y/n)")
		if !more {
			return false, false
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, true
		case "n", "no":
			return false, true
		default:
			fmt.Fprintln(p.out, "Please answer y or n.")
		}
	}
}

// ParseDate validates a YYYY-MM-DD string as a real calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// ParseClock validates an HH:mm 24-hour time and returns it zero-padded.
func ParseClock(s string) (string, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Format("15:04"), nil
}
