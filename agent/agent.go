// Package agent implements the interactive assistant of the dashboard: a
// facilitator chat that answers the user by consulting expert chats, one of
// which reads the ledger through function calls.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Print writes an answer, markdown formatted. It defaults to printing the
	// raw text.
	Print func(w io.Writer, md string)
}

// New creates an Agent reading the user from r and answering on w.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
		Print:       func(w io.Writer, md string) { fmt.Fprintln(w, md) },
	}
}

// Start opens the chats of the facilitator and every expert.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// Run starts the interactive session. The prompts are sent first, as if the
// user typed them.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to finlit assist. Type 'bye' to exit.")
	for {
		input, err := a.next(&prompts)
		if errors.Is(err, io.EOF) || input == "bye" {
			return nil
		}
		if err != nil {
			return err
		}
		if input == "" {
			continue
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		a.Print(a.w, text(content))
	}
}

// next prompts for the next user input, taken from the pending prompts
// first, then from the reader. Pending prompts are echoed.
func (a *Agent) next(pending *[]string) (string, error) {
	fmt.Fprint(a.w, prompt)
	if len(*pending) > 0 {
		input := strings.TrimSpace((*pending)[0])
		*pending = (*pending)[1:]
		fmt.Fprintln(a.w, input)
		return input, nil
	}
	input, err := a.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// text concatenates the text parts of a content.
func text(c *genai.Content) string {
	var b strings.Builder
	for _, p := range c.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
