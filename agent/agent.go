// Package agent implements the interactive assistant behind `kas assist`:
// a Gemini chat primed with the loaded sheet, answering questions about it.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

const instructions = `You are the treasurer of a small household cash ledger
kept in Indonesian rupiah. You are given the current sheet: its balances and
its transactions, with dates, descriptions, the party (pihak) each entry
belongs to, the source (sumber, ATM or CASH), and signed amounts where "+"
is money in (debit) and "-" is money out (kredit).

Answer questions about this sheet only: totals, who spent what, unusual
entries, balance breakdowns. Answer in the language of the question. Do not
invent transactions that are not in the sheet.`

// Assistant is a chat session over one loaded sheet snapshot.
type Assistant struct {
	w     io.Writer
	r     *bufio.Reader
	sheet string // rendered markdown of the current sheet
	chat  *genai.Chat
}

// New creates an assistant for the given rendered sheet. It reads user input
// from r and writes to w.
func New(w io.Writer, r io.Reader, sheet string) *Assistant {
	return &Assistant{w: w, r: bufio.NewReader(r), sheet: sheet}
}

// Start opens the chat with the sheet snapshot as context.
func (a *Assistant) Start(ctx context.Context, client *genai.Client) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{
			{Text: instructions},
			{Text: "The current sheet:\n\n" + a.sheet},
		}},
	}
	chat, err := client.Chats.Create(ctx, model, config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Ask sends one question and returns the assistant's answer.
func (a *Assistant) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the assistant")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

const prompt = "assist> "

// Run starts the interactive REPL session. Initial prompts, if any, are
// consumed before reading from the user. Typing 'bye' (or Ctrl+D) exits.
func (a *Assistant) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Tanya apa saja tentang sheet ini. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}
