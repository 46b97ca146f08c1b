// Package confirm gates destructive operations behind an explicit answer.
//
// A destructive request moves through Requested, AwaitingConfirmation and
// finally Committed or Aborted. AwaitingConfirmation is the only point where
// the caller blocks; Prompt reads synchronously with no timeout.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Answer is the literal reply that commits a destructive operation
const Answer = "yes"

// State is a step of a destructive operation
type State int

const (
	Requested State = iota
	AwaitingConfirmation
	Committed
	Aborted
)

func (s State) String() string {
	switch s {
	case Requested:
		return "requested"
	case AwaitingConfirmation:
		return "awaiting confirmation"
	case Committed:
		return "committed"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Gate decides whether a destructive operation may proceed
type Gate interface {
	Confirm(question string) (bool, error)
}

// Request tracks a single destructive operation through its states
type Request struct {
	question string
	state    State
}

// NewRequest starts a request that will ask question
func NewRequest(question string) *Request {
	return &Request{question: question, state: Requested}
}

// State returns the current state
func (r *Request) State() State {
	return r.state
}

// Resolve asks the gate and returns the final state. It is only valid once.
func (r *Request) Resolve(gate Gate) (State, error) {
	if r.state != Requested {
		return r.state, fmt.Errorf("request already %s", r.state)
	}
	r.state = AwaitingConfirmation
	ok, err := gate.Confirm(r.question)
	if err != nil {
		r.state = Aborted
		return r.state, err
	}
	if ok {
		r.state = Committed
	} else {
		r.state = Aborted
	}
	return r.state, nil
}

// Prompt asks the question on Out and reads one line from In.
// Only the exact, case-sensitive answer "yes" commits.
type Prompt struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewPrompt creates a Prompt reading from in and writing to out
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{In: in, Out: out}
}

func (p *Prompt) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.Out, "%s (yes/[no]): ", question)
	line, err := ReadLine(p.bufReader())
	if err != nil {
		return false, err
	}
	return line == Answer, nil
}

func (p *Prompt) bufReader() *bufio.Reader {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	return p.reader
}

// ReadLine reads one line and trims surrounding whitespace. EOF without input
// yields an empty line.
func ReadLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Always commits without asking; it backs the --yes flag
type Always struct{}

func (Always) Confirm(string) (bool, error) {
	return true, nil
}
