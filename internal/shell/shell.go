// Package shell implements the interactive command loop that translates
// text commands into Store operations.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/ASHISH26940/shelf/internal/journal"
	"github.com/ASHISH26940/shelf/internal/store"
)

// Prompts written before each read, unless the loop is quiet.
const (
	PromptCommand = "Enter command (add, remove, show, exit): "
	PromptTitle   = "Enter book title: "
	PromptAuthor  = "Enter book author: "
	PromptYear    = "Enter book year: "
	PromptRemove  = "Enter book title to remove: "
)

// Fixed outcome lines.
const (
	MsgInvalidCommand = "Invalid command. Please try again."
	MsgInvalidYear    = "Invalid year, please enter a number"
	MsgEmpty          = "Library is empty."
	MsgExiting        = "Exiting..."
)

// State is the position of the loop in its command protocol.
type State int

// States of the loop. Terminated is final.
const (
	AwaitingCommand State = iota
	AwaitingArgs          // collecting fields for add or remove
	Terminated
)

func (s State) String() string {
	switch s {
	case AwaitingCommand:
		return "AWAITING_COMMAND"
	case AwaitingArgs:
		return "AWAITING_ARGS"
	case Terminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

type handler func(*Loop, context.Context) error

// handlers maps a case-folded command token to its implementation.
var handlers = map[string]handler{
	"add":    (*Loop).add,
	"remove": (*Loop).remove,
	"show":   (*Loop).show,
	"list":   (*Loop).show,
	"exit":   (*Loop).exit,
}

// commands returns the accepted command tokens, sorted.
func commands() []string {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the diagnostic logger. Protocol text never goes through it.
func WithLogger(logger hclog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithJournal records every applied add and remove.
func WithJournal(rec journal.Recorder) Option {
	return func(l *Loop) {
		l.journal = rec
	}
}

// WithSessionID tags journal entries with id.
func WithSessionID(id string) Option {
	return func(l *Loop) {
		l.session = id
	}
}

// WithQuiet suppresses prompts. Outcome lines are still written.
func WithQuiet(quiet bool) Option {
	return func(l *Loop) {
		l.quiet = quiet
	}
}

// Loop reads commands from in and applies them to a Store.
// Commands are processed one at a time; a command finishes before the next is read.
type Loop struct {
	store   store.Store
	in      io.Reader
	lines   <-chan line
	out     io.Writer
	logger  hclog.Logger
	journal journal.Recorder
	session string
	quiet   bool
	state   State
}

// New creates a Loop over st. The loop only ever uses the Store interface.
func New(st store.Store, in io.Reader, out io.Writer, opts ...Option) *Loop {
	l := &Loop{
		store:  st,
		in:     in,
		out:    out,
		logger: hclog.NewNullLogger(),
		state:  AwaitingCommand,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// line is one scanned input line, or the error that ended input.
type line struct {
	text string
	err  error
}

// scan feeds lines from in until input ends or done is closed.
// Lines have no length limit.
func scan(in io.Reader, done <-chan struct{}) <-chan line {
	ch := make(chan line)
	go func() {
		defer close(ch)
		send := func(ln line) bool {
			select {
			case ch <- ln:
				return true
			case <-done:
				return false
			}
		}

		reader := bufio.NewReader(in)
		for {
			text, err := reader.ReadString('\n')
			if len(text) > 0 {
				if !send(line{text: strings.TrimRight(text, "\r\n")}) {
					return
				}
			}
			if err == nil {
				continue
			}
			if !errors.Is(err, io.EOF) {
				err = errors.Wrap(err, "read input")
			}
			send(line{err: err})
			return
		}
	}()
	return ch
}

// State reports the current protocol state.
func (l *Loop) State() State {
	return l.state
}

// Run processes commands until exit, end of input, or ctx is done.
// Exit and end of input both return nil.
func (l *Loop) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		l.state = Terminated
		return err
	}
	l.logger.Debug("session started", "session", l.session)

	done := make(chan struct{})
	defer close(done)
	l.lines = scan(l.in, done)

	for l.state != Terminated {
		if err := ctx.Err(); err != nil {
			l.state = Terminated
			return err
		}

		text, err := l.readLine(ctx, PromptCommand)
		if err != nil {
			return l.stop(err)
		}

		token := strings.ToLower(text)
		h, ok := handlers[token]
		if !ok {
			l.logger.Debug("invalid command", "token", token, "accepted", commands())
			l.println(MsgInvalidCommand)
			continue
		}

		l.logger.Trace("dispatch", "command", token)
		if err := h(l, ctx); err != nil {
			return l.stop(err)
		}
	}

	l.logger.Debug("session ended", "session", l.session)
	return nil
}

// stop ends the session on a read failure. End of input is a normal exit.
func (l *Loop) stop(err error) error {
	if errors.Is(err, io.EOF) {
		l.logger.Debug("end of input", "state", l.state)
		return l.exit(context.Background())
	}
	l.state = Terminated
	return err
}

func (l *Loop) add(ctx context.Context) error {
	l.state = AwaitingArgs
	defer l.awaitCommand()

	title, err := l.readLine(ctx, PromptTitle)
	if err != nil {
		return err
	}
	author, err := l.readLine(ctx, PromptAuthor)
	if err != nil {
		return err
	}
	year, err := l.readYear(ctx)
	if err != nil {
		return err
	}

	r := store.Record{Title: title, Author: author, Year: year}
	l.store.Add(r)
	l.printf("Book '%s' added.\n", r.Title)
	l.record(journal.Entry{Op: journal.OpAdd, Title: r.Title, Author: r.Author, Year: r.Year})
	return nil
}

// readYear re-prompts until the operator enters an integer.
func (l *Loop) readYear(ctx context.Context) (int, error) {
	for {
		text, err := l.readLine(ctx, PromptYear)
		if err != nil {
			return 0, err
		}
		year, err := strconv.Atoi(text)
		if err == nil {
			return year, nil
		}
		l.logger.Debug("rejected year", "input", text)
		l.println(MsgInvalidYear)
	}
}

func (l *Loop) remove(ctx context.Context) error {
	l.state = AwaitingArgs
	defer l.awaitCommand()

	title, err := l.readLine(ctx, PromptRemove)
	if err != nil {
		return err
	}

	found := l.store.Remove(title)
	if found {
		l.printf("Book '%s' removed.\n", title)
	} else {
		l.printf("Book '%s' not found.\n", title)
	}
	l.record(journal.Entry{Op: journal.OpRemove, Title: title, Found: journal.Found(found)})
	return nil
}

func (l *Loop) show(_ context.Context) error {
	books := l.store.List()
	if len(books) == 0 {
		l.println(MsgEmpty)
		return nil
	}
	for _, b := range books {
		l.println(b.String())
	}
	return nil
}

func (l *Loop) exit(_ context.Context) error {
	l.state = Terminated
	l.println(MsgExiting)
	return nil
}

func (l *Loop) awaitCommand() {
	if l.state == AwaitingArgs {
		l.state = AwaitingCommand
	}
}

// readLine writes prompt (unless quiet) and returns the next trimmed line.
// It stops waiting when ctx is done.
func (l *Loop) readLine(ctx context.Context, prompt string) (string, error) {
	if !l.quiet {
		fmt.Fprint(l.out, prompt)
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case ln, ok := <-l.lines:
		if !ok {
			return "", io.EOF
		}
		if ln.err != nil {
			return "", ln.err
		}
		return strings.TrimSpace(ln.text), nil
	}
}

// record journals e. Failures are logged; the command has already been applied.
func (l *Loop) record(e journal.Entry) {
	if l.journal == nil {
		return
	}
	e.Session = l.session
	if err := l.journal.Record(e); err != nil {
		l.logger.Warn("failed to journal command", "op", e.Op, "title", e.Title, "error", err)
	}
}

func (l *Loop) println(s string) {
	fmt.Fprintln(l.out, s)
}

func (l *Loop) printf(format string, args ...interface{}) {
	fmt.Fprintf(l.out, format, args...)
}
