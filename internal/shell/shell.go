// Package shell hosts the application behind an interactive terminal. It is
// a pure consumer of the store: every mutation goes through Dispatch and
// every read goes through State.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/MarcoPoloResearchLab/boxxit/internal/state"
)

// Prompt is the interactive prompt shown for every input line.
const Prompt = "boxxit> "

var errStoreRequired = errors.New("shell: store is required")

// Config carries the shell's dependencies. Store is required; Out defaults
// to stdout, Clock to the wall clock, IDProvider to UUIDv7 and Logger to a
// no-op logger.
type Config struct {
	Store      *state.Store
	Out        io.Writer
	Clock      func() time.Time
	IDProvider state.IDProvider
	Logger     *zap.Logger
}

// Shell reads commands, renders views, and dispatches actions.
type Shell struct {
	store      *state.Store
	out        io.Writer
	clock      func() time.Time
	idProvider state.IDProvider
	logger     *zap.Logger
}

// New builds a Shell from the supplied configuration.
func New(shellConfig Config) (*Shell, error) {
	if shellConfig.Store == nil {
		return nil, errStoreRequired
	}
	out := shellConfig.Out
	if out == nil {
		out = os.Stdout
	}
	clock := shellConfig.Clock
	if clock == nil {
		clock = time.Now
	}
	idProvider := shellConfig.IDProvider
	if idProvider == nil {
		idProvider = state.UUIDProvider{}
	}
	logger := shellConfig.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{
		store:      shellConfig.Store,
		out:        out,
		clock:      clock,
		idProvider: idProvider,
		logger:     logger,
	}, nil
}

// Run reads lines until exit, EOF, or interrupt. Each line is parsed and
// executed; command errors are printed, never fatal.
func (s *Shell) Run(lineReader *readline.Instance) error {
	for {
		line, readError := lineReader.Readline()
		if readError == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if readError == io.EOF {
			return nil
		}
		if readError != nil {
			return readError
		}

		if !s.Execute(line) {
			return nil
		}
	}
}

// Execute runs one command line. It returns false when the user asked to
// exit.
func (s *Shell) Execute(line string) bool {
	args := ParseArgs(strings.TrimSpace(line))
	if len(args) == 0 {
		return true
	}

	command := args[0]
	rest := args[1:]
	s.logger.Debug("command received", zap.String("command", command))

	switch command {
	case "exit", "quit":
		fmt.Fprintln(s.out, "Bye.")
		return false
	case "help":
		s.printHelp()
	default:
		if commandError := s.dispatchCommand(command, rest); commandError != nil {
			fmt.Fprintf(s.out, "error: %v\n", commandError)
		}
	}
	return true
}

// ParseArgs splits a command line into arguments, honoring double quotes so
// titles and card text can contain spaces.
func ParseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes {
				if currentArg.Len() > 0 {
					args = append(args, currentArg.String())
					currentArg.Reset()
				}
			} else {
				currentArg.WriteRune(char)
			}
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 {
		args = append(args, currentArg.String())
	}

	return args
}

// NewLineReader builds the readline instance the shell runs on.
func NewLineReader(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          Prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
}

func (s *Shell) printHelp() {
	fmt.Fprint(s.out, `Boxes
  boxes [recent|alpha|archived] [--filter text]   list boxes
  open <box>                                      open a box and list its cards
  new-box <title> [description]                   create a box
  edit-box <box> <title|description|color> <value> edit a box field
  clone-box <box>                                 duplicate a box for yourself
  pin-box <box> | archive-box <box> | delete-box <box>
  view-mode <box>                                 toggle mini/max card rendering
  accept <box> | decline <box>                    answer an invitation
  remove-member <box> <user>                      remove a member

Chat
  chat <box>                                      read the box chat
  say <box> <text>                                send a chat message
  comment <card> <text>                           comment on a card

Cards
  new-card <box> <text>                           add a card
  edit-card <card> <text>                         rewrite a card
  delete-card <card> | pin-card <card>
  move-card <box> <source-card> <target-card>     reorder within a box
  pinned                                          the pinned-cards shelf

People
  members [query] | member <user>
  invite <user> | accept-friend <user> | decline-friend <user> | cancel-invite <user>

Other
  feed [query]                                    activity feed, oldest first
  search <query>                                  search boxes, cards, people
  help | exit | quit
`)
}
