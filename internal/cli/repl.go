package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/agbru/polyroots/internal/config"
	"github.com/agbru/polyroots/internal/poly"
	"github.com/agbru/polyroots/internal/roots"
	"github.com/agbru/polyroots/internal/service"
)

// ServiceFactory builds the isolation service for the current settings.
type ServiceFactory func(cfg config.AppConfig) service.Service

// DefaultServiceFactory returns an unlimited RootService.
func DefaultServiceFactory(cfg config.AppConfig) service.Service {
	return service.NewRootService(cfg, service.Limits{})
}

// REPL is an interactive root isolation session. The settings changed by
// refine, print and prec apply to every later roots command.
type REPL struct {
	config     config.AppConfig
	newService ServiceFactory
	in         io.Reader
	out        io.Writer
}

// NewREPL creates a new REPL starting from cfg.
func NewREPL(cfg config.AppConfig) *REPL {
	if cfg.Prec == 0 {
		cfg.Prec = config.DefaultPrec
	}
	return &REPL{
		config:     cfg,
		newService: DefaultServiceFactory,
		in:         os.Stdin,
		out:        os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// SetServiceFactory replaces how the isolation service is built.
func (r *REPL) SetServiceFactory(f ServiceFactory) {
	if f != nil {
		r.newService = f
	}
}

// Start reads and runs commands until exit or EOF. ctx cancels a running
// isolation and ends the session.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(r.out, ColorGreen()+"roots> "+ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && strings.TrimSpace(input) != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ColorRed(), err, ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(ctx, input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ColorBlue(), ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sCertified polynomial roots - Interactive Mode%s        %s║%s\n",
		ColorBlue(), ColorReset(), ColorBold(), ColorReset(), ColorBlue(), ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ColorBlue(), ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  %sroots <poly>%s   - Isolate the roots of a family (\"w 10\") or coefficients (\"-2 0 1\")\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %srefine <d>%s     - Certify roots to d decimal digits\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sprint <d>%s      - Print roots with d digits (0 hides them)\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sprec <bits>%s    - Set the initial working precision\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sfamilies%s       - List the polynomial families\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s         - Display current settings\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s           - Display this help\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s    - Exit interactive mode\n", ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
}

// processCommand runs one command. It returns false when the REPL should
// exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "roots", "r":
		r.cmdRoots(ctx, args)
	case "refine":
		r.setDigits(args, "refine", &r.config.Refine)
	case "print":
		r.setDigits(args, "print", &r.config.Print)
	case "prec":
		r.cmdPrec(args)
	case "families", "ls":
		r.cmdFamilies()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ColorGreen(), ColorReset())
		return false
	default:
		// A bare polynomial is a roots command.
		if _, err := poly.Parse(parts); err == nil {
			r.cmdRoots(ctx, parts)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ColorRed(), cmd, ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ColorYellow(), ColorReset())
		}
	}

	return true
}

func (r *REPL) cmdRoots(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: roots <family args...> | roots <c0 c1 ... cn>%s\n", ColorRed(), ColorReset())
		return
	}
	p, err := poly.Parse(args)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}
	r.isolate(ctx, p)
}

// isolate runs one isolation with the round display attached.
func (r *REPL) isolate(ctx context.Context, p poly.Int) {
	defl, err := roots.Analyze(p)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}
	PrintSearchHeader(r.out, p.Degree(), defl.Q.Degree())

	events := make(chan roots.RoundEvent, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayRounds(&wg, events, r.out, true)

	res, err := r.newService(r.config).Isolate(ctx, p, r.config.Refine, roots.NewChannelObserver(events))
	close(events)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}
	DisplayRoots(r.out, res.Roots, r.config.Print)
	DisplaySummary(r.out, res)
	fmt.Fprintln(r.out)
}

func (r *REPL) setDigits(args []string, name string, dst *int) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s <digits>%s\n", ColorRed(), name, ColorReset())
		return
	}
	d, err := strconv.Atoi(args[0])
	if err != nil || d < 0 {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ColorRed(), args[0], ColorReset())
		return
	}
	*dst = d
	fmt.Fprintf(r.out, "%s set to: %s%d%s digits\n", name, ColorGreen(), d, ColorReset())
}

func (r *REPL) cmdPrec(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: prec <bits>%s\n", ColorRed(), ColorReset())
		return
	}
	p, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || p == 0 {
		fmt.Fprintf(r.out, "%sInvalid precision: %s%s\n", ColorRed(), args[0], ColorReset())
		return
	}
	if r.config.MaxPrec > 0 && uint(p) > r.config.MaxPrec {
		fmt.Fprintf(r.out, "%sPrecision %d exceeds the ceiling %d%s\n", ColorRed(), p, r.config.MaxPrec, ColorReset())
		return
	}
	r.config.Prec = uint(p)
	fmt.Fprintf(r.out, "Initial precision set to: %s%d%s bits\n", ColorGreen(), p, ColorReset())
}

func (r *REPL) cmdFamilies() {
	fmt.Fprintf(r.out, "\n%sPolynomial families:%s\n", ColorBold(), ColorReset())
	for _, f := range poly.Families() {
		fmt.Fprintf(r.out, "  %s%-12s%s %s\n", ColorYellow(), f.Usage, ColorReset(), f.Description)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent settings:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  Refine:         %s%d%s digits (2^-%d)\n", ColorBlue(), r.config.Refine, ColorReset(), r.config.TargetBits())
	fmt.Fprintf(r.out, "  Print:          %s%d%s digits\n", ColorBlue(), r.config.Print, ColorReset())
	fmt.Fprintf(r.out, "  Precision:      %s%d%s bits\n", ColorBlue(), r.config.Prec, ColorReset())
	maxPrec := "unbounded"
	if r.config.MaxPrec > 0 {
		maxPrec = fmt.Sprintf("%d bits", r.config.MaxPrec)
	}
	fmt.Fprintf(r.out, "  Ceiling:        %s%s%s\n", ColorBlue(), maxPrec, ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ColorBlue(), r.config.Timeout, ColorReset())
	fmt.Fprintf(r.out, "  Multiplication: %s%s%s\n", ColorBlue(), poly.Backend, ColorReset())
	fmt.Fprintln(r.out)
}
