// Command parcelctl runs operator tasks against the parcel database.
//
// Usage:
//
//	parcelctl run-delivery-costs
//	parcelctl seed-parcel-types [name ...]
//	parcelctl delete-parcel-type <name>
//
// Exit codes:
//
//	0 = success
//	1 = the operation failed
//	2 = usage or startup error
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

const usageString = `usage: parcelctl <command> [arguments]

commands:
  run-delivery-costs          price every parcel that has no delivery cost yet
  seed-parcel-types [name...] create missing parcel types (default: Clothing, Electronics, Misc)
  delete-parcel-type <name>   delete a parcel type that no parcel uses
`

// operations are the use cases parcelctl can run.
type operations interface {
	CalculateDeliveryCosts(ctx context.Context) (commands.CalculateDeliveryCostsResult, error)
	SeedParcelTypes(ctx context.Context, names []string) (int, error)
	DeleteParcelType(ctx context.Context, name string) error
}

// connectFunc opens the application and returns a function releasing it.
type connectFunc func(ctx context.Context, logger *slog.Logger) (operations, func(), error)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args[1:], os.Stdout, os.Stderr, connect)
	stop()
	os.Exit(code)
}

// Run executes one command and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, connect connectFunc) int {
	if len(args) == 0 {
		_, _ = fmt.Fprint(stderr, usageString)
		return exitUsage
	}

	name, rest := args[0], args[1:]
	switch name {
	case "help", "-h", "--help":
		_, _ = fmt.Fprint(stdout, usageString)
		return exitOK
	case "run-delivery-costs", "seed-parcel-types", "delete-parcel-type":
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n%s", name, usageString)
		return exitUsage
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(rest); err != nil {
		return exitUsage
	}
	if name == "delete-parcel-type" && fs.NArg() != 1 {
		_, _ = fmt.Fprintln(stderr, "Error: delete-parcel-type takes exactly one parcel type name")
		return exitUsage
	}
	if name == "run-delivery-costs" && fs.NArg() != 0 {
		_, _ = fmt.Fprintln(stderr, "Error: run-delivery-costs takes no arguments")
		return exitUsage
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	ops, release, err := connect(ctx, logger)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %s\n", errs.Sanitize(err.Error()))
		return exitUsage
	}
	defer release()

	switch name {
	case "run-delivery-costs":
		return runDeliveryCosts(ctx, ops, stdout, stderr)
	case "seed-parcel-types":
		return seedParcelTypes(ctx, ops, fs.Args(), stdout, stderr)
	default:
		return deleteParcelType(ctx, ops, fs.Arg(0), stdout, stderr)
	}
}

func runDeliveryCosts(ctx context.Context, ops operations, stdout, stderr io.Writer) int {
	result, err := ops.CalculateDeliveryCosts(ctx)
	_, _ = fmt.Fprintf(stdout, "priced=%d failed=%d\n", result.Priced, result.Failed)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %s\n", errs.Sanitize(err.Error()))
		return exitFailed
	}
	return exitOK
}

func seedParcelTypes(ctx context.Context, ops operations, names []string, stdout, stderr io.Writer) int {
	created, err := ops.SeedParcelTypes(ctx, names)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %s\n", errs.Sanitize(err.Error()))
		return exitFailed
	}
	_, _ = fmt.Fprintf(stdout, "created %d parcel types\n", created)
	return exitOK
}

func deleteParcelType(ctx context.Context, ops operations, name string, stdout, stderr io.Writer) int {
	err := ops.DeleteParcelType(ctx, name)
	switch {
	case err == nil:
		_, _ = fmt.Fprintf(stdout, "deleted parcel type %q\n", name)
		return exitOK
	case errors.Is(err, ports.ErrParcelTypeInUse):
		_, _ = fmt.Fprintf(stderr, "Error: parcel type %q is still used by parcels\n", name)
	case errors.Is(err, errs.ErrObjectNotFound):
		_, _ = fmt.Fprintf(stderr, "Error: parcel type %q does not exist\n", name)
	default:
		_, _ = fmt.Fprintf(stderr, "Error: %s\n", errs.Sanitize(err.Error()))
	}
	return exitFailed
}
