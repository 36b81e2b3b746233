package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/healthlink/fhir"
)

// Run connects to the configured server, reports its capability summary
// and optionally describes one named operation or runs the authorization
// flow.
func Run(args []string) error {
	return run(args, os.Stdout)
}

func run(args []string, out io.Writer) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	clientOptions, err := options.clientOptions()
	if err != nil {
		return err
	}
	session, err := fhir.NewClient(clientOptions)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if err := session.Ready(ctx); err != nil {
		return err
	}

	if capability, ok := session.Capability(); ok {
		fmt.Fprintf(out, "server:      %s\n", session.Name())
		fmt.Fprintf(out, "fhirVersion: %s\n", capability.FhirVersion)
		if rest := capability.PreferredRest(); rest != nil {
			for _, op := range rest.Operation {
				fmt.Fprintf(out, "operation:   %s (%s)\n", op.Name, op.Definition)
			}
		}
	}
	if strategy := session.Strategy(); strategy != nil {
		fmt.Fprintf(out, "auth:        %s\n", strategy.Type())
	}

	if options.Operation != "" {
		definition, err := session.Operation(ctx, options.Operation)
		if err != nil {
			return err
		}
		if definition == nil {
			return fmt.Errorf("server does not advertise operation %q", options.Operation)
		}
		encoded, err := json.MarshalIndent(definition, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n", encoded)
	}

	if options.Authorize {
		patient, err := session.Authorize(ctx, nil)
		if err != nil {
			return err
		}
		if patient != nil {
			fmt.Fprintf(out, "patient:     %s/%s\n", patient.Type(), patient.ID())
		}
	}
	return nil
}
