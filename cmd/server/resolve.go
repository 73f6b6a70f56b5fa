package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FreePeak/db-view-server/internal/domain"
)

// resolveOutput is what the resolve command prints
type resolveOutput struct {
	Outcome string             `json:"outcome"`
	View    *domain.ViewResult `json:"result,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func newResolveCmd(opts *options) *cobra.Command {
	var (
		params []string
		write  bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <identifier>",
		Short: "Resolve one identifier and print the outcome as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paramMap, err := parseParamFlags(params)
			if err != nil {
				return err
			}

			mode := domain.Read
			if write {
				mode = domain.Write
			}

			outcome := newResolver(opts.cfg).Resolve(cmd.Context(), domain.Request{
				Identifier: args[0],
				Params:     paramMap,
				Mode:       mode,
			})

			out := resolveOutput{Outcome: outcome.Kind.String()}
			if outcome.Kind != domain.OutcomeFatal {
				view := outcome.View
				out.View = &view
			}
			if outcome.Err != nil {
				out.Error = outcome.Err.Error()
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("failed to write outcome: %w", err)
			}

			if outcome.Kind == domain.OutcomeFatal {
				return outcome.Err
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&params, "param", nil, "Placeholder value as key=value; repeatable")
	cmd.Flags().BoolVar(&write, "write", false, "Run the SQL as a write statement")
	return cmd
}

// parseParamFlags turns repeated key=value flags into a parameter map; the
// first occurrence of a key wins
func parseParamFlags(pairs []string) (domain.ParameterMap, error) {
	params := domain.ParameterMap{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", pair)
		}
		if _, exists := params[key]; !exists {
			params[key] = value
		}
	}
	return params, nil
}
