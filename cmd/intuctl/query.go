package main

import (
	"context"
	"fmt"

	"github.com/intuition-tools/intuctl/pkg/graphql"
	"github.com/intuition-tools/intuctl/pkg/intuition"
	"github.com/intuition-tools/intuctl/pkg/render"
	"github.com/intuition-tools/intuctl/pkg/trustscore"
	"github.com/spf13/cobra"
)

var (
	flagSearch     string
	flagID         string
	flagTriples    string
	flagPositions  string
	flagAccount    string
	flagTrustScore string
	flagLimit      int
	flagTestnet    bool
	flagFormat     string
)

var operationFlags = []string{"search", "id", "triples-about", "positions", "account", "trust-score"}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flagSearch, "search", "", "Search atoms by label")
	f.StringVar(&flagID, "id", "", "Get a term (atom or triple) by id")
	f.StringVar(&flagTriples, "triples-about", "", "List claims where the term is the subject")
	f.StringVar(&flagPositions, "positions", "", "List stake positions on a term")
	f.StringVar(&flagAccount, "account", "", "Get an account by address")
	f.StringVar(&flagTrustScore, "trust-score", "", "Derive a trust report for a term")
	f.IntVar(&flagLimit, "limit", intuition.DefaultLimit, "Limit results")
	f.BoolVar(&flagTestnet, "testnet", false, "Use the testnet endpoint")
	f.StringVar(&flagFormat, "format", "json", "Output format: json or text")

	rootCmd.MarkFlagsOneRequired(operationFlags...)
	rootCmd.MarkFlagsMutuallyExclusive(operationFlags...)
}

// endpointOverride lets tests point the command at a mock server.
var endpointOverride string

func clientConfig() graphql.Config {
	cfg := graphql.NewConfig(flagTestnet)
	if endpointOverride != "" {
		cfg.Endpoint = endpointOverride
	}
	return cfg
}

// runQuery dispatches the selected operation and prints its result. A result
// carrying an error field is still printed normally: only usage problems make
// the process exit non-zero.
func runQuery(cmd *cobra.Command, _ []string) error {
	if flagLimit <= 0 {
		return fmt.Errorf("--limit must be a positive integer")
	}
	if flagFormat != "json" && flagFormat != "text" {
		return fmt.Errorf("--format must be one of: json, text")
	}

	client := intuition.NewClient(graphql.NewClient(clientConfig()))
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintln(cmd.OutOrStdout(), dispatch(ctx, cmd, client))
	return nil
}

func dispatch(ctx context.Context, cmd *cobra.Command, client *intuition.Client) string {
	changed := cmd.Flags().Changed

	switch {
	case changed("search"):
		res := client.Search(ctx, flagSearch, flagLimit)
		return formatResult(res, func() (string, error) {
			atoms, err := intuition.DecodeAtoms(res)
			if err != nil {
				return "", err
			}
			if len(atoms) > flagLimit {
				atoms = atoms[:flagLimit]
			}
			return render.Atoms(atoms), nil
		})

	case changed("id"):
		res := client.GetTerm(ctx, flagID)
		return formatResult(res, func() (string, error) {
			term, err := intuition.DecodeTerm(res)
			if err != nil {
				return "", err
			}
			return render.Term(term), nil
		})

	case changed("triples-about"):
		res := client.TriplesAbout(ctx, flagTriples, flagLimit)
		return formatResult(res, func() (string, error) {
			triples, err := intuition.DecodeTriples(res)
			if err != nil {
				return "", err
			}
			return render.Triples(triples), nil
		})

	case changed("positions"):
		res := client.Positions(ctx, flagPositions, flagLimit)
		return formatResult(res, func() (string, error) {
			positions, err := intuition.DecodePositions(res)
			if err != nil {
				return "", err
			}
			return render.Positions(positions), nil
		})

	case changed("account"):
		res := client.Account(ctx, flagAccount)
		return formatResult(res, func() (string, error) {
			account, err := intuition.DecodeAccount(res)
			if err != nil {
				return "", err
			}
			return render.Account(account), nil
		})

	case changed("trust-score"):
		report := trustscore.New(client).Build(ctx, flagTrustScore)
		if flagFormat == "text" {
			return render.Report(report)
		}
		return render.JSON(report)
	}

	// Unreachable: cobra enforces that one operation flag is set.
	return ""
}

// formatResult renders a query result in the selected output mode. In text
// mode failures collapse to a single error line.
func formatResult(res *graphql.Result, text func() (string, error)) string {
	if flagFormat == "json" {
		return render.JSON(res)
	}
	if res.Failed() {
		return render.ErrorLine(res.Error)
	}
	out, err := text()
	if err != nil {
		return render.ErrorLine(err.Error())
	}
	return out
}
