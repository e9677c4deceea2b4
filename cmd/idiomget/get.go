package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cayleygraph/idiom/idiom"
	"github.com/cayleygraph/idiom/memfetcher"
)

// NewGetCmd builds the "get" subcommand: it reads a JSON value and a path
// expression from flags/stdin and prints the get() result.
func NewGetCmd() *cobra.Command {
	var valueFlag, valueFile, pathExpr string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Evaluate a path expression against a JSON value and print the result.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readValueInput(cmd, valueFlag, valueFile)
			if err != nil {
				return err
			}
			value, err := decodeValue(data)
			if err != nil {
				return err
			}
			path, err := parsePath(pathExpr)
			if err != nil {
				return err
			}

			o := &idiom.Options{
				FuturesEnabled: viper.GetBool(KeyFuturesEnabled),
				Depth:          idiom.ConstDepthBudget(viper.GetInt(KeyMaxDepth)),
				Fetcher:        memfetcher.NewFetcher(memfetcher.NewStore()),
				Dispatcher:     builtinDispatcher{},
			}
			result, err := idiom.Get(context.Background(), value, path, &idiom.Context{}, o, idiom.NewCursorDoc(value))
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(encodeValue(result), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&valueFlag, "value", "", "the JSON value to evaluate against, as a literal string")
	cmd.Flags().StringVar(&valueFile, "value-file", "", `path to a file containing the JSON value ("-" for stdin)`)
	cmd.Flags().StringVar(&pathExpr, "path", "", `the path expression to evaluate, e.g. "friends[0].name"`)
	return cmd
}

func readValueInput(cmd *cobra.Command, literal, file string) ([]byte, error) {
	if literal != "" {
		return []byte(literal), nil
	}
	if file != "" && file != "-" {
		return ioutil.ReadFile(file)
	}
	return ioutil.ReadAll(cmd.InOrStdin())
}
