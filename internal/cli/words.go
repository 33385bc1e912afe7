package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// wordsCommand creates the words command for editing stored weights.
func (c *CLI) wordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "List and edit the stored word weights",
	}

	cmd.AddCommand(c.wordsListCommand())
	cmd.AddCommand(c.wordsEditCommand("add", "Increase a word's weight by one", (*cloud.Cloud).Add))
	cmd.AddCommand(c.wordsEditCommand("remove", "Decrease a word's weight by one", (*cloud.Cloud).Remove))
	cmd.AddCommand(c.wordsResetCommand())
	cmd.AddCommand(c.wordsImportCommand())
	cmd.AddCommand(c.wordsClearCommand())

	return cmd
}

// wordsListCommand creates the "words list" subcommand.
func (c *CLI) wordsListCommand() *cobra.Command {
	var all, asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show stored words and weights",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := c.openWeights(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			entries := store.Load(ctx)
			if asJSON {
				data, err := words.Encode(entries)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			if !all {
				entries = entries.Visible()
			}
			res := store.LastLoad()
			printInfo("%d words from %s", len(entries), res.Source)
			for _, key := range res.Corrupt {
				printWarning("Ignored corrupt entry %q", key)
			}
			if len(entries) == 0 {
				printNextStep("Add a word", "wordcloud words add <label>")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderWordTable(entries, cfg.Words.MaxWeight))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include words at weight 0")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored JSON form")
	return cmd
}

// wordsEditCommand creates a subcommand that applies op to each label.
func (c *CLI) wordsEditCommand(name, short string, op func(*cloud.Cloud, context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <label>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCloud(cmd.Context(), func(cl *cloud.Cloud) error {
				for _, label := range args {
					if err := reportCommand(op(cl, cmd.Context(), label)); err != nil {
						return err
					}
					w, _ := cl.Weight(label)
					printSuccess("%s %s %s", StyleValue.Render(label), StyleDim.Render(iconArrow), StyleNumber.Render(fmt.Sprint(w)))
				}
				return nil
			})
		},
	}
}

// wordsResetCommand creates the "words reset" subcommand. The reset weights
// are written so the command has a lasting effect from the shell.
func (c *CLI) wordsResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Set every weight to the configured baseline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withCloud(ctx, func(cl *cloud.Cloud) error {
				if err := cl.ResetAll(ctx); err != nil {
					return err
				}
				if err := reportCommand(cl.Replace(ctx, cl.Entries())); err != nil {
					return err
				}
				printSuccess("Reset %d words", len(cl.Entries()))
				return nil
			})
		},
	}
}

// wordsImportCommand creates the "words import" subcommand.
func (c *CLI) wordsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the stored words with a word list (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			set, err := pipeline.ParseWords(r)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return c.withCloud(ctx, func(cl *cloud.Cloud) error {
				if err := reportCommand(cl.Replace(ctx, set)); err != nil {
					return err
				}
				printSuccess("Imported %d words", len(set))
				return nil
			})
		},
	}
}

// wordsClearCommand creates the "words clear" subcommand.
func (c *CLI) wordsClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withCloud(ctx, func(cl *cloud.Cloud) error {
				if err := cl.Clear(ctx); err != nil {
					return err
				}
				printSuccess("Cleared stored words")
				return nil
			})
		},
	}
}

// withCloud opens a cloud without a publisher and closes it after fn.
func (c *CLI) withCloud(ctx context.Context, fn func(*cloud.Cloud) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	cl, store, err := c.openCloud(ctx, cfg, nil, nil)
	if err != nil {
		return err
	}
	defer store.Close()
	defer cl.Close()
	return fn(cl)
}

// reportCommand prints storage warnings and passes other errors through.
func reportCommand(err error) error {
	if err != nil && errors.IsWarning(err) {
		printWarning("%s", errors.UserMessage(err))
		return nil
	}
	return err
}
