package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cogtests/internal/dictionary"
)

var wordsCmd = &cobra.Command{
	Use:   "words [word...]",
	Short: "Inspect the anagram word list",
	Long:  "Without arguments, reports where the anagram word list comes from and how many words it holds. With arguments, reports whether each word is in it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		words := dictionary.New(cfg.DictionaryPath)
		list, err := words.Words()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			source := words.Path()
			if source == "" {
				source = "built-in list"
			}
			fmt.Printf("%s: %d words of %d to %d letters\n", source, len(list), dictionary.MinLength, dictionary.MaxLength)
			return nil
		}
		for _, w := range args {
			switch {
			case words.Contains(w):
				fmt.Printf("%s: yes\n", w)
			case !dictionary.Eligible(w):
				fmt.Printf("%s: no (anagrams use %d to %d letters)\n", w, dictionary.MinLength, dictionary.MaxLength)
			default:
				fmt.Printf("%s: no\n", w)
			}
		}
		return nil
	},
}
