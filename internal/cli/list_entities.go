package autoworker

import (
	"fmt"

	"github.com/mwiater/autoworker/internal/entity"
	"github.com/spf13/cobra"
)

// listEntitiesCmd implements 'list entities', printing the keyword set
// derived from the entity directory.
var listEntitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "List entity names found in the entity directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFor(nil)
		if cfg.EntityDir == "" {
			return fmt.Errorf("an entity directory is required (--entityDir)")
		}
		store, err := entity.NewStore(cfg.EntityDir, cfg.EntityExtension(), cfg.CacheEntries())
		if err != nil {
			return err
		}
		names, err := store.Keywords()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if JSONModeEnabled() {
			return writeJSON(out, map[string]any{"dir": store.Dir(), "extension": store.Extension(), "entities": names})
		}
		fmt.Fprintf(out, "%s %d entities in %s (*%s)\n", successText("found"), len(names), store.Dir(), store.Extension())
		for _, name := range names {
			fmt.Fprintf(out, "  %s\n", name)
		}
		return nil
	},
}

func init() {
	listCmd.AddCommand(listEntitiesCmd)
}
