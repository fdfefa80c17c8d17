package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"porch/internal/todo"
	"porch/internal/ui"
)

func newTasksCmd(app *App) *cobra.Command {
	var (
		filter string
		reset  bool
	)
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Print the to-do list",
		Long: "Print the to-do list. Without --filter the list uses default_filter from the config\n" +
			"(all unless changed); the interactive page always starts on all.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if reset {
				if err := s.kv.Remove(s.cfg.StorageKey); err != nil {
					return fmt.Errorf("failed to reset tasks: %w", err)
				}
				s.log.Info("task list reset", "key", s.cfg.StorageKey)
			}

			f := s.listFilter()
			if cmd.Flags().Changed("filter") {
				var ok bool
				f, ok = todo.ParseFilter(filter)
				if !ok {
					return fmt.Errorf("unknown filter %q (want all, active or completed)", filter)
				}
			}
			store := s.tasks(todo.WithFilter(f))

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.TaskList(store.Visible()))
			fmt.Fprintln(out, store.RemainingLabel())
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "Which tasks to show (all|active|completed); defaults to default_filter from the config")
	cmd.Flags().BoolVar(&reset, "reset", false, "Delete the stored task list before printing")
	return cmd
}
