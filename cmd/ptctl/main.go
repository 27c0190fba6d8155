// ptctl is a command-line client for a PrecisionTurn server. It drives
// the same plan store and query assistant the dashboard uses.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"precisionturn/client"
	"precisionturn/plan"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "ptctl",
	Short: "PrecisionTurn turnaround plan client",
}

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Manage turnaround plans",
}

var plansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		plans := store.List(context.Background())
		if errMsg := store.LastError(); errMsg != "" {
			return fmt.Errorf("list failed: %s", errMsg)
		}
		for _, p := range plans {
			fmt.Printf("%s  %-12s  %s\n", p.ID, p.Status, p.Title)
		}
		if len(plans) == 0 {
			fmt.Println("No plans.")
		}
		return nil
	},
}

var plansGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one plan as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newStore().GetByID(context.Background(), args[0])
		if err != nil {
			if client.IsNotFound(err) {
				return fmt.Errorf("plan %s not found", args[0])
			}
			return err
		}
		return printJSON(p)
	},
}

var (
	createPlantType   string
	createDuration    int
	createBudget      float64
	createScope       string
	createConstraints string
)

var plansCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Generate a new plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newStore().Create(context.Background(), plan.GenerateRequest{
			Title:       args[0],
			PlantType:   createPlantType,
			Duration:    createDuration,
			Budget:      createBudget,
			Scope:       createScope,
			Constraints: createConstraints,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created plan %s\n", p.ID)
		return printJSON(p)
	},
}

var plansDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newStore().Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted plan %s\n", args[0])
		return nil
	},
}

var plansDuplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Duplicate a plan as a new draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		ctx := context.Background()

		src, err := store.GetByID(ctx, args[0])
		if err != nil {
			return err
		}
		dup, err := store.Duplicate(ctx, src)
		if err != nil {
			return err
		}
		fmt.Printf("Created plan %s (%s)\n", dup.ID, dup.Title)
		return nil
	},
}

var askStream bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the turnaround knowledge base a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant := client.NewAssistant(serverURL)
		ctx := context.Background()

		if askStream {
			_, err := assistant.AskStream(ctx, args[0], func(token string) {
				fmt.Print(token)
			})
			fmt.Println()
			return err
		}

		answer := assistant.Ask(ctx, args[0])
		fmt.Println(answer.Answer)
		for _, s := range answer.Sources {
			fmt.Printf("  [%.2f] %s: %s\n", s.Metadata.Score, s.Metadata.Location, s.Content)
		}
		return nil
	},
}

func newStore() *client.Store {
	return client.NewStore(client.NewAPI(serverURL))
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8001", "PrecisionTurn server base URL")

	plansCreateCmd.Flags().StringVar(&createPlantType, "plant-type", "refinery", "plant type")
	plansCreateCmd.Flags().IntVar(&createDuration, "duration", 30, "duration in days")
	plansCreateCmd.Flags().Float64Var(&createBudget, "budget", 45000000, "budget in dollars")
	plansCreateCmd.Flags().StringVar(&createScope, "scope", "", "scope description")
	plansCreateCmd.Flags().StringVar(&createConstraints, "constraints", "", "constraints")

	plansCmd.AddCommand(plansListCmd, plansGetCmd, plansCreateCmd, plansDeleteCmd, plansDuplicateCmd)
	askCmd.Flags().BoolVar(&askStream, "stream", false, "stream the answer token by token")
	rootCmd.AddCommand(plansCmd, askCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
