package trip

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumenlabs/lumen-cli/internal/app"
	"github.com/lumenlabs/lumen-cli/internal/controller"
	"github.com/lumenlabs/lumen-cli/internal/format"
	"github.com/lumenlabs/lumen-cli/internal/models"
)

// TripCmd represents the trip command
var TripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Plan trips and generate packing lists and budgets",
	Long: `The trip planner generates an itinerary for a route and keeps the
result in your history. Packing lists and budget breakdowns are
generated on demand for a stored trip and attached to its record.`,
}

// planCmd represents the trip plan command
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate an itinerary",
	RunE:  runPlan,
}

// extraCmd represents the trip extra command
var extraCmd = &cobra.Command{
	Use:   "extra",
	Short: "Generate a packing list or budget breakdown for a trip",
	RunE:  runExtra,
}

// listCmd represents the trip list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your planned trips",
	RunE:  runList,
}

func runPlan(cmd *cobra.Command, args []string) error {
	origin, _ := cmd.Flags().GetString("origin")
	destination, _ := cmd.Flags().GetString("destination")
	days, _ := cmd.Flags().GetInt("days")
	budget, _ := cmd.Flags().GetString("budget")
	interests, _ := cmd.Flags().GetStringSlice("interests")
	search, _ := cmd.Flags().GetBool("search")
	family, _ := cmd.Flags().GetBool("family")

	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequireUser()
	if err != nil {
		return err
	}

	ctrl := controller.NewTrip(a.Client, a.Store, principal.UID)
	trip, err := ctrl.Plan(cmd.Context(), controller.TripForm{
		Origin:         origin,
		Destination:    destination,
		Days:           days,
		Budget:         budget,
		Interests:      interests,
		UseSearch:      search,
		FamilyFriendly: family,
	})
	if err != nil {
		return fmt.Errorf("trip planning failed: %w", err)
	}

	format.PrintSuccess("✓ Trip %s: %s - %s, %d days", trip.ID, trip.Origin, trip.Destination, trip.Days)
	fmt.Println()
	fmt.Println(trip.Itinerary)
	return nil
}

func runExtra(cmd *cobra.Command, args []string) error {
	tripID, _ := cmd.Flags().GetString("trip")
	kind, _ := cmd.Flags().GetString("kind")

	var extraKind models.TripExtraKind
	switch strings.ToLower(kind) {
	case string(models.TripExtraPacking):
		extraKind = models.TripExtraPacking
	case string(models.TripExtraBudget):
		extraKind = models.TripExtraBudget
	default:
		return errors.New("kind must be 'packing' or 'budget'")
	}

	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequireUser()
	if err != nil {
		return err
	}

	ctrl := controller.NewTrip(a.Client, a.Store, principal.UID)
	result, err := ctrl.Extra(cmd.Context(), tripID, extraKind)
	if err != nil {
		return fmt.Errorf("trip extra failed: %w", err)
	}

	fmt.Println(result)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequireUser()
	if err != nil {
		return err
	}

	ctrl := controller.NewTrip(a.Client, a.Store, principal.UID)
	trips, err := ctrl.Trips(cmd.Context())
	if err != nil {
		return err
	}

	return format.Print(format.TripList(trips))
}

func init() {
	planCmd.Flags().String("origin", "", "Where the trip starts")
	planCmd.Flags().String("destination", "", "Where the trip goes")
	planCmd.Flags().IntP("days", "d", 0, "Trip duration in days")
	planCmd.Flags().StringP("budget", "b", "", "Budget hint (e.g. 'mid-range')")
	planCmd.Flags().StringSliceP("interests", "i", nil, "Interests to emphasize")
	planCmd.Flags().Bool("search", false, "Ground the itinerary with web search")
	planCmd.Flags().Bool("family", false, "Prefer family-friendly options")
	planCmd.MarkFlagRequired("origin")
	planCmd.MarkFlagRequired("destination")
	planCmd.MarkFlagRequired("days")

	extraCmd.Flags().StringP("trip", "t", "", "Trip id")
	extraCmd.Flags().StringP("kind", "k", "", "Extra kind (packing, budget)")
	extraCmd.MarkFlagRequired("trip")
	extraCmd.MarkFlagRequired("kind")

	TripCmd.AddCommand(planCmd)
	TripCmd.AddCommand(extraCmd)
	TripCmd.AddCommand(listCmd)
}
