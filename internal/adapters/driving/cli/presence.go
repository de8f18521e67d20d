package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hagraph/hagraph/internal/core/domain"
)

var presenceCmd = &cobra.Command{
	Use:   "presence",
	Short: "Read or set Microsoft Teams presence",
}

var presenceGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the presence of the signed-in user or of a user by id",
	Long: `Show availability and activity.

Examples:
  hagraph presence get
  hagraph presence get --user 2b5e6f1a-0000-0000-0000-000000000000`,
	Args: cobra.NoArgs,
	RunE: runPresenceGet,
}

var presenceSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the presence of the signed-in user or of a user by id",
	Long: `Set availability and activity for a presence session.

Settable availabilities: Available, Busy, DoNotDisturb, BeRightBack, Away, Offline.

Examples:
  hagraph presence set --availability Busy --activity InACall
  hagraph presence set --availability Away --activity Away --expiration 90m`,
	Args: cobra.NoArgs,
	RunE: runPresenceSet,
}

// Flags for presence commands.
var (
	presenceUser         string
	presenceAvailability string
	presenceActivity     string
	presenceExpiration   time.Duration
	presenceSession      string
)

func init() {
	presenceGetCmd.Flags().StringVarP(&presenceUser, "user", "u", "", "User id (defaults to the signed-in user)")

	presenceSetCmd.Flags().StringVarP(&presenceUser, "user", "u", "", "User id (defaults to the signed-in user)")
	presenceSetCmd.Flags().StringVarP(&presenceAvailability, "availability", "a", "", "Availability to set")
	presenceSetCmd.Flags().StringVar(&presenceActivity, "activity", "", "Activity to set (defaults to the availability)")
	presenceSetCmd.Flags().DurationVarP(&presenceExpiration, "expiration", "e", 0, "Session expiration, e.g. 30m or 2h")
	presenceSetCmd.Flags().StringVar(&presenceSession, "session", "", "Session id (defaults to the client id)")
	_ = presenceSetCmd.MarkFlagRequired("availability")

	presenceCmd.AddCommand(presenceGetCmd)
	presenceCmd.AddCommand(presenceSetCmd)
	rootCmd.AddCommand(presenceCmd)
}

func runPresenceGet(cmd *cobra.Command, _ []string) error {
	if presenceService == nil {
		return errNotConfigured
	}

	presence, err := presenceService.Get(commandContext(cmd), presenceUser)
	if err != nil {
		return err
	}

	if presence.ID != "" {
		cmd.Println(field("User", presence.ID))
	}
	cmd.Println(field("Availability", availabilityStyle(presence.Availability).Render(string(presence.Availability))))
	cmd.Println(field("Activity", presence.Activity))
	return nil
}

func runPresenceSet(cmd *cobra.Command, _ []string) error {
	if presenceService == nil {
		return errNotConfigured
	}

	availability, err := domain.ParseAvailability(presenceAvailability)
	if err != nil {
		return err
	}
	if presenceExpiration < 0 {
		return fmt.Errorf("%w: expiration must not be negative", domain.ErrInvalidInput)
	}
	activity := presenceActivity
	if activity == "" {
		activity = string(availability)
	}

	req := domain.NewPresenceSetRequest(availability, activity, presenceExpiration)
	req.SessionID = presenceSession
	if err := presenceService.Set(commandContext(cmd), presenceUser, req); err != nil {
		return err
	}

	cmd.Println(successStyle.Render("Presence set to ") +
		availabilityStyle(availability).Render(string(availability)) + " / " + activity)
	return nil
}
