package history

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lumenlabs/lumen-cli/internal/app"
	"github.com/lumenlabs/lumen-cli/internal/controller"
	"github.com/lumenlabs/lumen-cli/internal/format"
	"github.com/lumenlabs/lumen-cli/internal/models"
	"github.com/lumenlabs/lumen-cli/internal/store"
)

// HistoryCmd represents the history command
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and replay your activity history",
	Long: `Every AI invocation is recorded in your local history store. list
shows records newest first, show prints a record's stored fields, and
replay re-runs a record's request as a fresh invocation.

Records are immutable: replaying appends a new record, it never edits
the original. Records whose input was binary media (image analysis,
transcription and similar) cannot be replayed because the media itself
is not stored.`,
}

// listCmd represents the history list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List activity records, newest first",
	RunE:  runList,
}

// showCmd represents the history show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one record's stored fields",
	RunE:  runShow,
}

// replayCmd represents the history replay command
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Re-run a record's request",
	RunE:  runReplay,
}

func runList(cmd *cobra.Command, args []string) error {
	capType, _ := cmd.Flags().GetString("type")

	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequireUser()
	if err != nil {
		return err
	}

	records, err := a.Store.ListActivities(cmd.Context(), principal.UID, models.CapabilityType(capType))
	if err != nil {
		return err
	}

	return format.Print(format.ActivityList(records))
}

func runShow(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")

	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.RequireUser(); err != nil {
		return err
	}

	rec, err := a.Store.GetActivity(cmd.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no record with id %s", id)
	}
	if err != nil {
		return err
	}

	fmt.Printf("ID:      %s\n", rec.ID)
	fmt.Printf("Type:    %s\n", rec.Type)
	fmt.Printf("Created: %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))

	keys := make([]string, 0, len(rec.Data))
	for k := range rec.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s: %s\n", k, rec.Data[k])
	}
	return nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	outPath, _ := cmd.Flags().GetString("out")

	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequireUser()
	if err != nil {
		return err
	}

	rec, err := a.Store.GetActivity(cmd.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no record with id %s", id)
	}
	if err != nil {
		return err
	}
	if rec.UserID != principal.UID {
		return errors.New("record belongs to a different user")
	}

	ctx := cmd.Context()
	switch rec.Type {
	case models.CapTextGeneration:
		ctrl := controller.NewText(a.Client, a.Store, principal.UID)
		result, err := ctrl.Generate(ctx, rec.Data["prompt"], rec.Data["systemInstruction"], rec.Data["model"])
		if err != nil {
			return err
		}
		fmt.Println(result)

	case models.CapImageGeneration:
		ctrl := controller.NewImage(a.Client, a.Store, principal.UID)
		dataURL, err := ctrl.Generate(ctx, rec.Data["prompt"], rec.Data["mode"])
		if err != nil {
			return err
		}
		fmt.Println(dataURL)

	case models.CapVideoGeneration:
		if outPath == "" {
			return errors.New("replaying a video record requires --out")
		}
		ctrl := controller.NewMedia(a.Client, a.Store, principal.UID)
		blob, err := ctrl.GenerateVideo(ctx, rec.Data["prompt"], "", "", rec.Data["aspectRatio"])
		if err != nil {
			return err
		}
		if err := writeBlob(blob, outPath); err != nil {
			return err
		}

	case models.CapTextToSpeech:
		if outPath == "" {
			return errors.New("replaying a speech record requires --out")
		}
		ctrl := controller.NewMedia(a.Client, a.Store, principal.UID)
		blob, err := ctrl.Synthesize(ctx, rec.Data["text"], rec.Data["voiceName"])
		if err != nil {
			return err
		}
		if err := writeBlob(blob, outPath); err != nil {
			return err
		}

	default:
		return fmt.Errorf("%s records cannot be replayed: the original input media is not stored", rec.Type)
	}

	format.PrintSuccess("✓ Replayed %s record %s", rec.Type, rec.ID)
	return nil
}

func writeBlob(blob *controller.Blob, outPath string) error {
	if err := os.WriteFile(outPath, blob.Data, 0644); err != nil {
		return err
	}
	format.PrintSuccess("✓ Wrote %s (%s, %d bytes)", outPath, blob.ContentType, len(blob.Data))
	return nil
}

func init() {
	listCmd.Flags().StringP("type", "t", "", "Filter by capability type (e.g. text-generation)")

	showCmd.Flags().String("id", "", "Record id")
	showCmd.MarkFlagRequired("id")

	replayCmd.Flags().String("id", "", "Record id")
	replayCmd.Flags().StringP("out", "f", "", "Write a binary result to this file")
	replayCmd.MarkFlagRequired("id")

	HistoryCmd.AddCommand(listCmd)
	HistoryCmd.AddCommand(showCmd)
	HistoryCmd.AddCommand(replayCmd)
}
