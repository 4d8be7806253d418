package cmd

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/killallgit/subarr/internal/models"
	"github.com/killallgit/subarr/internal/services/subscriptions"
)

var subscriptionsCmd = &cobra.Command{
	Use:     "subscriptions",
	Aliases: []string{"subs"},
	Short:   "Manage subscriptions",
	Long: `Add, list and remove subscriptions without going through the HTTP API.

Available subcommands:
  add     - Subscribe to a title and import its episodes
  list    - List subscriptions
  delete  - Remove a subscription and release its torrents`,
}

var subscriptionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Subscribe to a title",
	Long: `Subscribe to a title by its provider id.

Example:
  subarr subscriptions add --media-type tv --source-id 1399 --season 1
  subarr subscriptions add --media-type anime --source-id 253`,
	Args: cobra.NoArgs,
	RunE: runSubscriptionsAdd,
}

var subscriptionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscriptions",
	Args:  cobra.NoArgs,
	RunE:  runSubscriptionsList,
}

var subscriptionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a subscription",
	Long: `Remove a subscription with its episodes and torrent records.

Torrents owned by the subscription are removed from the download client.
With --delete-files their data and the media folder are deleted as well;
the default comes from qbittorrent.delete_files.`,
	Args: cobra.ExactArgs(1),
	RunE: runSubscriptionsDelete,
}

func init() {
	rootCmd.AddCommand(subscriptionsCmd)
	subscriptionsCmd.AddCommand(subscriptionsAddCmd, subscriptionsListCmd, subscriptionsDeleteCmd)

	subscriptionsAddCmd.Flags().String("media-type", "", "tv, movie or anime")
	subscriptionsAddCmd.Flags().Int64("source-id", 0, "title id at the metadata provider")
	subscriptionsAddCmd.Flags().String("source", "", "tmdb or bangumi (defaults by media type)")
	subscriptionsAddCmd.Flags().Int("season", -1, "season to import episodes for (tv only)")
	subscriptionsAddCmd.Flags().Uint("profile", 0, "quality profile id (defaults to the default profile)")
	_ = subscriptionsAddCmd.MarkFlagRequired("media-type")
	_ = subscriptionsAddCmd.MarkFlagRequired("source-id")

	subscriptionsListCmd.Flags().String("media-type", "", "filter by tv, movie or anime")
	subscriptionsListCmd.Flags().Int("page", 1, "page number")
	subscriptionsListCmd.Flags().Int("limit", 20, "page size")

	subscriptionsDeleteCmd.Flags().Bool("delete-files", false, "also delete downloaded data and the media folder")
}

func runSubscriptionsAdd(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	flags := cmd.Flags()
	mediaType, _ := flags.GetString("media-type")
	sourceID, _ := flags.GetInt64("source-id")
	source, _ := flags.GetString("source")
	req := subscriptions.CreateRequest{
		MediaType: models.MediaType(mediaType),
		SourceID:  sourceID,
		Source:    models.Source(source),
	}
	if flags.Changed("season") {
		season, _ := flags.GetInt("season")
		req.SeasonNumber = &season
	}
	if flags.Changed("profile") {
		profile, _ := flags.GetUint("profile")
		req.ProfileID = &profile
	}

	sub, err := a.subscriptions.Create(commandContext(cmd), req)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Subscribed to %q (id %d, %d episodes) in %s\n",
		sub.Title, sub.ID, len(sub.Episodes), sub.FolderPath)
	return nil
}

func runSubscriptionsList(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	flags := cmd.Flags()
	mediaType, _ := flags.GetString("media-type")
	page, _ := flags.GetInt("page")
	limit, _ := flags.GetInt("limit")

	subs, total, err := a.subscriptions.List(commandContext(cmd), subscriptions.ListFilter{
		MediaType: models.MediaType(mediaType),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	rows := lo.Map(subs, func(s models.Subscription, _ int) []string {
		return []string{
			strconv.FormatUint(uint64(s.ID), 10),
			string(s.MediaType),
			fmt.Sprintf("%s:%d", s.Source, s.SourceID),
			s.Title,
			seasonLabel(s.SeasonNumber),
			strconv.Itoa(s.TotalEpisodes),
			string(s.Status),
		}
	})
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Type", "Source", "Title", "Season", "Episodes", "Status"}, rows, 0, 5))
	fmt.Fprintf(out, "%d of %d subscriptions\n", len(subs), total)
	return nil
}

func runSubscriptionsDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || id == 0 {
		return fmt.Errorf("invalid subscription id %q", args[0])
	}

	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	deleteFiles := cfg.QBittorrent.DeleteFiles
	if cmd.Flags().Changed("delete-files") {
		deleteFiles, _ = cmd.Flags().GetBool("delete-files")
	}

	if err := a.subscriptions.Delete(commandContext(cmd), uint(id), deleteFiles); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted subscription %d\n", id)
	return nil
}

func seasonLabel(season *int) string {
	if season == nil {
		return "-"
	}
	return strconv.Itoa(*season)
}
