package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/killallgit/subarr/internal/services/qbittorrent"
)

var downloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "Inspect the download client",
}

var downloadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List torrents known to qBittorrent",
	Args:  cobra.NoArgs,
	RunE:  runDownloadsList,
}

func init() {
	rootCmd.AddCommand(downloadsCmd)
	downloadsCmd.AddCommand(downloadsListCmd)
}

func runDownloadsList(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.QBittorrent.URL == "" {
		return errors.New("qbittorrent.url is not configured")
	}

	client, err := qbittorrent.NewClient(qbittorrent.Config{
		URL:      cfg.QBittorrent.URL,
		Username: cfg.QBittorrent.Username,
		Password: cfg.QBittorrent.Password,
		Timeout:  cfg.QBittorrent.Timeout,
	})
	if err != nil {
		return err
	}

	torrents, err := client.ListTorrents(commandContext(cmd))
	if err != nil {
		return err
	}

	rows := lo.Map(torrents, func(t qbittorrent.TorrentInfo, _ int) []string {
		return []string{
			t.Hash,
			t.Name,
			t.State,
			strconv.FormatFloat(t.Progress*100, 'f', 1, 64) + "%",
			formatSize(t.Size),
		}
	})
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Hash", "Name", "State", "Progress", "Size"}, rows, 3, 4))
	return nil
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
