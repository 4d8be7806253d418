package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/killallgit/subarr/internal/models"
	"github.com/killallgit/subarr/internal/services/profiles"
	"github.com/killallgit/subarr/internal/services/subscriptions"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage quality profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quality profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfilesList,
}

var profilesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Create or update profiles from a YAML file",
	Long: `Create or update quality profiles from a YAML document.

Profiles are matched by name. Example document:

  profiles:
    - name: hd
      default: true
      resolutions: [1080p]
      max_size_mb: 8000`,
	Args: cobra.ExactArgs(1),
	RunE: runProfilesImport,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesListCmd, profilesImportCmd)
}

func openRepository(cmd *cobra.Command) (*subscriptions.Repository, func(), error) {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	db, err := openDatabase(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return subscriptions.NewRepository(db.DB), func() { _ = db.Close() }, nil
}

func runProfilesList(cmd *cobra.Command, args []string) error {
	repo, closeDB, err := openRepository(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	list, err := repo.ListProfiles(commandContext(cmd))
	if err != nil {
		return err
	}

	rows := lo.Map(list, func(p models.Profile, _ int) []string {
		return []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Name,
			lo.Ternary(p.IsDefault, "yes", ""),
			strings.Join(p.Resolutions, ","),
			sizeRange(p.MinSizeMB, p.MaxSizeMB),
		}
	})
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"ID", "Name", "Default", "Resolutions", "Size (MB)"}, rows, 0))
	return nil
}

func runProfilesImport(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	importer := profiles.NewImporter(subscriptions.NewRepository(db.DB), afero.NewOsFs(), log)
	imported, err := importer.ImportFile(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	names := lo.Map(imported, func(p models.Profile, _ int) string { return p.Name })
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d profiles: %s\n", len(imported), strings.Join(names, ", "))
	return nil
}

func sizeRange(minMB, maxMB int64) string {
	switch {
	case minMB == 0 && maxMB == 0:
		return "any"
	case maxMB == 0:
		return fmt.Sprintf(">= %d", minMB)
	default:
		return fmt.Sprintf("%d-%d", minMB, maxMB)
	}
}
