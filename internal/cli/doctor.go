package cli

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdgate/mdgate/internal/hook"
	"github.com/mdgate/mdgate/internal/update"
	"github.com/mdgate/mdgate/pkg/version"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that mdgate is ready to guard commits",
	Long: `Diagnose the current environment.

Checks that git is on PATH, that the working directory is inside a
repository, that the managed hooks are installed, and that the
configuration file parses and validates.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().Bool("check-update", false, "Also check for a newer mdgate release")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	var pairs []kvPair
	healthy := true
	muted := deps.Theme.MutedStyle()

	check := func(name string, ok bool, detail string) {
		if !ok {
			healthy = false
		}
		value := statusLabel(ok)
		if detail != "" {
			value += "  " + muted.Render(detail)
		}
		pairs = append(pairs, kvPair{key: name, value: value})
	}

	pairs = append(pairs, kvPair{
		key: "version",
		value: version.GetVersion() + "  " + muted.Render(
			fmt.Sprintf("commit %s, built %s", version.GetCommit(), version.GetDate())),
	})

	gitPath, err := exec.LookPath("git")
	check("git binary", err == nil, gitPath)

	repo, err := openRepository()
	if err != nil {
		check("repository", false, err.Error())
		fmt.Fprintln(cmd.OutOrStdout(), renderCard("mdgate doctor", renderKeyValueLines(pairs)))
		return fmt.Errorf("environment not healthy")
	}
	check("repository", true, repo.Root())

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	hooksDir, err := repo.HooksDir(ctx)
	if err != nil {
		check("hooks dir", false, err.Error())
	} else {
		status := deps.Installer.Status(hooksDir)
		for _, name := range hook.ManagedHooks() {
			check(name+" hook", status[name], "")
		}
	}

	cfg, err := loadConfig(repo.Root())
	if err != nil {
		check("config", false, err.Error())
	} else {
		check("config", true, fmt.Sprintf("%d pre-commit command(s)", len(cfg.PreCommit.Commands)))
	}

	// Advisory only: a failed or positive release check never marks the
	// environment unhealthy.
	if getBoolFlag(cmd, "check-update") {
		checker := update.NewChecker(update.DefaultAPIURL, nil)
		available, release, err := checker.IsUpdateAvailable(ctx, version.GetVersion())
		switch {
		case err != nil:
			pairs = append(pairs, kvPair{key: "latest release", value: muted.Render("check failed: " + err.Error())})
		case available:
			pairs = append(pairs, kvPair{key: "latest release", value: release.Version + "  " + muted.Render("update available")})
		default:
			pairs = append(pairs, kvPair{key: "latest release", value: statusLabel(true) + "  " + muted.Render("up to date")})
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderCard("mdgate doctor", renderKeyValueLines(pairs)))

	if !healthy {
		return fmt.Errorf("environment not healthy")
	}
	return nil
}
