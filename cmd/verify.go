package cmd

import (
	"fmt"

	"github.com/lepinkainen/vidframes/sink"
	"github.com/lepinkainen/vidframes/types"
	"github.com/lepinkainen/vidframes/ui"
)

// VerifyCmd verifies that extracted frames still match the CRC32 checksums recorded
// in their manifest.json. Only folders extracted with --manifest can be verified.
type VerifyCmd struct {
	Dest string `arg:"" name:"dest" help:"Dataset folder written by extract" type:"existingdir" default:"./out"`
}

// Run checks every manifest below Dest and reports missing or altered frames.
func (cmd *VerifyCmd) Run(appCtx *types.AppContext) error {
	log := appCtx.Log()

	manifests, err := sink.FindManifests(cmd.Dest)
	if err != nil {
		return fmt.Errorf("scan %s: %w", cmd.Dest, err)
	}
	if len(manifests) == 0 {
		fmt.Printf("⚠️  No %s found in %s, extract with --manifest first\n", sink.ManifestFileName, cmd.Dest)
		return nil
	}

	fmt.Printf("%s\n", ui.InfoStyle.Render(fmt.Sprintf("Verifying %d manifests...", len(manifests))))

	var verified, failed int
	for _, path := range manifests {
		log.WithField("manifest", path).Debug("Verifying frames")
		checked, issues, err := sink.VerifyManifest(path)
		if err != nil {
			fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ Error reading %s: %v", path, err)))
			failed++
			continue
		}

		verified += checked - len(issues)
		failed += len(issues)
		for _, issue := range issues {
			if issue.Err != nil {
				fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %s: %v", issue.File, issue.Err)))
				continue
			}
			fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %s (expected: %s, got: %s)", issue.File, issue.Expected, issue.Actual)))
		}
		if len(issues) == 0 {
			fmt.Printf("%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ %s (%d frames)", path, checked)))
		}
	}

	fmt.Printf("\n%s\n", ui.InfoStyle.Render(fmt.Sprintf("✅ Verified: %d, ❌ Failed: %d", verified, failed)))
	if failed > 0 {
		return fmt.Errorf("%d frames failed verification", failed)
	}
	return nil
}
