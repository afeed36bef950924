package diff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// ErrEmptyPatch is returned when a patch contains no text fragments.
var ErrEmptyPatch = errors.New("patch has no text fragments")

// SplitPatch reconstructs the before and after texts of the first file in a
// unified diff. Context lines go to both sides. A bare hunk without file
// headers is accepted.
func SplitPatch(patch string) (before, after string, err error) {
	if strings.TrimSpace(patch) == "" {
		return "", "", ErrEmptyPatch
	}
	if !strings.HasPrefix(patch, "diff ") && !strings.HasPrefix(patch, "--- ") {
		patch = "--- a/snippet\n+++ b/snippet\n" + patch
	}

	files, _, err := gitdiff.Parse(strings.NewReader(patch))
	if err != nil {
		return "", "", fmt.Errorf("parsing patch: %w", err)
	}
	if len(files) == 0 || len(files[0].TextFragments) == 0 {
		return "", "", ErrEmptyPatch
	}

	var b, a strings.Builder
	for _, frag := range files[0].TextFragments {
		for _, line := range frag.Lines {
			switch line.Op {
			case gitdiff.OpContext:
				b.WriteString(line.Line)
				a.WriteString(line.Line)
			case gitdiff.OpDelete:
				b.WriteString(line.Line)
			case gitdiff.OpAdd:
				a.WriteString(line.Line)
			}
		}
	}

	return strings.TrimSuffix(b.String(), "\n"), strings.TrimSuffix(a.String(), "\n"), nil
}
