package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// materialize writes the ordered result into output: one entry per item,
// named with a zero-padded position prefix ("00042.beach.jpg") so any
// name-sorted view shows the similarity order. Existing files with the same
// name are clobbered only in copy mode; link modes fail instead, which
// surfaces accidental reuse of a non-empty output directory.
func materialize(ctx context.Context, files []string, order []int, output, mode string) (int, error) {
	if err := os.MkdirAll(output, 0755); err != nil {
		return 0, fmt.Errorf("create %s: %w", output, err)
	}

	written := 0
	for pos, idx := range order {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		src := files[idx]
		dest := filepath.Join(output, fmt.Sprintf("%05d.%s", pos, filepath.Base(src)))

		var err error
		switch mode {
		case LinkHard:
			err = os.Link(src, dest)
		case LinkSymlink:
			err = symlinkAbs(src, dest)
		case LinkCopy:
			err = copyFile(src, dest)
		default:
			return written, fmt.Errorf("invalid link mode %q", mode)
		}
		if err != nil {
			return written, fmt.Errorf("link %s: %w", src, err)
		}
		written++
	}
	return written, nil
}

// symlinkAbs links dest to the absolute path of src, so the links stay valid
// regardless of where the output directory sits relative to the source.
func symlinkAbs(src, dest string) error {
	abs, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	return os.Symlink(abs, dest)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
