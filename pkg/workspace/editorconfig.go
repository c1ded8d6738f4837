package workspace

import (
	"bytes"
	"context"
	"path"
	"strconv"

	"github.com/editorconfig/editorconfig-core-go/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// tabWidth resolves the tab width for name from the .editorconfig files
// between its directory and the workspace root, nearest first, stopping at
// one marked root. It falls back to the configured width.
func (w *Workspace) tabWidth(ctx context.Context, name string) int {
	dir := path.Dir(name)
	for {
		cfgPath := path.Join(dir, ".editorconfig")
		if data, err := afero.ReadFile(w.fs, cfgPath); err == nil {
			ec, err := editorconfig.Parse(bytes.NewReader(data))
			if err != nil {
				zerolog.Ctx(ctx).Debug().Err(err).Str("file", cfgPath).Msg("ignoring unparsable editorconfig")
			} else {
				rel := name
				if dir != "." {
					rel = name[len(dir)+1:]
				}
				if width := editorconfigTabWidth(ec, rel); width > 0 {
					return width
				}
				if ec.Root {
					break
				}
			}
		}
		if dir == "." || dir == "/" {
			break
		}
		dir = path.Dir(dir)
	}
	return w.cfg.TabWidth
}

func editorconfigTabWidth(ec *editorconfig.Editorconfig, name string) int {
	def, err := ec.GetDefinitionForFilename(name)
	if err != nil || def == nil {
		return 0
	}
	if def.TabWidth > 0 {
		return def.TabWidth
	}
	if n, err := strconv.Atoi(def.IndentSize); err == nil && n > 0 {
		return n
	}
	return 0
}
