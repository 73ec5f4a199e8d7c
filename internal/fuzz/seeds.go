package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"orbit/internal/driver"
)

const maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса

var builtinSeeds = []string{
	"",
	"#pragma import std\n",
	"#pragma export app::main\n#pragma export app::main\n",
	"#pragma\n#pragma import\n#pragmatic x y\n",
	"\t#pragma export  spaced   arg1 arg2\r\n",
	"#pragma lint unused -Wall\n",
	"\ufeff#pragma export bom\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все исходники
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != driver.SourceExt {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
