package utils

import "path/filepath"

// DataFolder is the ServerTools directory, every plugin file lives below it.
var DataFolder = "servertools"

func PathData(p ...string) string {
	pj := filepath.Join(p...)
	if filepath.IsAbs(pj) {
		return pj
	}
	return filepath.Join(DataFolder, pj)
}
