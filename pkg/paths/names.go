package paths

import "strings"

// SplitName splits a file name into stem and extension. The extension starts
// at the last dot that is not part of the leading dots, so hidden files such
// as ".bashrc" have no extension while "archive.tar.gz" splits into
// "archive.tar" and ".gz". A trailing dot yields the extension ".".
func SplitName(name string) (stem, ext string) {
	leading := len(name) - len(strings.TrimLeft(name, "."))
	idx := strings.LastIndex(name[leading:], ".")
	if idx < 0 {
		return name, ""
	}
	idx += leading
	return name[:idx], name[idx:]
}
