package partrotate

import (
	"embed"
	"io"
	"strings"
)

//go:embed VERSION
var F embed.FS

func readVersion(fs embed.FS) ([]byte, error) {
	f, err := fs.Open("VERSION")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func GetVersion() string {
	v := "0.1.0"

	f, err := readVersion(F)
	if err != nil {
		return v
	}

	v = strings.TrimSpace(string(f))
	return v
}
