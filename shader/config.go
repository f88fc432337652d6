package shader

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Entry is one record of the shader configuration: a program name and the
// ordered texture files bound to it.
type Entry struct {
	Name     string
	Textures []string
}

// ParseConfig reads whitespace-delimited records of the form
//
//	<name> <textureCount> <texture>...
//
// A record with a non-numeric or negative count, or fewer texture tokens than
// its count, fails with ErrMalformedConfig.
func ParseConfig(r io.Reader) ([]Entry, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}

	var entries []Entry
	for {
		name, ok := next()
		if !ok {
			break
		}

		countTok, ok := next()
		if !ok {
			return nil, errors.Wrapf(ErrMalformedConfig, "record %q: missing texture count", name)
		}
		count, err := strconv.Atoi(countTok)
		if err != nil || count < 0 {
			return nil, errors.Wrapf(ErrMalformedConfig, "record %q: invalid texture count %q", name, countTok)
		}

		entry := Entry{Name: name}
		for i := 0; i < count; i++ {
			tex, ok := next()
			if !ok {
				return nil, errors.Wrapf(ErrMalformedConfig, "record %q: expected %d textures, found %d", name, count, i)
			}
			entry.Textures = append(entry.Textures, tex)
		}
		entries = append(entries, entry)
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "shader: reading config")
	}
	return entries, nil
}
