package pkg

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/anchore/packageurl-go"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

// ReadComponents reads components from a file: either a JSON array of components, or one CPE or package URL per line.
func ReadComponents(fs afero.Fs, path string) ([]Component, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	f, err := fs.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("unable to open components file: %w", err)
	}
	defer f.Close()

	return DecodeComponents(f)
}

// DecodeComponents reads components from a JSON array or from lines of CPEs and package URLs.
func DecodeComponents(reader io.Reader) ([]Component, error) {
	buffered := bufio.NewReader(reader)
	first, err := peekNonSpace(buffered)
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	if first == '[' {
		var components []Component
		if err := json.NewDecoder(buffered).Decode(&components); err != nil {
			return nil, fmt.Errorf("unable to decode components: %w", err)
		}
		for i := range components {
			components[i] = components[i].WithID()
		}
		return components, nil
	}

	var components []Component
	scanner := bufio.NewScanner(buffered)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, scanner.Err()
}

func parseLine(line string) (Component, error) {
	switch {
	case strings.HasPrefix(line, "pkg:"):
		purl, err := packageurl.FromString(line)
		if err != nil {
			return Component{}, fmt.Errorf("unable to decode purl %s: %w", line, err)
		}
		return New(purl.Name, purl.Version, "", line), nil
	case strings.HasPrefix(line, "cpe:"):
		return New("", "", line, ""), nil
	}
	return Component{}, fmt.Errorf("unable to decode component %q: expected a CPE or a package URL", line)
}

func peekNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return b, r.UnreadByte()
		}
	}
}
