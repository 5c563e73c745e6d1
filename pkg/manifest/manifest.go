package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const maxLineSize = 1024 * 1024

var ErrMalformedLine = errors.New("invalid manifest line")

// MalformedLineError reports a manifest line that is not component,hash,<ignored>.
type MalformedLineError struct {
	Line string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("invalid manifest line encountered: %q", e.Line)
}

func (e *MalformedLineError) Is(target error) bool {
	return target == ErrMalformedLine
}

// Target is one decoded manifest entry.
type Target struct {
	Component string
	Hash      string
}

// Decode turns a single manifest line into a Target.
func Decode(line string) (Target, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return Target{}, &MalformedLineError{Line: line}
	}

	return Target{
		Component: fields[0],
		Hash:      fields[1],
	}, nil
}

// Read returns the non-blank lines of a manifest in order.
func Read(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return lines, nil
}

// ReadFile reads the manifest at path.
func ReadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer file.Close()

	return Read(file)
}
