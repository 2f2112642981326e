package textgen

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

var defaultPool = []string{
	"The quick brown fox jumps over the lazy dog.",
	"Programming is both an art and a science that requires logical thinking.",
	"TypeScript brings static typing to JavaScript for better development experience.",
	"Modern web applications require scalable and maintainable architecture patterns.",
	"Effective keyboard skills significantly improve productivity in digital work environments.",
}

// DefaultPool returns a copy of the built-in sentence pool.
func DefaultPool() []string {
	out := make([]string, len(defaultPool))
	copy(out, defaultPool)
	return out
}

// LoadPool reads one sentence per line from the provided file path.
func LoadPool(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only pool file.
			_ = cerr
		}
	}()

	var pool []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		pool = append(pool, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("sentence pool is empty")
	}
	return pool, nil
}
