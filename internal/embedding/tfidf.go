package embedding

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	ProviderTFIDF = "tfidf"

	DefaultTFIDFDimensions = 4096
	tfidfMaxRunes          = 100000
)

var tfidfTokenPattern = regexp.MustCompile(`[\p{L}\p{N}+#]+`)

// TFIDF is an in-process hashed TF-IDF vectorizer. Terms are hashed into a
// fixed number of buckets, weighted by sublinear term frequency and a smoothed
// inverse document frequency learned once from a corpus. It is read-only
// after construction and safe for concurrent use.
type TFIDF struct {
	dims int
	idf  []float64
}

// NewTFIDF fits the IDF table on corpus. A nil or empty corpus gives every
// bucket an IDF of 1, which reduces the vectorizer to sublinear TF.
func NewTFIDF(dims int, corpus []string) *TFIDF {
	if dims <= 0 {
		dims = DefaultTFIDFDimensions
	}

	idf := make([]float64, dims)
	for i := range idf {
		idf[i] = 1
	}

	if len(corpus) > 0 {
		df := make([]int, dims)
		for _, doc := range corpus {
			seen := make(map[int]struct{})
			for _, tok := range tokenize(doc) {
				seen[bucket(tok, dims)] = struct{}{}
			}
			for b := range seen {
				df[b]++
			}
		}

		n := float64(len(corpus))
		for i := range idf {
			idf[i] = math.Log((1+n)/(1+float64(df[i]))) + 1
		}
	}

	return &TFIDF{dims: dims, idf: idf}
}

// NewTFIDFFromFile fits on a corpus file holding one document per non-empty line.
func NewTFIDFFromFile(dims int, path string) (*TFIDF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tfidf corpus: %w", err)
	}
	defer f.Close()

	var corpus []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			corpus = append(corpus, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tfidf corpus: %w", err)
	}

	return NewTFIDF(dims, corpus), nil
}

func (t *TFIDF) Embed(ctx context.Context, text string) (Vector, error) {
	text, empty, err := prepare(text, tfidfMaxRunes)
	if err != nil {
		return nil, err
	}

	vec := make(Vector, t.dims)
	if empty {
		return vec, nil
	}

	tf := make(map[int]int)
	for _, tok := range tokenize(text) {
		tf[bucket(tok, t.dims)]++
	}

	var norm float64
	weights := make(map[int]float64, len(tf))
	for b, count := range tf {
		w := (1 + math.Log(float64(count))) * t.idf[b]
		weights[b] = w
		norm += w * w
	}
	if norm == 0 {
		return vec, nil
	}

	norm = math.Sqrt(norm)
	for b, w := range weights {
		vec[b] = float32(w / norm)
	}

	return vec, nil
}

func (t *TFIDF) Dimensions() int { return t.dims }

func (t *TFIDF) Name() string { return ProviderTFIDF }

func tokenize(text string) []string {
	return tfidfTokenPattern.FindAllString(strings.ToLower(text), -1)
}

func bucket(token string, dims int) int {
	return int(xxhash.Sum64String(token) % uint64(dims))
}
