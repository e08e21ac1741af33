package words

import (
	_ "embed"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

//go:embed words.txt
var poolData string

// Pool is the static random-word list, loaded once at startup.
type Pool struct {
	words []string
	rnd   *rand.Rand
}

func NewPool() *Pool {
	var list []string
	for _, line := range strings.Split(poolData, "\n") {
		w := strings.TrimSpace(line)
		if w != "" {
			list = append(list, w)
		}
	}
	return &Pool{
		words: list,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (p *Pool) Size() int {
	return len(p.words)
}

// Draw returns n distinct words picked uniformly from the pool.
func (p *Pool) Draw(n int) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("word draw must be positive, got %d", n)
	}
	if n > len(p.words) {
		return nil, fmt.Errorf("pool holds %d words, cannot draw %d", len(p.words), n)
	}
	idx := p.rnd.Perm(len(p.words))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = p.words[j]
	}
	return out, nil
}
