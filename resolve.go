package jsmn

// Pair is a resolved member: the key token and the token right after it.
type Pair struct {
	Name  Token
	Value Token

	index int
}

// Index returns the store index of the value token.
func (pr Pair) Index() int {
	return pr.index
}

// Find resolves key to its value token. The first matching key wins.
func (p *Parser) Find(key string) (Pair, bool) {
	i, ok := p.resolve(key)
	if !ok {
		return Pair{}, false
	}
	return Pair{Name: p.tokens[i-1], Value: p.tokens[i], index: i}, true
}

// resolve returns the index of the value token for key.
func (p *Parser) resolve(key string) (int, bool) {
	if !p.parsed || p.n == 0 {
		return 0, false
	}
	if p.scope == ScopeFlat {
		return p.resolveFlat(key)
	}
	return p.resolveRoot(key)
}

func (p *Parser) resolveFlat(key string) (int, bool) {
	for i := 0; i < p.n-1; i++ {
		if p.matches(i, key) {
			return i + 1, true
		}
	}
	return 0, false
}

func (p *Parser) resolveRoot(key string) (int, bool) {
	root := p.tokens[0]
	if root.Kind != Object {
		return 0, false
	}

	i := 1
	for range root.Size {
		if i >= p.n {
			break
		}
		if p.matches(i, key) {
			if i+1 < p.n {
				return i + 1, true
			}
			return 0, false
		}
		i = p.skip(i)
	}
	return 0, false
}

func (p *Parser) matches(i int, key string) bool {
	t := p.tokens[i]
	if t.Kind != String || t.End-t.Start != len(key) || t.Start < 0 || t.End > len(p.src) {
		return false
	}
	return p.src[t.Start:t.End] == key
}

// skip returns the index just past the subtree rooted at i.
func (p *Parser) skip(i int) int {
	for pending := 1; pending > 0 && i < p.n; i++ {
		pending += p.tokens[i].Size - 1
	}
	return i
}
