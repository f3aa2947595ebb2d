package tokenizer

import "unicode/utf8"

// Runes is a tokenizer without a vocabulary: every unicode code point is one
// token. It needs no BPE tables, which makes it usable offline. Invalid UTF-8
// encodes as utf8.RuneError, so only valid text round-trips exactly.
type Runes struct{}

var _ Tokenizer = Runes{}

func (Runes) Encode(text string) ([]Token, error) {
	if text == "" {
		return nil, nil
	}
	ret := make([]Token, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		ret = append(ret, Token(r))
	}
	return ret, nil
}

func (Runes) Decode(tokens []Token) (string, error) {
	runes := make([]rune, len(tokens))
	for i, t := range tokens {
		runes[i] = rune(t)
	}
	return string(runes), nil
}
