package utils

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog/log"
)

var (
	tokenizer *tiktoken.Tiktoken
	initErr   error
	initOnce  sync.Once
)

func initTokenizer() error {
	initOnce.Do(func() {
		tokenizer, initErr = tiktoken.GetEncoding("cl100k_base")
		if initErr != nil {
			log.Error().Err(initErr).Msg("failed to init tokenizer")
		}
	})
	return initErr
}

type Tokenizer struct {
	tokenizer *tiktoken.Tiktoken
}

func NewTokenzier() (Tokenizer, error) {
	if err := initTokenizer(); err != nil {
		return Tokenizer{}, err
	}

	return Tokenizer{tokenizer: tokenizer}, nil
}

func (t Tokenizer) CountTokens(s string) int {
	return len(t.tokenizer.Encode(s, nil, nil))
}

// Truncate keeps at most max tokens of s.
func (t Tokenizer) Truncate(s string, max int) string {
	tokens := t.tokenizer.Encode(s, nil, nil)
	if max <= 0 || len(tokens) <= max {
		return s
	}
	return t.tokenizer.Decode(tokens[:max])
}
